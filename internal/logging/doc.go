// Package logging builds the registrar's zerolog loggers and carries them,
// together with a per-invocation trace ID, through context.Context.
//
// Loggers are created once per command from a Config. Packages retrieve the
// request-scoped logger with FromContext and attach their component name with
// ComponentLogger. Events logged with .Ctx(ctx) pick up the trace ID stored by
// ContextWithTraceID.
package logging
