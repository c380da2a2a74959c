package fixture

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Paging limits of the paged endpoint.
const (
	DefaultPageSize = 25
	MaxPageSize     = 100
)

// Name and Version identify the fixture service at /api/version.
const (
	Name    = "registrar-fixture"
	Version = "1.4.0"
)

const (
	headerRequestID = "X-Request-ID"
	localRequestID  = "request_id"
	requestTimeout  = 5 * time.Second
	shutdownTimeout = 5 * time.Second
)

// ServerOption configures NewServer.
type ServerOption func(*serverOptions)

type serverOptions struct {
	token   string
	version string
	logger  zerolog.Logger
}

// WithToken requires "Authorization: Bearer <token>" on every API request.
func WithToken(token string) ServerOption {
	return func(o *serverOptions) { o.token = token }
}

// WithVersion overrides the version reported at /api/version.
func WithVersion(v string) ServerOption {
	return func(o *serverOptions) { o.version = v }
}

// WithLogger sets the request logger. The default discards.
func WithLogger(l zerolog.Logger) ServerOption {
	return func(o *serverOptions) { o.logger = l }
}

type handler struct {
	store   *Store
	version string
}

// NewServer builds the fixture HTTP app over store.
func NewServer(store *Store, opts ...ServerOption) *fiber.App {
	o := serverOptions{version: Version, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	app := fiber.New(fiber.Config{
		AppName:               Name,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})
	app.Use(recover.New())
	app.Use(requestLogger(o.logger))
	app.Use(etag.New())

	h := &handler{store: store, version: o.version}
	api := app.Group("/api")
	if o.token != "" {
		api.Use(requireToken(o.token))
	}
	api.Get("/version", h.getVersion)
	api.Get("/:resource/paged", h.page)
	api.Get("/:resource/:id", h.get)
	api.Get("/:resource", h.list)

	app.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "no route for "+c.Path())
	})
	return app
}

// Serve runs app on addr until ctx is cancelled, then shuts it down.
func Serve(ctx context.Context, app *fiber.App, addr string) error {
	errCh := make(chan error, 1)
	go func() { errCh <- app.Listen(addr) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			return err
		}
		return <-errCh
	}
}

func (h *handler) getVersion(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"name": Name, "version": h.version})
}

func (h *handler) list(c *fiber.Ctx) error {
	resource := c.Params("resource")
	rows, err := h.store.List(c.UserContext(), resource, filterFrom(c, resource))
	if err != nil {
		return err
	}
	return c.JSON(rows)
}

func (h *handler) page(c *fiber.Ctx) error {
	resource := c.Params("resource")
	page, size := resolvePaging(c.QueryInt("page", 0), c.QueryInt("size", DefaultPageSize))

	rows, total, err := h.store.Page(c.UserContext(), resource, filterFrom(c, resource), page, size)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"content":       rows,
		"number":        page,
		"size":          size,
		"totalPages":    (total + size - 1) / size,
		"totalElements": total,
	})
}

func (h *handler) get(c *fiber.Ctx) error {
	row, err := h.store.Get(c.UserContext(), c.Params("resource"), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(row)
}

// resolvePaging clamps a requested page and size to valid values.
func resolvePaging(page, size int) (int, int) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return page, size
}

func filterFrom(c *fiber.Ctx, resource string) Filter {
	f := Filter{Query: c.Query("q")}
	for _, key := range FilterFields(resource) {
		if v := c.Query(key); v != "" {
			if f.Match == nil {
				f.Match = make(map[string]string)
			}
			f.Match[key] = v
		}
	}
	return f
}

func requireToken(token string) fiber.Handler {
	want := []byte("Bearer " + token)
	return func(c *fiber.Ctx) error {
		got := []byte(c.Get(fiber.HeaderAuthorization))
		if subtle.ConstantTimeCompare(got, want) != 1 {
			return fiber.NewError(fiber.StatusUnauthorized, "missing or invalid bearer token")
		}
		return c.Next()
	}
}

// requestLogger tags each request with an id, bounds its context and logs
// the outcome. Errors are resolved here so the logged status is final.
func requestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(headerRequestID, id)
		c.Locals(localRequestID, id)

		ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
		defer cancel()
		c.SetUserContext(log.With().Str(localRequestID, id).Logger().WithContext(ctx))

		start := time.Now()
		if err := c.Next(); err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		ev := log.Debug()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Str(localRequestID, id).
			Str("method", c.Method()).
			Str("path", c.OriginalURL()).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Msg("request")
		return nil
	}
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := err.Error()

	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		code, msg = fe.Code, fe.Message
	case errors.Is(err, ErrUnknownResource), errors.Is(err, ErrNotFound):
		code = fiber.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		code = fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(fiber.Map{"error": msg})
}
