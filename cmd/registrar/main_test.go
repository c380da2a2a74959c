package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/registrar/internal/backend"
	"github.com/rshade/registrar/internal/cli"
)

func TestRun(t *testing.T) {
	t.Setenv("REGISTRAR_HOME", t.TempDir())
	t.Setenv("REGISTRAR_LOG_LEVEL", "error")

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{
			name:       "client version",
			args:       []string{"version", "--client-only"},
			wantCode:   cli.ExitCodeOK,
			wantStdout: "registrar dev",
		},
		{
			name:       "unknown command",
			args:       []string{"enroll"},
			wantCode:   cli.ExitCodeError,
			wantStderr: `unknown command "enroll"`,
		},
		{
			name:       "unknown resource",
			args:       []string{"list", "teachers", "--skip-version-check"},
			wantCode:   cli.ExitCodeError,
			wantStderr: "unknown resource",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(context.Background(), tt.args, &stdout, &stderr)
			assert.Equal(t, tt.wantCode, code, "stderr: %s", stderr.String())
			if tt.wantStdout != "" {
				assert.Contains(t, stdout.String(), tt.wantStdout)
			}
			if tt.wantStderr != "" {
				assert.Contains(t, stderr.String(), tt.wantStderr)
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil error returns 0", err: nil, want: cli.ExitCodeOK},
		{name: "generic error", err: errors.New("boom"), want: cli.ExitCodeError},
		{name: "explicit code", err: &cli.ExitError{Code: 42, Err: errors.New("custom")}, want: 42},
		{
			name: "wrapped explicit code",
			err:  errors.Join(errors.New("outer"), &cli.ExitError{Code: 7, Err: errors.New("inner")}),
			want: 7,
		},
		{name: "not found", err: fmt.Errorf("fetching: %w", backend.ErrNotFound), want: cli.ExitCodeNotFound},
		{name: "unauthorized", err: &backend.APIError{StatusCode: 401, Message: "no"}, want: cli.ExitCodeUnauthorized},
		{name: "incompatible", err: backend.ErrIncompatibleBackend, want: cli.ExitCodeIncompatible},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cli.ExitCode(tt.err))
		})
	}
}
