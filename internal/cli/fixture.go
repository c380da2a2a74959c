package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rshade/registrar/internal/config"
	"github.com/rshade/registrar/internal/fixture"
	"github.com/rshade/registrar/internal/logging"
)

const (
	defaultFixtureAddr = ":8080"
	fixtureDBName      = "fixture.db"
)

type fixtureServeParams struct {
	addr    string
	dbPath  string
	seed    bool
	token   string
	version string
}

// NewFixtureServeCmd creates the fixture serve command, which runs the
// development records service on a local SQLite database.
func NewFixtureServeCmd() *cobra.Command {
	var params fixtureServeParams

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve seeded academic records over HTTP",
		Long: `Runs a records service for development and demos. Records live in a
SQLite database (default $REGISTRAR_HOME/fixture.db) and are seeded on first
start with 4 categories, 12 courses, 60 students and their grades.

Endpoints:
  GET /api/version
  GET /api/{resource}?q=&<field>=
  GET /api/{resource}/paged?page=&size=&q=
  GET /api/{resource}/{id}`,
		Example: `  # Serve on :8080 with seeded data
  registrar fixture serve

  # Serve an in-memory database on another port, requiring a token
  registrar fixture serve --addr 127.0.0.1:9090 --db :memory: --token s3cret`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFixtureServe(cmd, params)
		},
	}

	cmd.Flags().StringVar(&params.addr, "addr", defaultFixtureAddr, "listen address")
	cmd.Flags().StringVar(&params.dbPath, "db", "", "SQLite database path, or :memory: (default $REGISTRAR_HOME/"+fixtureDBName+")")
	cmd.Flags().BoolVar(&params.seed, "seed", true, "seed an empty database with sample records")
	cmd.Flags().StringVar(&params.token, "token", "", "require this bearer token on /api routes")
	cmd.Flags().StringVar(&params.version, "api-version", fixture.Version, "API version reported by /api/version")

	return cmd
}

func runFixtureServe(cmd *cobra.Command, params fixtureServeParams) error {
	log := logging.ComponentLogger(*logging.FromContext(cmd.Context()), "fixture")

	dbPath := params.dbPath
	if dbPath == "" {
		dir, err := config.GetConfigDir()
		if err != nil {
			return err
		}
		if err = config.EnsureConfigDir(); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		dbPath = filepath.Join(dir, fixtureDBName)
	}

	store, err := fixture.Open(dbPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("closing fixture database")
		}
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if params.seed {
		seeded, seedErr := store.Seed(ctx)
		if seedErr != nil {
			return fmt.Errorf("seeding %s: %w", dbPath, seedErr)
		}
		if seeded {
			cmd.Printf("Seeded %s with sample records\n", dbPath)
		}
	}

	app := fixture.NewServer(store,
		fixture.WithToken(params.token),
		fixture.WithVersion(params.version),
		fixture.WithLogger(log),
	)

	cmd.Printf("Serving records from %s on %s (ctrl+c to stop)\n", dbPath, params.addr)
	log.Info().Str("addr", params.addr).Str("db", dbPath).Str("api_version", params.version).Msg("fixture listening")

	if err = fixture.Serve(ctx, app, params.addr); err != nil {
		return fmt.Errorf("serving fixture: %w", err)
	}
	log.Info().Msg("fixture stopped")
	return nil
}
