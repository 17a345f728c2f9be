package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/students/internal/config"
	"github.com/JonMunkholm/students/internal/console"
	"github.com/JonMunkholm/students/internal/logging"
	"github.com/JonMunkholm/students/internal/storage"
	"github.com/JonMunkholm/students/internal/student"
)

// cli holds the state shared by every command of one invocation.
type cli struct {
	// Flags
	dataFile   string
	importFile string

	cfg     *config.Config
	backend storage.Backend
	closers []func()
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:   "students",
		Short: "Manage student records stored in a CSV file",
		Long: `students keeps a list of student records (id, name, age, major) in a CSV
file and edits it through a numbered console menu.

Every change is written back to the file immediately. When DATABASE_URL is
set, each save is also copied into a PostgreSQL table.

Run without arguments to start the interactive menu.`,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
		RunE:              c.runMenu,
	}

	root.PersistentFlags().StringVar(&c.dataFile, "data", "", "store file (overrides STUDENTS_DATA_FILE)")
	root.PersistentFlags().StringVar(&c.importFile, "import-file", "", "bulk import source (overrides STUDENTS_IMPORT_FILE)")

	root.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Print every stored student",
			Args:  cobra.NoArgs,
			RunE:  c.runList,
		},
		&cobra.Command{
			Use:   "search [keyword]",
			Short: "Print students whose name contains keyword, ignoring case",
			Args:  cobra.MinimumNArgs(1),
			RunE:  c.runSearch,
		},
		&cobra.Command{
			Use:   "import [file]",
			Short: "Add the new students found in a file and save",
			Long: `Reads id,name,age,major records from file (default: the configured
import file) and adds those whose ID is not stored yet. Malformed lines are
reported and skipped.`,
			Args: cobra.MaximumNArgs(1),
			RunE: c.runImport,
		},
	)
	return root
}

// setup loads configuration, installs the logger and opens the storage
// backend. It runs before every command.
func (c *cli) setup(cmd *cobra.Command, args []string) error {
	// A .env file is optional; real environment variables take precedence.
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if c.dataFile != "" {
		cfg.Store.DataFile = c.dataFile
	}
	if c.importFile != "" {
		cfg.Store.ImportFile = c.importFile
	}
	c.cfg = cfg

	logging.Setup(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)
	ctx, session := logging.WithSession(cmd.Context())
	cmd.SetContext(ctx)

	log := logging.FromContext(ctx)
	if envErr != nil && !errors.Is(envErr, fs.ErrNotExist) {
		log.Warn("could not read .env file", "error", envErr)
	}
	log.Info("session started", "session", session, "command", cmd.Name(), "config", cfg.String())

	c.backend = c.openBackend(ctx, cmd)
	return nil
}

// openBackend returns the file backend, mirrored to PostgreSQL when a
// database is configured and reachable. A database that cannot be reached
// is reported and the run continues with the file alone.
func (c *cli) openBackend(ctx context.Context, cmd *cobra.Command) storage.Backend {
	file := storage.NewFile(c.cfg.Store.DataFile)
	if !c.cfg.Database.Enabled() {
		return file
	}

	log := logging.FromContext(ctx)
	pg, pool, err := openPostgres(ctx, c.cfg.Database)
	if err != nil {
		log.Warn("database mirror disabled", "error", err)
		fmt.Fprintf(cmd.ErrOrStderr(), "Database copy disabled, saving to %s only: %s\n",
			file, student.FormatUserError(err))
		return file
	}
	c.closers = append(c.closers, pool.Close)

	if u, err := url.Parse(c.cfg.Database.URL); err == nil {
		log.Info("connected to database", "name", strings.TrimPrefix(u.Path, "/"), "table", pg.String())
	}
	return &storage.Mirrored{Primary: file, Mirrors: []storage.Backend{pg}, Logger: log}
}

func openPostgres(ctx context.Context, cfg config.DatabaseConfig) (*storage.Postgres, *pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("parse database URL: %w", err)
	}
	poolConfig.MaxConns = int32(cfg.MaxConns)

	connectCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, poolConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(connectCtx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}

	pg, err := storage.NewPostgres(pool, cfg.Table, cfg.Timeout)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}
	if err := pg.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return pg, pool, nil
}

func (c *cli) close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
	slog.Debug("session closed")
}

func (c *cli) newApp(cmd *cobra.Command) *console.App {
	return console.New(console.Options{
		Backend:    c.backend,
		ImportPath: c.cfg.Store.ImportFile,
		In:         cmd.InOrStdin(),
		Out:        cmd.OutOrStdout(),
	})
}
