package cli

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"task-manager/internal/config"
	"task-manager/internal/logging"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd   *cobra.Command
	app   *App
	info  BuildInfo
	out   io.Writer
	flags rootFlags
}

type rootFlags struct {
	envFile     string
	environment string
	provider    string
	dsn         string
	addr        string
	logLevel    string
	logJSON     bool
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(info BuildInfo, out io.Writer) *RootCommand {
	if out == nil {
		out = os.Stdout
	}
	root := &RootCommand{
		info: info,
		out:  out,
	}

	root.cmd = &cobra.Command{
		Use:   "taskmanager",
		Short: "A REST service for managing tasks",
		Long: `taskmanager serves a JSON API for creating, updating, searching and
deleting tasks. Tasks carry a name, details and yyyy/MM/dd HH:mm:ss
create and update dates.

EXAMPLES:
  taskmanager serve                              # Serve on :8080 with a sqlite file
  taskmanager serve --provider memory            # Serve from a process-local store
  taskmanager serve --provider postgres --dsn postgres://localhost/tasks
  taskmanager migrate                            # Apply pending migrations
  taskmanager migrate --rollback                 # Revert the latest migration

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > .env file > defaults

    TM_APP_ENVIRONMENT                     development, production or testing (default: development)
    TM_APP_TIMEZONE                        IANA zone used for task dates (default: Local)
    TM_SERVER_ADDR                         Listen address (default: :8080)
    TM_SERVER_REQUEST_TIMEOUT              Per-request timeout (default: 10s)
    TM_SERVER_SHUTDOWN_TIMEOUT             Graceful shutdown timeout (default: 15s)
    TM_SERVER_ENABLE_SWAGGER               Serve /swagger (default: true)
    TM_SERVER_ENABLE_METRICS               Serve /metrics (default: true)
    TM_DATABASE_PROVIDER                   memory, sqlite or postgres (default: sqlite)
    TM_DATABASE_DSN                        Connection string
    TM_DATABASE_DIR                        sqlite directory (default: data)
    TM_DATABASE_FILENAME                   sqlite filename (default: tasks.db)
    TM_LOG_LEVEL                           debug, info, warn or error (default: info)
    TM_LOG_JSON                            JSON log lines (default: false)
    TM_DEBUG                               Verbose internal tracing`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.loadConfig(cmd)
		},
	}
	root.cmd.SetOut(out)

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute(ctx context.Context) error {
	return r.cmd.ExecuteContext(ctx)
}

// SetArgs replaces os.Args for the next Execute.
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.StringVar(&r.flags.envFile, "env-file", config.DefaultEnvFile, "Optional dotenv file")
	flags.StringVar(&r.flags.environment, "env", "", "Environment (overrides TM_APP_ENVIRONMENT)")
	flags.StringVar(&r.flags.provider, "provider", "", "Store provider (overrides TM_DATABASE_PROVIDER)")
	flags.StringVar(&r.flags.dsn, "dsn", "", "Connection string (overrides TM_DATABASE_DSN)")
	flags.StringVar(&r.flags.addr, "addr", "", "Listen address (overrides TM_SERVER_ADDR)")
	flags.StringVar(&r.flags.logLevel, "log-level", "", "Log level (overrides TM_LOG_LEVEL)")
	flags.BoolVar(&r.flags.logJSON, "log-json", false, "JSON log lines (overrides TM_LOG_JSON)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long:  "Open the configured store, apply pending migrations and serve HTTP until interrupted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewServeCommand(r.app).Execute(cmd.Context(), args)
		},
	}

	var migrateOpts MigrateOptions
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply schema migrations and exit",
		Long: `Apply pending schema migrations to the configured database.

Examples:
  taskmanager migrate              # Apply pending migrations
  taskmanager migrate --status     # Print applied versions
  taskmanager migrate --rollback   # Revert the latest migration
  taskmanager migrate --force      # Retry migrations left dirty by a failure`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewMigrateCommand(r.app, migrateOpts).Execute(cmd.Context(), args)
		},
	}
	migrateCmd.Flags().BoolVar(&migrateOpts.Rollback, "rollback", false, "Revert the latest applied migration")
	migrateCmd.Flags().BoolVar(&migrateOpts.Force, "force", false, "Clear dirty migrations before applying")
	migrateCmd.Flags().BoolVar(&migrateOpts.Status, "status", false, "Print applied versions only")
	migrateCmd.MarkFlagsMutuallyExclusive("rollback", "force", "status")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewVersionCommand(r.app, r.info).Execute(cmd.Context(), args)
		},
	}

	r.cmd.AddCommand(serveCmd, migrateCmd, versionCmd)
}

// configOverrides converts explicitly set flags into loader overrides
func (r *RootCommand) configOverrides(cmd *cobra.Command) *config.ConfigOverrides {
	flags := cmd.Flags()
	overrides := &config.ConfigOverrides{}

	if flags.Changed("env") {
		overrides.Environment = &r.flags.environment
	}
	if flags.Changed("provider") {
		overrides.Provider = &r.flags.provider
	}
	if flags.Changed("dsn") {
		overrides.DSN = &r.flags.dsn
	}
	if flags.Changed("addr") {
		overrides.Addr = &r.flags.addr
	}
	if flags.Changed("log-level") {
		overrides.LogLevel = &r.flags.logLevel
	}
	if flags.Changed("log-json") {
		overrides.LogJSON = &r.flags.logJSON
	}
	return overrides
}

// loadConfig resolves configuration and initializes logging before any command runs
func (r *RootCommand) loadConfig(cmd *cobra.Command) error {
	cfg, err := config.NewLoader(r.flags.envFile).LoadWithOverrides(r.configOverrides(cmd))
	if err != nil {
		return err
	}

	logger := logging.Init(cfg.LoggingConfig())
	r.app = NewApp(cfg, logger, r.out)
	return nil
}

// App returns the application built by the last run.
func (r *RootCommand) App() *App {
	return r.app
}
