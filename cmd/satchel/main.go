package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/hpungsan/satchel/internal/config"
	"github.com/hpungsan/satchel/internal/db"
	"github.com/hpungsan/satchel/internal/logging"
	"github.com/hpungsan/satchel/internal/mcp"
	"github.com/hpungsan/satchel/internal/ops"
	"github.com/hpungsan/satchel/internal/places"
	"github.com/hpungsan/satchel/internal/weather"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// cliCommands contains known CLI subcommands.
var cliCommands = map[string]bool{
	"generate": true, "places": true, "save": true, "show": true,
	"lists": true, "check": true, "uncheck": true, "delete": true,
	"export": true, "serve": true,
	"help": true,
}

// isCLIMode determines if we should run CLI vs MCP server.
func isCLIMode() bool {
	if len(os.Args) < 2 {
		return false // No args → MCP server
	}
	arg := os.Args[1]
	if cliCommands[arg] {
		return true
	}
	if arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" {
		return true
	}
	return false
}

// isHelpOrVersion returns true if the user is requesting help or version info.
func isHelpOrVersion() bool {
	if len(os.Args) < 2 {
		return false
	}
	arg := os.Args[1]
	return arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" || arg == "help"
}

// isTerminal returns true if stdin is a terminal (not piped).
func isTerminal() bool {
	stat, _ := os.Stdin.Stat()
	return (stat.Mode() & os.ModeCharDevice) != 0
}

func printBanner() {
	fmt.Println(`
             _       _          _
   ___  __ _| |_ ___| |__   ___| |
  / __|/ _' | __/ __| '_ \ / _ \ |
  \__ \ (_| | || (__| | | |  __/ |
  |___/\__,_|\__\___|_| |_|\___|_|

  Packing checklists from your trip details

  Usage: satchel <command> [options]
         satchel --help

  MCP server mode requires piped input.`)
}

// env holds everything commands and servers share.
type env struct {
	db      *sql.DB
	cfg     *config.Config
	weather weather.Provider
	places  *places.Service
	log     *zap.Logger
	baseDir string
}

// newWeather builds the configured weather provider. Without an API key
// there is none and lists are generated without weather. Lookups are cached
// in Redis when SATCHEL_REDIS_URL is set, in memory otherwise.
func newWeather(cfg *config.Config, logger *zap.Logger) (weather.Provider, func(), error) {
	if cfg.WeatherAPIKey == "" {
		return nil, func() {}, nil
	}
	client := weather.NewOpenWeather(cfg.WeatherAPIKey, cfg.WeatherTimeout(), logger)

	if cfg.RedisURL != "" {
		rc, err := weather.NewRedisCache(cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return weather.NewCached(client, rc, cfg.WeatherCacheTTL(), logger), func() { _ = rc.Close() }, nil
	}
	return weather.NewCached(client, weather.NewMemoryCache(), cfg.WeatherCacheTTL(), logger), func() {}, nil
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(1)
}

func main() {
	// No args + interactive terminal → show banner and exit
	if len(os.Args) < 2 && isTerminal() {
		printBanner()
		return
	}

	// Handle --help/--version before DB init (no DB needed)
	if isHelpOrVersion() {
		app := newCLIApp(nil)
		if err := app.Run(os.Args); err != nil {
			fatal("%v", err)
		}
		return
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		fatal("could not determine home directory: %v", err)
	}
	baseDir := filepath.Join(homeDir, ".satchel")

	cwd, err := os.Getwd()
	if err != nil {
		fatal("could not determine working directory: %v", err)
	}

	cfg, err := config.LoadWithRepo(baseDir, cwd)
	if err != nil {
		fatal("failed to load config: %v", err)
	}
	if err := cfg.LoadEnv(cwd); err != nil {
		fatal("failed to load environment: %v", err)
	}

	logger, err := logging.New(os.Getenv("SATCHEL_VERBOSE") != "")
	if err != nil {
		fatal("failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	database, err := db.Init(baseDir)
	if err != nil {
		fatal("failed to initialize database: %v", err)
	}
	defer database.Close()
	db.ConfigurePool(database, cfg)

	provider, closeWeather, err := newWeather(cfg, logger)
	if err != nil {
		fatal("%v", err)
	}
	defer closeWeather()

	e := &env{
		db:      database,
		cfg:     cfg,
		weather: provider,
		places:  places.NewService(places.GoogleLoader(cfg.PlacesAPIKey, nil), logger),
		log:     logger,
		baseDir: baseDir,
	}

	if isCLIMode() {
		app := newCLIApp(e)
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Unknown argument + terminal → show error (don't start MCP server)
	if len(os.Args) >= 2 && isTerminal() {
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "Run 'satchel --help' for usage.\n")
		os.Exit(1)
	}

	err = mcp.Run(mcp.Deps{
		DB:         database,
		Config:     cfg,
		Weather:    provider,
		Places:     e.places,
		Logger:     logger,
		ExportsDir: ops.DefaultExportsDir(baseDir),
	}, Version)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
