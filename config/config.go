package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"stargrid/version"
)

// Config holds Stargrid runtime configuration.
type Config struct {
	LogLevel             string
	LogFilePath          string
	Port                 int
	DatabaseURL          string
	SQLitePragmasEnabled bool
	SQLiteBusyTimeoutMS  int
	SQLiteJournalMode    string
	SQLiteSynchronous    string
	SQLiteForeignKeys    bool
	SQLiteMaxOpenConns   int
	SQLiteMaxIdleConns   int
	SQLiteConnMaxIdleSec int
	SQLiteConnMaxLifeSec int

	// Admin auth
	AdminPassword              string
	SessionTTLHours            int
	SessionSweepIntervalMinute int
	SessionCookieSecure        bool

	// File uploads
	UploadDir   string
	MaxUploadMB int

	CLIMode   bool
	CLIServer string // Server URL for CLI mode
}

// Settings is the global configuration instance populated from environment variables and flags.
var Settings *Config

// init populates the package-level Settings with defaults sourced from environment
// variables: logging, server, SQLite pragmas and pool parameters, admin auth and
// upload limits.
func init() {
	Settings = &Config{
		LogLevel:             getEnv("LOG_LEVEL", "INFO"),
		LogFilePath:          getEnv("LOG_FILE", "./stargrid.log"),
		Port:                 getEnvInt("PORT", 5000),
		DatabaseURL:          getEnv("DATABASE_URL", "stargrid.db"),
		SQLitePragmasEnabled: getEnvBool("SQLITE_PRAGMAS_ENABLED", true),
		SQLiteBusyTimeoutMS:  getEnvInt("SQLITE_BUSY_TIMEOUT_MS", 5000),
		SQLiteJournalMode:    getEnv("SQLITE_JOURNAL_MODE", "WAL"),
		SQLiteSynchronous:    getEnv("SQLITE_SYNCHRONOUS", "NORMAL"),
		SQLiteForeignKeys:    getEnvBool("SQLITE_FOREIGN_KEYS", true),
		SQLiteMaxOpenConns:   getEnvInt("SQLITE_MAX_OPEN_CONNS", 1),
		SQLiteMaxIdleConns:   getEnvInt("SQLITE_MAX_IDLE_CONNS", 1),
		SQLiteConnMaxIdleSec: getEnvInt("SQLITE_CONN_MAX_IDLE_SECONDS", 300),
		SQLiteConnMaxLifeSec: getEnvInt("SQLITE_CONN_MAX_LIFETIME_SECONDS", 0),

		AdminPassword:              getEnv("ADMIN_PASSWORD", "9999"),
		SessionTTLHours:            getEnvInt("SESSION_TTL_HOURS", 24),
		SessionSweepIntervalMinute: getEnvInt("SESSION_SWEEP_INTERVAL_MINUTES", 60),
		SessionCookieSecure:        getEnvBool("SESSION_COOKIE_SECURE", false),

		UploadDir:   getEnv("UPLOAD_DIR", "uploads"),
		MaxUploadMB: getEnvInt("MAX_UPLOAD_MB", 10),
		CLIMode:     getEnvBool("CLI_MODE", false),
	}
}

// ParseFlags parses command-line flags, applies any overrides to the package-level
// Settings, and handles --help (prints usage and exits) and --version (prints build
// info and exits).
func ParseFlags() {
	flag.Usage = func() {
		out := flag.CommandLine.Output()
		fmt.Fprintf(out, "Stargrid - content-managed calendar server\n\n")
		fmt.Fprintf(out, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintln(out, "Options:")
		flag.PrintDefaults()
		fmt.Fprintln(out, "\nEnvironment variables:")
		fmt.Fprintln(out, "  LOG_LEVEL                         Log level (DEBUG, INFO, WARN, ERROR)")
		fmt.Fprintln(out, "  LOG_FILE                          Log file path (default ./stargrid.log)")
		fmt.Fprintln(out, "  PORT                              HTTP server port (default 5000)")
		fmt.Fprintln(out, "  DATABASE_URL                      SQLite database path (default stargrid.db)")
		fmt.Fprintln(out, "  SQLITE_PRAGMAS_ENABLED            Enable SQLite PRAGMAs (true/false, default true)")
		fmt.Fprintln(out, "  SQLITE_BUSY_TIMEOUT_MS            SQLite busy_timeout in milliseconds (default 5000)")
		fmt.Fprintln(out, "  SQLITE_JOURNAL_MODE               SQLite journal_mode (default WAL)")
		fmt.Fprintln(out, "  SQLITE_SYNCHRONOUS                SQLite synchronous (default NORMAL)")
		fmt.Fprintln(out, "  SQLITE_FOREIGN_KEYS               Enable SQLite foreign_keys (true/false, default true)")
		fmt.Fprintln(out, "  SQLITE_MAX_OPEN_CONNS             SQLite MaxOpenConns (default 1)")
		fmt.Fprintln(out, "  SQLITE_MAX_IDLE_CONNS             SQLite MaxIdleConns (default 1)")
		fmt.Fprintln(out, "  SQLITE_CONN_MAX_IDLE_SECONDS      SQLite ConnMaxIdleTime in seconds (default 300)")
		fmt.Fprintln(out, "  SQLITE_CONN_MAX_LIFETIME_SECONDS  SQLite ConnMaxLifetime in seconds (default 0)")
		fmt.Fprintln(out, "  ADMIN_PASSWORD                    Shared admin password (default 9999; change it)")
		fmt.Fprintln(out, "  SESSION_TTL_HOURS                 Session lifetime in hours, 24-168 (default 24)")
		fmt.Fprintln(out, "  SESSION_SWEEP_INTERVAL_MINUTES    Interval minutes for expired-session sweep (default 60)")
		fmt.Fprintln(out, "  SESSION_COOKIE_SECURE             Set Secure on the session cookie (default false)")
		fmt.Fprintln(out, "  UPLOAD_DIR                        Directory for uploaded media (default uploads)")
		fmt.Fprintln(out, "  MAX_UPLOAD_MB                     Maximum upload size in MB (default 10)")
	}

	port := flag.Int("port", Settings.Port, "HTTP server port (overrides PORT)")
	db := flag.String("db", Settings.DatabaseURL, "SQLite database path (overrides DATABASE_URL)")
	sqlitePragmasEnabled := flag.Bool("sqlite-pragmas", Settings.SQLitePragmasEnabled, "Enable SQLite PRAGMAs (overrides SQLITE_PRAGMAS_ENABLED)")
	sqliteBusyTimeoutMS := flag.Int("sqlite-busy-timeout-ms", Settings.SQLiteBusyTimeoutMS, "SQLite busy_timeout in milliseconds (overrides SQLITE_BUSY_TIMEOUT_MS)")
	sqliteJournalMode := flag.String("sqlite-journal-mode", Settings.SQLiteJournalMode, "SQLite journal_mode (overrides SQLITE_JOURNAL_MODE)")
	sqliteSynchronous := flag.String("sqlite-synchronous", Settings.SQLiteSynchronous, "SQLite synchronous (overrides SQLITE_SYNCHRONOUS)")
	sqliteForeignKeys := flag.Bool("sqlite-foreign-keys", Settings.SQLiteForeignKeys, "Enable SQLite foreign_keys PRAGMA (overrides SQLITE_FOREIGN_KEYS)")
	logLevel := flag.String("log-level", Settings.LogLevel, "Log level: DEBUG, INFO, WARN, ERROR (overrides LOG_LEVEL)")
	logFile := flag.String("log-file", Settings.LogFilePath, "Log file path (overrides LOG_FILE)")
	adminPassword := flag.String("admin-password", Settings.AdminPassword, "Shared admin password (overrides ADMIN_PASSWORD)")
	sessionTTL := flag.Int("session-ttl-hours", Settings.SessionTTLHours, "Session lifetime in hours (overrides SESSION_TTL_HOURS)")
	uploadDir := flag.String("upload-dir", Settings.UploadDir, "Directory for uploaded media (overrides UPLOAD_DIR)")
	maxUploadMB := flag.Int("max-upload-mb", Settings.MaxUploadMB, "Maximum upload size in MB (overrides MAX_UPLOAD_MB)")
	cliMode := flag.Bool("cli", Settings.CLIMode, "Run in CLI mode (HTTP client only, no database)")
	cliServer := flag.String("server", "http://localhost:5000", "Server URL for CLI mode")

	showHelp := flag.Bool("help", false, "Show help and exit")
	showVersion := flag.Bool("version", false, "Show version and exit")

	flag.Parse()

	if *showVersion {
		fmt.Println(version.GetBuildInfo())
		os.Exit(0)
	}

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	Settings.Port = *port
	Settings.DatabaseURL = *db
	Settings.SQLitePragmasEnabled = *sqlitePragmasEnabled
	Settings.SQLiteBusyTimeoutMS = *sqliteBusyTimeoutMS
	Settings.SQLiteJournalMode = *sqliteJournalMode
	Settings.SQLiteSynchronous = *sqliteSynchronous
	Settings.SQLiteForeignKeys = *sqliteForeignKeys
	Settings.LogLevel = *logLevel
	Settings.LogFilePath = *logFile
	Settings.AdminPassword = *adminPassword
	Settings.SessionTTLHours = *sessionTTL
	Settings.UploadDir = *uploadDir
	Settings.MaxUploadMB = *maxUploadMB
	Settings.CLIMode = *cliMode
	Settings.CLIServer = *cliServer

	// Keep the session lifetime inside the supported window.
	if Settings.SessionTTLHours < 24 {
		Settings.SessionTTLHours = 24
	}
	if Settings.SessionTTLHours > 168 {
		Settings.SessionTTLHours = 168
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
