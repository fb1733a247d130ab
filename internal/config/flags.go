package config

import (
	"flag"
	"time"
)

// ParseFlags parses the command-line configuration flags.
//
// Flags:
//
//	-a server address in [host]:[port] format
//	-d database DSN
//	-driver database driver (sqlite3 or pgx)
//	-request-timeout request timeout (e.g. "30s", "1m")
//	-log-role role label stamped on log entries
//	-c/-config json file path with configs
func ParseFlags() *StructuredConfig {
	var (
		serverAddress  string
		databaseDSN    string
		databaseDriver string
		requestTimeout time.Duration
		logRole        string
		jsonConfigPath string
	)

	flag.StringVar(&serverAddress, "a", "", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&databaseDriver, "driver", "", "Database driver (sqlite3 or pgx)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g. 30s, 1m)")
	flag.StringVar(&logRole, "log-role", "", "Log role label")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			LogRole: logRole,
		},
		Storage: Storage{
			DB: DB{
				Driver: databaseDriver,
				DSN:    databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress,
			RequestTimeout: requestTimeout,
		},
		jsonFilePath: jsonConfigPath,
	}
}
