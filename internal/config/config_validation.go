package config

// defaultConfig supplies the fallback values merged in last, so any value
// provided by env, flags or JSON wins over it.
func defaultConfig() *StructuredConfig {
	cfg := &StructuredConfig{}
	cfg.App.LogRole = "collectify"
	cfg.Storage.DB.Driver = DriverSQLite
	cfg.Storage.DB.DSN = "collectify.db"
	cfg.Server.HTTPAddress = ":8080"
	cfg.Server.RequestTimeout = defaultRequestTimeout
	return cfg
}

// validate checks that the final merged StructuredConfig satisfies the
// invariants required at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.Driver != DriverSQLite && cfg.Storage.DB.Driver != DriverPostgres {
		return ErrInvalidStorageConfigs
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	return nil
}
