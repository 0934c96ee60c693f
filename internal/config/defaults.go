package config

const (
	defaultDataDir         = "~/.local/share/garland"
	defaultCacheDir        = "~/.cache/garland"
	defaultLogDir          = "~/.local/share/garland/logs"
	defaultDatabasePath    = "~/.local/share/garland/garland.db"
	defaultExportDir       = "~/.local/share/garland/exports"
	defaultCurrentEdition  = 97
	defaultRegistryBaseURL = "https://www.oscars.org/oscars/ceremonies"
	defaultIMDbBaseURL     = "https://www.imdb.com/event/ev0000003"
	defaultRequestTimeout  = 30
	defaultFetchDelay      = 2
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
	defaultAPIBind         = "127.0.0.1:8641"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:      defaultDataDir,
			CacheDir:     defaultCacheDir,
			LogDir:       defaultLogDir,
			DatabasePath: defaultDatabasePath,
			ExportDir:    defaultExportDir,
		},
		Award: Award{
			CurrentEdition: defaultCurrentEdition,
		},
		Sources: Sources{
			RegistryBaseURL: defaultRegistryBaseURL,
			IMDbBaseURL:     defaultIMDbBaseURL,
			RequestTimeout:  defaultRequestTimeout,
			FetchDelay:      defaultFetchDelay,
		},
		API: API{
			Bind: defaultAPIBind,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
