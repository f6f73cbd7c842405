package backend

import (
	"fmt"

	"gastos/internal/config"
)

// FromAppConfig builds the configuration of the primary store, read cache
// included.
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}
	cfg, err := fromAppConfig(appConfig, appConfig.PrefsBackend)
	if err != nil {
		return Config{}, err
	}
	cfg.CacheTTL = appConfig.CacheTTL
	cfg.CacheSize = appConfig.CacheSize
	return cfg, nil
}

// SourceFromAppConfig builds the configuration of the primary store for a
// process that only reads it. The read cache is left off: such a process
// never writes, so a cached entry would never be refreshed.
func SourceFromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}
	return fromAppConfig(appConfig, appConfig.PrefsBackend)
}

// MirrorFromAppConfig builds the configuration of the mirror store. ok is
// false when no mirror is configured.
func MirrorFromAppConfig(appConfig *config.Config) (cfg Config, ok bool, err error) {
	if appConfig == nil {
		return Config{}, false, fmt.Errorf("app config is nil")
	}
	if appConfig.MirrorBackend == "" {
		return Config{}, false, nil
	}
	cfg, err = fromAppConfig(appConfig, appConfig.MirrorBackend)
	if err != nil {
		return Config{}, false, err
	}
	return cfg, true, nil
}

func fromAppConfig(appConfig *config.Config, backend string) (Config, error) {
	backendType := BackendType(backend)
	if !backendType.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %s", backend)
	}
	return Config{
		Type:                     backendType,
		FilePath:                 appConfig.PrefsFilePath,
		SQLiteDBPath:             appConfig.SQLiteDBPath,
		MemcachedHosts:           appConfig.MemcachedHosts,
		GoogleSpreadsheetID:      appConfig.GoogleSpreadsheetID,
		GoogleServiceAccountJSON: appConfig.GoogleServiceAccountJSON,
		GoogleServiceAccountFile: appConfig.GoogleServiceAccountFile,
	}, nil
}

// Validate validates the backend configuration
func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid backend type: %s", c.Type)
	}

	switch c.Type {
	case FileBackend:
		if c.FilePath == "" {
			return fmt.Errorf("file path is required for file backend")
		}
	case SQLiteBackend:
		if c.SQLiteDBPath == "" {
			return fmt.Errorf("SQLite database path is required for sqlite backend")
		}
	case MemcachedBackend:
		if len(c.MemcachedHosts) == 0 {
			return fmt.Errorf("at least one host is required for memcached backend")
		}
	case SheetsBackend:
		if c.GoogleSpreadsheetID == "" {
			return fmt.Errorf("Google Spreadsheet ID is required for sheets backend")
		}
		if c.GoogleServiceAccountJSON == "" && c.GoogleServiceAccountFile == "" {
			return fmt.Errorf("either GoogleServiceAccountJSON or GoogleServiceAccountFile must be provided for sheets backend")
		}
	}

	if c.CacheTTL < 0 {
		return fmt.Errorf("cache TTL must not be negative")
	}
	if c.CacheTTL > 0 && c.CacheSize < 1 {
		return fmt.Errorf("cache size must be at least 1 when caching is enabled")
	}
	return nil
}

// GetBackendTypes returns all valid backend types
func GetBackendTypes() []BackendType {
	return []BackendType{MemoryBackend, FileBackend, SQLiteBackend, MemcachedBackend, SheetsBackend}
}

// GetBackendTypeStrings returns all valid backend type strings
func GetBackendTypeStrings() []string {
	types := GetBackendTypes()
	strings := make([]string, len(types))
	for i, t := range types {
		strings[i] = t.String()
	}
	return strings
}
