package domain

import "strings"

// EnvMap is the flat KEY=value view of a Laravel .env file. Keys are unique;
// the last occurrence of a duplicated key wins. Values never retain their
// surrounding quotes.
type EnvMap map[string]string

const (
	KeyAppKey          = "APP_KEY"
	KeyAppDebug        = "APP_DEBUG"
	KeyAppEnv          = "APP_ENV"
	KeyAppURL          = "APP_URL"
	KeyQueueConnection = "QUEUE_CONNECTION"
	KeySessionDriver   = "SESSION_DRIVER"
	KeyCacheDriver     = "CACHE_DRIVER"
	KeyDBConnection    = "DB_CONNECTION"
	KeyDBHost          = "DB_HOST"
	KeyDBPort          = "DB_PORT"
	KeyDBDatabase      = "DB_DATABASE"
	KeyDBUsername      = "DB_USERNAME"
	KeyDBPassword      = "DB_PASSWORD"
)

// EnvSettings is the typed view of the keys the pipeline cares about,
// resolved once after parsing. Audit rules and the tool provisioner read
// these fields instead of probing the raw map.
type EnvSettings struct {
	AppKey          string
	AppDebug        string
	AppEnv          string
	AppURL          string
	QueueConnection string
	SessionDriver   string
	CacheDriver     string
	DBConnection    string
	DBHost          string
	DBPort          string
	DBDatabase      string
	DBUsername      string
	DBPassword      string

	raw EnvMap
}

func NewEnvSettings(vars EnvMap) *EnvSettings {
	s := &EnvSettings{
		AppKey:          vars[KeyAppKey],
		AppDebug:        vars[KeyAppDebug],
		AppEnv:          vars[KeyAppEnv],
		AppURL:          vars[KeyAppURL],
		QueueConnection: vars[KeyQueueConnection],
		SessionDriver:   vars[KeySessionDriver],
		CacheDriver:     vars[KeyCacheDriver],
		DBConnection:    vars[KeyDBConnection],
		DBHost:          vars[KeyDBHost],
		DBPort:          vars[KeyDBPort],
		DBDatabase:      vars[KeyDBDatabase],
		DBUsername:      strings.TrimSpace(vars[KeyDBUsername]),
		DBPassword:      strings.TrimSpace(vars[KeyDBPassword]),
		raw:             vars,
	}
	if s.DBHost == "" {
		s.DBHost = "127.0.0.1"
	}
	return s
}

// Raw returns the underlying map for callers that need keys outside the
// typed set. Read-only by convention.
func (s *EnvSettings) Raw() EnvMap {
	return s.raw
}

func (s *EnvSettings) DebugEnabled() bool {
	return strings.EqualFold(s.AppDebug, "true")
}

func (s *EnvSettings) IsProduction() bool {
	return strings.EqualFold(s.AppEnv, "production")
}
