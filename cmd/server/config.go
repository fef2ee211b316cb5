package main

import (
	"github.com/flowvault/flowvault/pkg/httpserver"
	"github.com/flowvault/flowvault/pkg/logger"
)

// appConfig is the top-level server configuration. Backend-specific configs
// (Postgres, Mongo, Redis, Postmark) are loaded separately and only when
// the selected driver needs them, so unused backends do not demand env vars.
type appConfig struct {
	Env  string `env:"APP_ENV" envDefault:"development"`
	Log  logger.Config
	HTTP httpserver.Config

	// TokenSecret signs and verifies websocket handshake tokens and API
	// bearer tokens in the dev verifier.
	TokenSecret string `env:"TOKEN_SECRET,required"`

	// AuditDriver selects the audit storage backend: memory, postgres, mongo.
	AuditDriver string `env:"AUDIT_DRIVER" envDefault:"memory"`
	// MongoDatabase is the database name used when AuditDriver is mongo.
	MongoDatabase string `env:"MONGODB_DATABASE" envDefault:"flowvault"`

	// EmailDriver selects the mail transport: dev (writes files) or postmark.
	EmailDriver string `env:"EMAIL_DRIVER" envDefault:"dev"`
	DevMailDir  string `env:"DEV_MAIL_DIR" envDefault:"./tmp/mail"`

	// UsersFile seeds the in-memory user store.
	UsersFile string `env:"USERS_FILE" envDefault:""`
	// UserCacheEnabled puts a Redis read-through cache in front of the user
	// store. Requires REDIS_URL.
	UserCacheEnabled bool `env:"USERSTORE_CACHE_ENABLED" envDefault:"false"`
}

const (
	auditDriverMemory   = "memory"
	auditDriverPostgres = "postgres"
	auditDriverMongo    = "mongo"

	emailDriverDev      = "dev"
	emailDriverPostmark = "postmark"
)
