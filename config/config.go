package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// DefaultParagonProjectID is the integration-platform project used when no
// PARAGON_PROJECT_ID override is configured. Each deployed site carries its
// own default baked in at build/config time.
const DefaultParagonProjectID = "38b1f170-0c43-4eae-9a04-ab85325d99f7"

// DefaultSigningKeyPaths are probed, in order, when neither SIGNING_KEY_FILE
// nor SIGNING_KEY is set. The first entry covers the layout where the token
// service runs from the repository root with the admin subproject checked
// out next to it; the second is relative to the working directory.
var DefaultSigningKeyPaths = []string{
	"admin/keys/paragon-private.pem",
	"keys/paragon-private.pem",
}

// ServerConfig holds all configuration for the token service.
// Tags use mapstructure for Viper unmarshalling; every field can be set via
// the environment variable named after its tag.
type ServerConfig struct {
	HTTPPort        string `mapstructure:"HTTP_PORT"`
	LogLevel        string `mapstructure:"LOG_LEVEL"`
	LogPretty       bool   `mapstructure:"LOG_PRETTY"`
	OtelServiceName string `mapstructure:"OTEL_SERVICE_NAME"`

	// Token issuance
	ParagonProjectID string `mapstructure:"PARAGON_PROJECT_ID"`
	AdminSubject     string `mapstructure:"ADMIN_SUBJECT"`

	// Signing key resolution, in priority order: explicit file, inline key,
	// then the DefaultSigningKeyPaths probe.
	SigningKeyFile string `mapstructure:"SIGNING_KEY_FILE"`
	SigningKey     string `mapstructure:"SIGNING_KEY"`

	// Credential store. When MONGO_URI is set the credential table lives in
	// MongoDB; otherwise it is loaded once at startup from CREDENTIALS_FILE.
	CredentialsFile string `mapstructure:"CREDENTIALS_FILE"`
	MongoURI        string `mapstructure:"MONGO_URI"`
	MongoDBName     string `mapstructure:"MONGO_DB_NAME"`

	// Credential cache in front of the MongoDB repository. REDIS_ADDR
	// selects the shared Redis cache; empty means the in-process TTL cache.
	RedisAddr              string `mapstructure:"REDIS_ADDR"`
	CredentialCacheTTLSecs int    `mapstructure:"CREDENTIAL_CACHE_TTL_SECS"`

	// DebugErrors controls whether failure responses carry operator detail
	// (attempted paths, signing errors). Off in production: detail then goes
	// to the log only.
	DebugErrors bool `mapstructure:"DEBUG_ERRORS"`
}

// LoadConfig reads configuration from file, environment variables, and defaults.
func LoadConfig() (*ServerConfig, error) {
	v := viper.New()

	v.SetConfigName("tokend")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/tokend/")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PRETTY", false)
	v.SetDefault("OTEL_SERVICE_NAME", "tokend")
	v.SetDefault("PARAGON_PROJECT_ID", DefaultParagonProjectID)
	v.SetDefault("ADMIN_SUBJECT", "rescue-admin")
	v.SetDefault("CREDENTIALS_FILE", "credentials.json")
	v.SetDefault("MONGO_DB_NAME", "tokend")
	v.SetDefault("CREDENTIAL_CACHE_TTL_SECS", 60)
	v.SetDefault("DEBUG_ERRORS", false)

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine, we run on env vars and defaults.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg ServerConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	return &cfg, nil
}
