package config

// Config holds all application configuration, grouped by concern.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	Store  StoreConfig  `mapstructure:"store"  validate:"required"`
	Auth   AuthConfig   `mapstructure:"auth"   validate:"required"`
	LLM    LLMConfig    `mapstructure:"llm"`
}

// ServerConfig contains all server-related settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// StoreConfig selects and configures the persistence backend.
type StoreConfig struct {
	// Driver is one of "file", "redis", or "postgres".
	Driver string `mapstructure:"driver" validate:"required,oneof=file redis postgres"`

	// FilePath is the JSON document path for the file driver.
	FilePath string `mapstructure:"file_path" validate:"required_if=Driver file"`

	// RedisURL is the redis:// URL for the redis driver.
	RedisURL string `mapstructure:"redis_url" validate:"required_if=Driver redis"`

	// DatabaseURL is the postgres:// URL for the postgres driver.
	DatabaseURL string `mapstructure:"database_url" validate:"required_if=Driver postgres"`
}

// AuthConfig contains the single-user authentication settings. The
// bcrypt hash of the local user's password lives in configuration, not
// in the data tree.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	PasswordHash         string `mapstructure:"password_hash"          validate:"required"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"gte=0"`
}

// LLMConfig contains the content-generation settings. Generation is
// optional: with no API key configured the generate endpoints report
// the feature disabled, while pasted responses keep working.
type LLMConfig struct {
	GeminiAPIKey      string `mapstructure:"gemini_api_key"`
	ModelName         string `mapstructure:"model_name"`
	MaxRetries        int    `mapstructure:"max_retries"         validate:"gte=0"`
	RetryDelaySeconds int    `mapstructure:"retry_delay_seconds" validate:"gte=0"`
}
