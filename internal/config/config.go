package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Uploads  UploadsConfig  `yaml:"uploads"`
	Chat     ChatConfig     `yaml:"chat"`
	Log      LogConfig      `yaml:"log"`
	CORS     CORSConfig     `yaml:"cors"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AuthConfig holds JWT settings. Admin sessions get a longer TTL because
// the admin panel keeps a session open across long editing sessions.
type AuthConfig struct {
	JWTSecret     string        `yaml:"jwt_secret"      env:"AUTH_JWT_SECRET"      env-required:"true"`
	JWTIssuer     string        `yaml:"jwt_issuer"      env:"AUTH_JWT_ISSUER"      env-default:"englearn"`
	TokenTTL      time.Duration `yaml:"token_ttl"       env:"AUTH_TOKEN_TTL"       env-default:"1h"`
	AdminTokenTTL time.Duration `yaml:"admin_token_ttl" env:"AUTH_ADMIN_TOKEN_TTL" env-default:"8h"`
	ResetTokenTTL time.Duration `yaml:"reset_token_ttl" env:"AUTH_RESET_TOKEN_TTL" env-default:"1h"`
}

// UploadsConfig holds file-upload settings.
type UploadsConfig struct {
	Dir          string `yaml:"dir"            env:"UPLOADS_DIR"            env-default:"./uploads"`
	MaxCSVBytes  int64  `yaml:"max_csv_bytes"  env:"UPLOADS_MAX_CSV_BYTES"  env-default:"10485760"`
	MaxFileBytes int64  `yaml:"max_file_bytes" env:"UPLOADS_MAX_FILE_BYTES" env-default:"10485760"`
	MaxImgBytes  int64  `yaml:"max_img_bytes"  env:"UPLOADS_MAX_IMG_BYTES"  env-default:"5242880"`
}

// ChatConfig holds settings for the chat completion upstream.
// An empty APIKey switches the chat service to mock responses.
type ChatConfig struct {
	APIKey       string        `yaml:"api_key"       env:"CHAT_API_KEY"`
	BaseURL      string        `yaml:"base_url"      env:"CHAT_BASE_URL"      env-default:"https://openrouter.ai/api/v1"`
	DefaultModel string        `yaml:"default_model" env:"CHAT_DEFAULT_MODEL" env-default:"nousresearch/deephermes-3-mistral-24b-preview:free"`
	Referer      string        `yaml:"referer"       env:"CHAT_REFERER"       env-default:"http://localhost:8080"`
	Title        string        `yaml:"title"         env:"CHAT_TITLE"         env-default:"English Learning App"`
	Timeout      time.Duration `yaml:"timeout"       env:"CHAT_TIMEOUT"       env-default:"60s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}
