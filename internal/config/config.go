package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Docling  DoclingConfig
	Pipeline PipelineConfig
	Store    StoreConfig
	DB       DBConfig
	S3       S3Config
	Log      LogConfig
	CORS     CORSConfig
	UI       UIConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DoclingConfig holds settings for the docling-serve conversion backend.
type DoclingConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	APIKey       string        `mapstructure:"api_key"`
	Timeout      time.Duration `mapstructure:"timeout"`
	Async        bool          `mapstructure:"async"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
}

// PipelineConfig holds the picture description settings sent with every conversion.
type PipelineConfig struct {
	RepoID                string  `mapstructure:"repo_id"`
	Prompt                string  `mapstructure:"prompt"`
	MaxNewTokens          int     `mapstructure:"max_new_tokens"`
	DoSample              bool    `mapstructure:"do_sample"`
	SpecialTokenIDs       bool    `mapstructure:"special_token_ids"`
	ImagesScale           float64 `mapstructure:"images_scale"`
	GeneratePictureImages bool    `mapstructure:"generate_picture_images"`
	MaxPages              int     `mapstructure:"max_pages"`
	MaxFileSizeBytes      int64   `mapstructure:"max_file_size_bytes"`
	MaxConcurrent         int64   `mapstructure:"max_concurrent"`
}

// StoreConfig selects where conversion results are kept.
type StoreConfig struct {
	Driver     string        `mapstructure:"driver"` // memory | postgres
	MemorySize int           `mapstructure:"memory_size"`
	MemoryTTL  time.Duration `mapstructure:"memory_ttl"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds settings for archiving output documents in S3.
type S3Config struct {
	Enabled       bool   `mapstructure:"enabled"`
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	Prefix        string `mapstructure:"prefix"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// UIConfig holds settings for the upload page.
type UIConfig struct {
	Title           string `mapstructure:"title"`
	PreviewPictures int    `mapstructure:"preview_pictures"`
}

// Load reads configuration from environment variables with the PICDESC_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PICDESC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "15m")
	v.SetDefault("server.environment", "development")

	// Docling defaults
	v.SetDefault("docling.base_url", "http://localhost:5001")
	v.SetDefault("docling.api_key", "")
	v.SetDefault("docling.timeout", "10m")
	v.SetDefault("docling.async", false)
	v.SetDefault("docling.poll_interval", "2s")

	// Pipeline defaults
	v.SetDefault("pipeline.repo_id", DefaultRepoID)
	v.SetDefault("pipeline.prompt", DefaultPrompt)
	v.SetDefault("pipeline.max_new_tokens", 200)
	v.SetDefault("pipeline.do_sample", false)
	v.SetDefault("pipeline.special_token_ids", true)
	v.SetDefault("pipeline.images_scale", 2.0)
	v.SetDefault("pipeline.generate_picture_images", true)
	v.SetDefault("pipeline.max_pages", DefaultMaxPages)
	v.SetDefault("pipeline.max_file_size_bytes", DefaultMaxFileSizeBytes)
	v.SetDefault("pipeline.max_concurrent", 1)

	// Store defaults
	v.SetDefault("store.driver", "memory")
	v.SetDefault("store.memory_size", 64)
	v.SetDefault("store.memory_ttl", "1h")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "picdesc")
	v.SetDefault("db.password", "picdesc_secret")
	v.SetDefault("db.name", "picdesc_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 10)
	v.SetDefault("db.max_idle", 5)

	// S3 defaults
	v.SetDefault("s3.enabled", false)
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "picdesc-results")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.prefix", "conversions")
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// UI defaults
	v.SetDefault("ui.title", "Picture Description Pipeline")
	v.SetDefault("ui.preview_pictures", 5)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                      "PICDESC_SERVER_PORT",
		"server.read_timeout":              "PICDESC_SERVER_READ_TIMEOUT",
		"server.write_timeout":             "PICDESC_SERVER_WRITE_TIMEOUT",
		"server.environment":               "PICDESC_SERVER_ENVIRONMENT",
		"docling.base_url":                 "PICDESC_DOCLING_BASE_URL",
		"docling.api_key":                  "PICDESC_DOCLING_API_KEY",
		"docling.timeout":                  "PICDESC_DOCLING_TIMEOUT",
		"docling.async":                    "PICDESC_DOCLING_ASYNC",
		"docling.poll_interval":            "PICDESC_DOCLING_POLL_INTERVAL",
		"pipeline.repo_id":                 "PICDESC_PIPELINE_REPO_ID",
		"pipeline.prompt":                  "PICDESC_PIPELINE_PROMPT",
		"pipeline.max_new_tokens":          "PICDESC_PIPELINE_MAX_NEW_TOKENS",
		"pipeline.do_sample":               "PICDESC_PIPELINE_DO_SAMPLE",
		"pipeline.special_token_ids":       "PICDESC_PIPELINE_SPECIAL_TOKEN_IDS",
		"pipeline.images_scale":            "PICDESC_PIPELINE_IMAGES_SCALE",
		"pipeline.generate_picture_images": "PICDESC_PIPELINE_GENERATE_PICTURE_IMAGES",
		"pipeline.max_pages":               "PICDESC_PIPELINE_MAX_PAGES",
		"pipeline.max_file_size_bytes":     "PICDESC_PIPELINE_MAX_FILE_SIZE_BYTES",
		"pipeline.max_concurrent":          "PICDESC_PIPELINE_MAX_CONCURRENT",
		"store.driver":                     "PICDESC_STORE_DRIVER",
		"store.memory_size":                "PICDESC_STORE_MEMORY_SIZE",
		"store.memory_ttl":                 "PICDESC_STORE_MEMORY_TTL",
		"db.host":                          "PICDESC_DB_HOST",
		"db.port":                          "PICDESC_DB_PORT",
		"db.user":                          "PICDESC_DB_USER",
		"db.password":                      "PICDESC_DB_PASSWORD",
		"db.name":                          "PICDESC_DB_NAME",
		"db.sslmode":                       "PICDESC_DB_SSLMODE",
		"db.max_open":                      "PICDESC_DB_MAX_OPEN",
		"db.max_idle":                      "PICDESC_DB_MAX_IDLE",
		"s3.enabled":                       "PICDESC_S3_ENABLED",
		"s3.region":                        "PICDESC_S3_REGION",
		"s3.bucket":                        "PICDESC_S3_BUCKET",
		"s3.endpoint":                      "PICDESC_S3_ENDPOINT",
		"s3.access_key":                    "PICDESC_S3_ACCESS_KEY",
		"s3.secret_key":                    "PICDESC_S3_SECRET_KEY",
		"s3.prefix":                        "PICDESC_S3_PREFIX",
		"s3.presign_expiry":                "PICDESC_S3_PRESIGN_EXPIRY",
		"log.level":                        "PICDESC_LOG_LEVEL",
		"log.format":                       "PICDESC_LOG_FORMAT",
		"cors.allowed_origins":             "PICDESC_CORS_ALLOWED_ORIGINS",
		"ui.title":                         "PICDESC_UI_TITLE",
		"ui.preview_pictures":              "PICDESC_UI_PREVIEW_PICTURES",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Hosting platforms set PORT. Use it unless PICDESC_SERVER_PORT is explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("PICDESC_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Docling = DoclingConfig{
		BaseURL:      strings.TrimRight(v.GetString("docling.base_url"), "/"),
		APIKey:       v.GetString("docling.api_key"),
		Timeout:      v.GetDuration("docling.timeout"),
		Async:        v.GetBool("docling.async"),
		PollInterval: v.GetDuration("docling.poll_interval"),
	}
	cfg.Pipeline = PipelineConfig{
		RepoID:                v.GetString("pipeline.repo_id"),
		Prompt:                v.GetString("pipeline.prompt"),
		MaxNewTokens:          v.GetInt("pipeline.max_new_tokens"),
		DoSample:              v.GetBool("pipeline.do_sample"),
		SpecialTokenIDs:       v.GetBool("pipeline.special_token_ids"),
		ImagesScale:           v.GetFloat64("pipeline.images_scale"),
		GeneratePictureImages: v.GetBool("pipeline.generate_picture_images"),
		MaxPages:              v.GetInt("pipeline.max_pages"),
		MaxFileSizeBytes:      v.GetInt64("pipeline.max_file_size_bytes"),
		MaxConcurrent:         v.GetInt64("pipeline.max_concurrent"),
	}
	cfg.Store = StoreConfig{
		Driver:     v.GetString("store.driver"),
		MemorySize: v.GetInt("store.memory_size"),
		MemoryTTL:  v.GetDuration("store.memory_ttl"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.S3 = S3Config{
		Enabled:       v.GetBool("s3.enabled"),
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		Prefix:        strings.Trim(v.GetString("s3.prefix"), "/"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	cfg.UI = UIConfig{
		Title:           v.GetString("ui.title"),
		PreviewPictures: v.GetInt("ui.preview_pictures"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case "memory", "postgres":
	default:
		return fmt.Errorf("unknown store driver: %s", c.Store.Driver)
	}
	if c.Pipeline.MaxPages <= 0 {
		return fmt.Errorf("pipeline.max_pages must be positive, got %d", c.Pipeline.MaxPages)
	}
	if c.Pipeline.MaxFileSizeBytes <= 0 {
		return fmt.Errorf("pipeline.max_file_size_bytes must be positive, got %d", c.Pipeline.MaxFileSizeBytes)
	}
	if c.Pipeline.MaxConcurrent <= 0 {
		return fmt.Errorf("pipeline.max_concurrent must be positive, got %d", c.Pipeline.MaxConcurrent)
	}
	return nil
}
