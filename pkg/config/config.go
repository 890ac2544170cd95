package config

import (
	"fmt"
	"log"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Transcription providers
const (
	ProviderOpenAI     = "openai"
	ProviderAssemblyAI = "assemblyai"
)

// Storage backends for the output archive
const (
	StorageNone  = "none"
	StorageLocal = "local"
	StorageMinIO = "minio"
)

// ResponseFormats lists every response format the transcription endpoint accepts.
var ResponseFormats = []string{"text", "json", "verbose_json", "srt", "vtt"}

// Config holds application configuration
type Config struct {
	OpenAI     OpenAIConfig     `envconfig:"OPENAI"`
	AssemblyAI AssemblyAIConfig `envconfig:"ASSEMBLYAI"`
	Transcribe TranscribeConfig `envconfig:"TRANSCRIBE"`
	Summary    SummaryConfig    `envconfig:"SUMMARY"`
	Server     ServerConfig     `envconfig:"SERVER"`
	Database   DatabaseConfig   `envconfig:"DB"`
	Redis      RedisConfig      `envconfig:"REDIS"`
	Storage    StorageConfig    `envconfig:"STORAGE"`
}

// OpenAIConfig holds credentials and transport settings for the OpenAI API
type OpenAIConfig struct {
	APIKey     string  `split_words:"true"`
	BaseURL    string  `split_words:"true" default:"https://api.openai.com/v1"`
	Timeout    Seconds `default:"120"`
	MaxRetries int     `split_words:"true" default:"3"`
}

// AssemblyAIConfig holds AssemblyAI credentials
type AssemblyAIConfig struct {
	APIKey string `split_words:"true"`
}

// TranscribeConfig holds transcription defaults
type TranscribeConfig struct {
	Provider string `default:"openai"`
	Model    string `default:"gpt-4o-transcribe"`
	Language string `default:"pt"`
	Format   string `default:"json"`
}

// SummaryConfig holds summarization defaults
type SummaryConfig struct {
	Model        string        `default:"gpt-4o-mini"`
	Temperature  float64       `default:"0.2"`
	MaxTokens    int           `split_words:"true" default:"4000"`
	PreviewChars int           `split_words:"true" default:"500"`
	CacheTTL     time.Duration `split_words:"true" default:"24h"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string   `default:"8080"`
	Host            string   `default:"0.0.0.0"`
	Environment     string   `default:"development"`
	AllowedOrigins  []string `split_words:"true" default:"http://localhost:3000"`
	ShutdownTimeout int      `split_words:"true" default:"10"`
	UploadDir       string   `split_words:"true" default:"uploads"`
	MaxUploadMB     int      `split_words:"true" default:"25"`
	APIToken        string   `split_words:"true"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Enabled     bool   `default:"false"`
	Host        string `default:"localhost"`
	Port        string `default:"5432"`
	User        string `default:"postgres"`
	Password    string `default:"postgres"`
	Name        string `default:"meeting_scribe"`
	SSLMode     string `split_words:"true" default:"disable"`
	MaxConns    int    `split_words:"true" default:"10"`
	MinConns    int    `split_words:"true" default:"2"`
	AutoMigrate bool   `split_words:"true" default:"false"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled  bool   `default:"false"`
	Addr     string `default:"localhost:6379"`
	Password string
	DB       int `default:"0"`
}

// StorageConfig holds storage configuration
type StorageConfig struct {
	Type      string        `default:"none"` // "none", "local" or "minio"
	LocalDir  string        `split_words:"true" default:"archive"`
	Endpoint  string        `default:"localhost:9000"`
	AccessKey string        `split_words:"true" default:"minioadmin"`
	SecretKey string        `split_words:"true" default:"minioadmin"`
	Bucket    string        `default:"meeting-scribe"`
	UseSSL    bool          `split_words:"true" default:"false"`
	PublicURL string        `split_words:"true"`
	URLExpiry time.Duration `split_words:"true" default:"1h"`
}

// Seconds is a duration read from the environment as a plain number of
// seconds ("120") or as a Go duration string ("2m").
type Seconds time.Duration

// Decode implements envconfig.Decoder
func (s *Seconds) Decode(value string) error {
	value = strings.TrimSpace(value)
	if n, err := strconv.ParseFloat(value, 64); err == nil {
		if n < 0 || math.IsNaN(n) || math.IsInf(n, 0) {
			return fmt.Errorf("invalid timeout %q", value)
		}
		*s = Seconds(time.Duration(n * float64(time.Second)))
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("invalid timeout %q: %w", value, err)
	}
	*s = Seconds(d)
	return nil
}

// Duration converts to time.Duration
func (s Seconds) Duration() time.Duration {
	return time.Duration(s)
}

// Load loads configuration from a .env file (when present) and the environment
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to read .env file: %v", err)
	}
	return FromEnv()
}

// FromEnv builds the configuration from environment variables only
func FromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration. Credentials are not checked here,
// see RequireCredentials.
func (c *Config) Validate() error {
	switch c.Transcribe.Provider {
	case ProviderOpenAI, ProviderAssemblyAI:
	default:
		return fmt.Errorf("TRANSCRIBE_PROVIDER must be %q or %q, got %q", ProviderOpenAI, ProviderAssemblyAI, c.Transcribe.Provider)
	}
	if !IsResponseFormat(c.Transcribe.Format) {
		return fmt.Errorf("TRANSCRIBE_FORMAT must be one of %v, got %q", ResponseFormats, c.Transcribe.Format)
	}
	if math.IsNaN(c.Summary.Temperature) || math.IsInf(c.Summary.Temperature, 0) {
		return fmt.Errorf("SUMMARY_TEMPERATURE must be a finite number")
	}
	if c.OpenAI.MaxRetries < 0 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must not be negative")
	}
	switch c.Storage.Type {
	case StorageNone, StorageLocal, StorageMinIO:
	default:
		return fmt.Errorf("STORAGE_TYPE must be one of none, local, minio, got %q", c.Storage.Type)
	}
	return nil
}

// RequireCredentials reports which credential is missing for the given
// provider, or nil when the provider can be called.
func (c *Config) RequireCredentials(provider string) error {
	switch provider {
	case ProviderAssemblyAI:
		if c.AssemblyAI.APIKey == "" {
			return fmt.Errorf("ASSEMBLYAI_API_KEY is required")
		}
	default:
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required")
		}
	}
	return nil
}

// IsResponseFormat reports whether format is a known transcription response format
func IsResponseFormat(format string) bool {
	for _, f := range ResponseFormats {
		if f == format {
			return true
		}
	}
	return false
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
