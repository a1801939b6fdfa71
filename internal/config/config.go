package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	PDFBackendPDF  = "pdf"
	PDFBackendFitz = "fitz"
)

type Config struct {
	Server         ServerConfig
	Database       DatabaseConfig
	Gemini         GeminiConfig
	OpenAI         OpenAIConfig
	Embedding      EmbeddingConfig
	Extraction     ExtractionConfig
	Storage        StorageConfig
	JobDescription JobDescriptionConfig
	Cache          CacheConfig
	Archive        ArchiveConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Enabled         bool
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type GeminiConfig struct {
	APIKey string
}

type OpenAIConfig struct {
	APIKey  string
	BaseURL string
}

type EmbeddingConfig struct {
	Provider          string
	Model             string
	MaxInputChars     int
	Timeout           time.Duration
	PinJobDescription bool
}

type ExtractionConfig struct {
	PDFBackend string
}

type StorageConfig struct {
	UploadPath  string
	MaxFileSize int64
}

type JobDescriptionConfig struct {
	Path string
}

// CacheConfig configures the Valkey embedding cache. An empty Address disables it.
type CacheConfig struct {
	Address  string
	Password string
	TTL      time.Duration
}

// ArchiveConfig configures the S3 upload archive. An empty Bucket disables it.
type ArchiveConfig struct {
	Bucket      string
	Prefix      string
	Region      string
	EndpointURL string
	AccessKey   string
	SecretKey   string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	provider := strings.ToLower(getEnv("EMBEDDING_PROVIDER", ProviderGemini))

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "5000"),
			Env:          getEnv("ENV", "development"),
			ReadTimeout:  getEnvAsDuration("READ_TIMEOUT", "30s"),
			WriteTimeout: getEnvAsDuration("WRITE_TIMEOUT", "60s"),
		},
		Database: DatabaseConfig{
			Enabled:  getEnvAsBool("DB_ENABLED", false),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "resume_matcher"),

			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", "30m"),
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
		},
		OpenAI: OpenAIConfig{
			APIKey:  getEnv("OPENAI_API_KEY", ""),
			BaseURL: getEnv("OPENAI_BASE_URL", ""),
		},
		Embedding: EmbeddingConfig{
			Provider:          provider,
			Model:             getEnv("EMBEDDING_MODEL", defaultModel(provider)),
			MaxInputChars:     getEnvAsInt("EMBEDDING_MAX_INPUT_CHARS", defaultMaxInputChars(provider)),
			Timeout:           getEnvAsDuration("EMBEDDING_TIMEOUT", "30s"),
			PinJobDescription: getEnvAsBool("EMBEDDING_PIN_JOB_DESCRIPTION", true),
		},
		Extraction: ExtractionConfig{
			PDFBackend: strings.ToLower(getEnv("PDF_BACKEND", PDFBackendPDF)),
		},
		Storage: StorageConfig{
			UploadPath:  getEnv("UPLOAD_PATH", "./uploads"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		JobDescription: JobDescriptionConfig{
			Path: getEnv("JOB_DESCRIPTION_PATH", "job_description.txt"),
		},
		Cache: CacheConfig{
			Address:  getEnv("VALKEY_ADDRESS", ""),
			Password: getEnv("VALKEY_PASSWORD", ""),
			TTL:      getEnvAsDuration("CACHE_TTL", "24h"),
		},
		Archive: ArchiveConfig{
			Bucket:      getEnv("S3_BUCKET", ""),
			Prefix:      getEnv("S3_PREFIX", "resumes"),
			Region:      getEnv("S3_REGION", "us-east-1"),
			EndpointURL: getEnv("S3_ENDPOINT_URL", ""),
			AccessKey:   getEnv("S3_ACCESS_KEY", ""),
			SecretKey:   getEnv("S3_SECRET_KEY", ""),
		},
	}
}

// Validate reports configuration that would only fail later, on the first request.
func (c *Config) Validate() error {
	switch c.Embedding.Provider {
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required for embedding provider %q", c.Embedding.Provider)
		}
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for embedding provider %q", c.Embedding.Provider)
		}
	default:
		return fmt.Errorf("unknown embedding provider: %q", c.Embedding.Provider)
	}

	switch c.Extraction.PDFBackend {
	case PDFBackendPDF, PDFBackendFitz:
	default:
		return fmt.Errorf("unknown pdf backend: %q", c.Extraction.PDFBackend)
	}

	if c.Storage.MaxFileSize <= 0 {
		return fmt.Errorf("MAX_FILE_SIZE must be positive, got %d", c.Storage.MaxFileSize)
	}

	return nil
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

func defaultModel(provider string) string {
	if provider == ProviderOpenAI {
		return "text-embedding-3-small"
	}
	return "text-embedding-004"
}

// defaultMaxInputChars keeps inputs under the default model's token limit at
// roughly 3 characters per token: 8191 tokens for text-embedding-3-small and
// 2048 for text-embedding-004.
func defaultMaxInputChars(provider string) int {
	if provider == ProviderOpenAI {
		return 24000
	}
	return 6000
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
