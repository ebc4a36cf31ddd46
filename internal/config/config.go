package config

import (
	"encoding/base64"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

const (
	dataURLPrefix = "data:application/pdf;base64,"
	// bodySlack covers names, emails and JSON framing around the documents.
	bodySlack = 64 << 10
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	LLM      LLMConfig
	Gemini   GeminiConfig
	Qdrant   QdrantConfig
	Storage  StorageConfig
	Worker   WorkerConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// LLMConfig selects and configures the chat-completion provider used for
// insights.
type LLMConfig struct {
	Provider    string
	BaseURL     string
	APIKey      string
	Model       string
	Timeout     time.Duration
	MaxAttempts int
	RetryDelay  time.Duration
}

type GeminiConfig struct {
	APIKey     string
	Model      string
	EmbedModel string
}

type QdrantConfig struct {
	URL        string
	APIKey     string
	Collection string
}

type StorageConfig struct {
	MaxFileSize int64
	MaxResumes  int
}

type WorkerConfig struct {
	Concurrency int
	QueueSize   int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "job_tracker"),
		},
		LLM: LLMConfig{
			Provider:    getEnv("LLM_PROVIDER", ProviderOpenAI),
			BaseURL:     getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			Model:       getEnv("OPENAI_MODEL", "gpt-4"),
			Timeout:     getEnvAsDuration("LLM_TIMEOUT", "60s"),
			MaxAttempts: getEnvAsInt("LLM_MAX_ATTEMPTS", 2),
			RetryDelay:  getEnvAsDuration("LLM_RETRY_DELAY", "2s"),
		},
		Gemini: GeminiConfig{
			APIKey:     getEnv("GEMINI_API_KEY", ""),
			Model:      getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			EmbedModel: getEnv("GEMINI_EMBED_MODEL", "text-embedding-004"),
		},
		Qdrant: QdrantConfig{
			URL:        getEnv("QDRANT_URL", ""),
			APIKey:     getEnv("QDRANT_API_KEY", ""),
			Collection: getEnv("QDRANT_COLLECTION", "job_tracker_insights"),
		},
		Storage: StorageConfig{
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
			MaxResumes:  getEnvAsInt("MAX_RESUMES", 5),
		},
		Worker: WorkerConfig{
			Concurrency: getEnvAsInt("WORKER_CONCURRENCY", 2),
			QueueSize:   getEnvAsInt("WORKER_QUEUE_SIZE", 100),
		},
	}
}

// Validate checks that the selected completion provider can be reached.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case ProviderOpenAI:
		if c.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when LLM_PROVIDER is %q", ProviderOpenAI)
		}
		if c.LLM.BaseURL == "" {
			return fmt.Errorf("OPENAI_BASE_URL must not be empty")
		}
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required when LLM_PROVIDER is %q", ProviderGemini)
		}
	default:
		return fmt.Errorf("unsupported LLM_PROVIDER %q", c.LLM.Provider)
	}

	if c.LLM.Timeout <= 0 {
		return fmt.Errorf("LLM_TIMEOUT must be positive, got %v", c.LLM.Timeout)
	}
	if c.LLM.MaxAttempts < 1 {
		return fmt.Errorf("LLM_MAX_ATTEMPTS must be at least 1, got %d", c.LLM.MaxAttempts)
	}
	if c.Storage.MaxResumes < 1 {
		return fmt.Errorf("MAX_RESUMES must be at least 1, got %d", c.Storage.MaxResumes)
	}
	if c.Worker.Concurrency < 1 {
		return fmt.Errorf("WORKER_CONCURRENCY must be at least 1, got %d", c.Worker.Concurrency)
	}

	return nil
}

// IndexEnabled reports whether saved insights should be indexed in Qdrant.
func (c *Config) IndexEnabled() bool {
	return c.Qdrant.URL != "" && c.Gemini.APIKey != ""
}

// BodyLimit sizes request bodies for PUT /profile, which carries every resume
// as a base64 data URL. The largest other JSON body holds a single document.
func (c *Config) BodyLimit() int {
	encoded := base64.StdEncoding.EncodedLen(int(c.Storage.MaxFileSize)) + len(dataURLPrefix)
	return encoded*max(c.Storage.MaxResumes, 1) + bodySlack
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

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
