package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Data      DataConfig      `mapstructure:"data"`
	Embedding EmbeddingConfig `mapstructure:"embedding"`
	Vector    VectorConfig    `mapstructure:"vector"`
	Chat      ChatConfig      `mapstructure:"chat"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Port int        `mapstructure:"port"`
	Mode string     `mapstructure:"mode"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
	AllowAllOrigins bool     `mapstructure:"allow_all_origins"`
}

// DataConfig locates the flat-file JSON stores.
type DataConfig struct {
	ArticlesPath string `mapstructure:"articles_path"`
	ProjectsPath string `mapstructure:"projects_path"`
	StatsPath    string `mapstructure:"stats_path"`
}

type EmbeddingConfig struct {
	APIKey     string        `mapstructure:"api_key"`
	BaseURL    string        `mapstructure:"base_url"`
	Model      string        `mapstructure:"model"`
	Dimensions int           `mapstructure:"dimensions"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// Configured reports whether the embedding API can be called at all.
func (c *EmbeddingConfig) Configured() bool {
	return c.APIKey != ""
}

// VectorConfig selects and configures the vector store backend.
type VectorConfig struct {
	Backend string        `mapstructure:"backend"` // "upstash" or "qdrant"
	Upstash UpstashConfig `mapstructure:"upstash"`
	Qdrant  QdrantConfig  `mapstructure:"qdrant"`
}

type UpstashConfig struct {
	URL   string `mapstructure:"url"`
	Token string `mapstructure:"token"`
}

type QdrantConfig struct {
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port"`
	Collection string `mapstructure:"collection"`
	APIKey     string `mapstructure:"api_key"`
	UseTLS     bool   `mapstructure:"use_tls"`
}

// Configured reports whether the selected backend has enough settings to
// build a client.
func (c *VectorConfig) Configured() bool {
	switch c.Backend {
	case "qdrant":
		return c.Qdrant.Host != ""
	default:
		return c.Upstash.URL != "" && c.Upstash.Token != ""
	}
}

type ChatConfig struct {
	APIKey       string `mapstructure:"api_key"`
	Endpoint     string `mapstructure:"endpoint"`
	Model        string `mapstructure:"model"`
	HistoryLimit int    `mapstructure:"history_limit"`
}

type StorageConfig struct {
	Type      string `mapstructure:"type"` // "local", "s3", "r2"
	LocalDir  string `mapstructure:"local_dir"`
	PublicURL string `mapstructure:"public_url"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	UseSSL    bool   `mapstructure:"use_ssl"`
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

func Load(configPath string) (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	// Enable environment variable override
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.cors.allow_all_origins", true)
	v.SetDefault("server.cors.allowed_origins", []string{})
	v.SetDefault("data.articles_path", "./data/articles.json")
	v.SetDefault("data.projects_path", "./data/projects.json")
	v.SetDefault("data.stats_path", "./data/stats.json")
	v.SetDefault("embedding.base_url", "https://api.openai.com/v1")
	v.SetDefault("embedding.model", "text-embedding-3-small")
	v.SetDefault("embedding.dimensions", 1536)
	v.SetDefault("embedding.timeout", 120*time.Second)
	v.SetDefault("vector.backend", "upstash")
	v.SetDefault("vector.qdrant.port", 6334)
	v.SetDefault("vector.qdrant.collection", "articles")
	v.SetDefault("chat.endpoint", "https://ark.cn-beijing.volces.com/api/v3")
	v.SetDefault("chat.model", "doubao-seed-1-6-lite-251015")
	v.SetDefault("chat.history_limit", 20)
	v.SetDefault("storage.type", "local")
	v.SetDefault("storage.local_dir", "./public/projects")
	v.SetDefault("storage.public_url", "/projects")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Bind environment variables explicitly for sensitive data
	v.BindEnv("embedding.api_key", "OPENAI_API_KEY")
	v.BindEnv("embedding.base_url", "OPENAI_BASE_URL")
	v.BindEnv("vector.upstash.url", "UPSTASH_VECTOR_REST_URL")
	v.BindEnv("vector.upstash.token", "UPSTASH_VECTOR_REST_TOKEN")
	v.BindEnv("vector.qdrant.host", "QDRANT_HOST")
	v.BindEnv("vector.qdrant.port", "QDRANT_PORT")
	v.BindEnv("vector.qdrant.api_key", "QDRANT_API_KEY")
	v.BindEnv("chat.api_key", "VOLC_ENGINE_API_KEY")
	v.BindEnv("chat.endpoint", "VOLC_ENGINE_ENDPOINT")
	v.BindEnv("chat.model", "VOLC_ENGINE_MODEL")
	v.BindEnv("storage.access_key", "STORAGE_ACCESS_KEY")
	v.BindEnv("storage.secret_key", "STORAGE_SECRET_KEY")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
