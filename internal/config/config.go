package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/remixrite/remix-ledger/internal/domain"
	"github.com/remixrite/remix-ledger/internal/royalty"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug       bool   `mapstructure:"debug"`
	SentryDSN   string `mapstructure:"sentry_dsn"`
	Environment string `mapstructure:"environment"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// NATSConfig holds NATS JetStream configuration
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds

	// CORSAllowedOrigins restricts cross-origin callers; empty allows every origin
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`

	// WriteRateLimit is the sustained per-caller rate of write requests; zero disables limiting
	WriteRateLimit float64 `mapstructure:"write_rate_limit"`
	WriteBurst     int     `mapstructure:"write_burst"`
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey string   `mapstructure:"jwt_public_key"`
	APIKeys      []string `mapstructure:"api_keys"`
}

// LedgerConfig holds the provenance ledger gateway configuration
type LedgerConfig struct {
	BaseURL          string        `mapstructure:"base_url"`
	APIKey           string        `mapstructure:"api_key"`
	ChainID          string        `mapstructure:"chain_id"`
	NFTContract      string        `mapstructure:"nft_contract"`
	RemixNFTContract string        `mapstructure:"remix_nft_contract"`
	Timeout          time.Duration `mapstructure:"timeout"`
	LinkRetries      uint64        `mapstructure:"link_retries"`
}

// PinataConfig holds Pinata IPFS pinning configuration
type PinataConfig struct {
	APIURL    string `mapstructure:"api_url"`
	APIKey    string `mapstructure:"api_key"`
	APISecret string `mapstructure:"api_secret"`
	Gateway   string `mapstructure:"gateway"`
}

// S3Config holds S3-compatible storage configuration
type S3Config struct {
	Region          string `mapstructure:"region"`
	Bucket          string `mapstructure:"bucket"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	Endpoint        string `mapstructure:"endpoint"`
	UsePathStyle    bool   `mapstructure:"use_path_style"`
	PublicBaseURL   string `mapstructure:"public_base_url"`
}

// StorageConfig selects and configures the artifact uploader
type StorageConfig struct {
	Provider    string        `mapstructure:"provider"` // "pinata" or "s3"
	Timeout     time.Duration `mapstructure:"timeout"`
	MaxFileSize int64         `mapstructure:"max_file_size"`
	Pinata      PinataConfig  `mapstructure:"pinata"`
	S3          S3Config      `mapstructure:"s3"`
}

// TaggingConfig holds the AI tag/title generator configuration
type TaggingConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// WorkerConfig holds fan-out configuration
type WorkerConfig struct {
	ResolverConcurrency   int `mapstructure:"resolver_concurrency"`
	EnrichmentConcurrency int `mapstructure:"enrichment_concurrency"`
}

// RoyaltyConfig holds royalty settlement configuration
type RoyaltyConfig struct {
	RemixFee    string `mapstructure:"remix_fee"`
	RoyaltyRate int    `mapstructure:"royalty_rate"`
}

// ReconcileConfig holds configuration of the partial settlement reconciler
type ReconcileConfig struct {
	Interval  time.Duration `mapstructure:"interval"`
	BatchSize int           `mapstructure:"batch_size"`
	PoolSize  int           `mapstructure:"pool_size"`
	MinAge    time.Duration `mapstructure:"min_age"`
}

// APIConfig holds configuration for the API server
type APIConfig struct {
	BaseConfig   `mapstructure:",squash"`
	Server       ServerConfig   `mapstructure:"server"`
	Database     DatabaseConfig `mapstructure:"database"`
	NATS         NATSConfig     `mapstructure:"nats"`
	Auth         AuthConfig     `mapstructure:"auth"`
	Ledger       LedgerConfig   `mapstructure:"ledger"`
	Storage      StorageConfig  `mapstructure:"storage"`
	Tagging      TaggingConfig  `mapstructure:"tagging"`
	Worker       WorkerConfig   `mapstructure:"worker"`
	Royalty      RoyaltyConfig  `mapstructure:"royalty"`
	StoreTimeout time.Duration  `mapstructure:"store_timeout"`
}

// ReconcilerConfig holds configuration for the reconciler program
type ReconcilerConfig struct {
	BaseConfig   `mapstructure:",squash"`
	Database     DatabaseConfig  `mapstructure:"database"`
	NATS         NATSConfig      `mapstructure:"nats"`
	Worker       WorkerConfig    `mapstructure:"worker"`
	Royalty      RoyaltyConfig   `mapstructure:"royalty"`
	Reconcile    ReconcileConfig `mapstructure:"reconcile"`
	StoreTimeout time.Duration   `mapstructure:"store_timeout"`
}

func setCommonDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("worker.resolver_concurrency", 8)
	v.SetDefault("worker.enrichment_concurrency", 8)
	v.SetDefault("royalty.remix_fee", domain.DEFAULT_REMIX_FEE)
	v.SetDefault("royalty.royalty_rate", domain.DEFAULT_ROYALTY_RATE)
	v.SetDefault("store_timeout", "5s")
}

// LoadAPIConfig loads configuration for the API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	setCommonDefaults(v)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 30)
	v.SetDefault("server.write_timeout", 120)
	v.SetDefault("server.idle_timeout", 60)
	v.SetDefault("server.write_rate_limit", 2)
	v.SetDefault("server.write_burst", 10)
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.stream_name", "REMIX_EVENTS")
	v.SetDefault("nats.connection_name", "remix-api")
	v.SetDefault("ledger.timeout", "30s")
	v.SetDefault("ledger.link_retries", 3)
	v.SetDefault("ledger.chain_id", "eip155:1315")
	v.SetDefault("storage.provider", "pinata")
	v.SetDefault("storage.timeout", "60s")
	v.SetDefault("storage.max_file_size", 100*1024*1024)
	v.SetDefault("storage.pinata.api_url", "https://api.pinata.cloud")
	v.SetDefault("storage.pinata.gateway", domain.DEFAULT_IPFS_GATEWAY)
	v.SetDefault("storage.s3.region", "us-east-1")
	v.SetDefault("tagging.base_url", "https://openrouter.ai/api/v1")
	v.SetDefault("tagging.model", "google/gemini-2.0-flash-001")
	v.SetDefault("tagging.timeout", "10s")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg APIConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Database.Host == "" {
		return nil, errors.New("database.host is required")
	}
	if cfg.Database.DBName == "" {
		return nil, errors.New("database.dbname is required")
	}
	if cfg.Ledger.BaseURL == "" {
		return nil, errors.New("ledger.base_url is required")
	}
	if cfg.Storage.Provider != "pinata" && cfg.Storage.Provider != "s3" {
		return nil, fmt.Errorf("unsupported storage.provider: %s", cfg.Storage.Provider)
	}
	if !domain.ValidRoyaltyRate(cfg.Royalty.RoyaltyRate) {
		return nil, fmt.Errorf("royalty.royalty_rate out of range: %d", cfg.Royalty.RoyaltyRate)
	}
	if _, err := royalty.ParseFee(cfg.Royalty.RemixFee); err != nil {
		return nil, fmt.Errorf("invalid royalty.remix_fee: %w", err)
	}

	return &cfg, nil
}

// LoadReconcilerConfig loads configuration for the reconciler program
func LoadReconcilerConfig(configFile string, envPath string) (*ReconcilerConfig, error) {
	v := configureViper("reconciler", configFile, envPath)

	setCommonDefaults(v)
	v.SetDefault("reconcile.interval", "5m")
	v.SetDefault("reconcile.batch_size", 100)
	v.SetDefault("reconcile.pool_size", 4)
	v.SetDefault("reconcile.min_age", "2m")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.stream_name", "REMIX_EVENTS")
	v.SetDefault("nats.connection_name", "remix-reconciler")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg ReconcilerConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Database.Host == "" {
		return nil, errors.New("database.host is required")
	}
	if cfg.Database.DBName == "" {
		return nil, errors.New("database.dbname is required")
	}

	return &cfg, nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	loadEnv(envPath, service)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		v.AddConfigPath("config/")
	}

	v.SetEnvPrefix("REMIX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		"environment",
		"store_timeout",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		"server.cors_allowed_origins",
		"server.write_rate_limit",
		"server.write_burst",
		// Auth
		"auth.jwt_public_key",
		"auth.api_keys",
		// Ledger
		"ledger.base_url",
		"ledger.api_key",
		"ledger.chain_id",
		"ledger.nft_contract",
		"ledger.remix_nft_contract",
		"ledger.timeout",
		"ledger.link_retries",
		// Storage
		"storage.provider",
		"storage.timeout",
		"storage.max_file_size",
		"storage.pinata.api_url",
		"storage.pinata.api_key",
		"storage.pinata.api_secret",
		"storage.pinata.gateway",
		"storage.s3.region",
		"storage.s3.bucket",
		"storage.s3.access_key_id",
		"storage.s3.secret_access_key",
		"storage.s3.endpoint",
		"storage.s3.use_path_style",
		"storage.s3.public_base_url",
		// Tagging
		"tagging.base_url",
		"tagging.api_key",
		"tagging.model",
		"tagging.timeout",
		// Worker
		"worker.resolver_concurrency",
		"worker.enrichment_concurrency",
		// Royalty
		"royalty.remix_fee",
		"royalty.royalty_rate",
		// Reconciler
		"reconcile.interval",
		"reconcile.batch_size",
		"reconcile.pool_size",
		"reconcile.min_age",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for i := 0; i < 5; i++ {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
