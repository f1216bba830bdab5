package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Variant describes one of the two server configurations shipped as
// separate commands. They differ only in the default port and whether
// GET /model is routed.
type Variant struct {
	Name              string
	DefaultPort       string
	DefaultModelRoute bool
}

var (
	// VariantDefaultModel serves folders plus the fixed default model.
	VariantDefaultModel = Variant{Name: "model-server", DefaultPort: "3001", DefaultModelRoute: true}
	// VariantFoldersOnly serves folder listings and named models only.
	VariantFoldersOnly = Variant{Name: "model-server-folders", DefaultPort: "3000", DefaultModelRoute: false}
)

const (
	BackendFilesystem = "filesystem"
	BackendS3         = "s3"
)

type Config struct {
	Variant  Variant
	Server   ServerConfig
	Assets   AssetsConfig
	S3       S3Config
	Security SecurityConfig
	Metrics  MetricsConfig
	LogLevel string
}

type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

type AssetsConfig struct {
	Backend          string
	Dir              string
	DefaultModelFile string
	DefaultModelName string
}

type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool
	KeyPrefix       string
}

type SecurityConfig struct {
	AllowedOrigins []string
}

type MetricsConfig struct {
	Enabled bool
	Path    string
}

// Load reads configuration for the given variant from the environment.
// A .env file in the working directory is applied first when present.
func Load(variant Variant) (*Config, error) {
	_ = godotenv.Load()

	port := strings.TrimSpace(getEnv("PORT", variant.DefaultPort))
	if n, err := strconv.Atoi(port); err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	} else if n < 1 || n > 65535 {
		return nil, fmt.Errorf("invalid PORT: %d out of range", n)
	}

	readTimeout, err := getEnvDuration("SERVER_READ_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	writeTimeout, err := getEnvDuration("SERVER_WRITE_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, err
	}
	idleTimeout, err := getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}

	assetsDir, err := resolveAssetsDir(getEnv("ASSETS_DIR", ""))
	if err != nil {
		return nil, fmt.Errorf("invalid ASSETS_DIR: %w", err)
	}

	backend := strings.ToLower(strings.TrimSpace(getEnv("ASSET_BACKEND", BackendFilesystem)))
	if backend != BackendFilesystem && backend != BackendS3 {
		return nil, fmt.Errorf("invalid ASSET_BACKEND: %q", backend)
	}

	metricsPath := getEnv("METRICS_PATH", "/metrics")
	if !strings.HasPrefix(metricsPath, "/") {
		return nil, fmt.Errorf("invalid METRICS_PATH: must start with /")
	}

	cfg := &Config{
		Variant: variant,
		Server: ServerConfig{
			Port:            port,
			ReadTimeout:     readTimeout,
			WriteTimeout:    writeTimeout,
			IdleTimeout:     idleTimeout,
			ShutdownTimeout: shutdownTimeout,
		},
		Assets: AssetsConfig{
			Backend:          backend,
			Dir:              assetsDir,
			DefaultModelFile: getEnv("DEFAULT_MODEL_FILE", "rafale.glb"),
			DefaultModelName: getEnv("DEFAULT_MODEL_NAME", "model.glb"),
		},
		S3: S3Config{
			Bucket:          strings.TrimSpace(getEnv("S3_BUCKET", "")),
			Region:          getEnv("S3_REGION", "us-east-1"),
			Endpoint:        getEnv("S3_ENDPOINT", ""),
			AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
			UsePathStyle:    getEnvBool("S3_USE_PATH_STYLE", true),
			KeyPrefix:       strings.Trim(getEnv("S3_KEY_PREFIX", ""), "/"),
		},
		Security: SecurityConfig{
			AllowedOrigins: parseOrigins(os.Getenv("ALLOWED_ORIGINS")),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvBool("METRICS_ENABLED", true),
			Path:    metricsPath,
		},
		LogLevel: strings.ToLower(getEnv("LOG_LEVEL", "info")),
	}

	if cfg.Assets.Backend == BackendS3 && cfg.S3.Bucket == "" {
		return nil, fmt.Errorf("S3_BUCKET is required when ASSET_BACKEND=s3")
	}

	return cfg, nil
}

// Addr returns the listen address for http.Server.
func (c *ServerConfig) Addr() string {
	return ":" + c.Port
}

func resolveAssetsDir(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		return filepath.Join(wd, "assets"), nil
	}
	return filepath.Abs(raw)
}

// parseOrigins splits ALLOWED_ORIGINS. An unset or blank value permits all origins.
func parseOrigins(raw string) []string {
	origins := splitCSV(raw)
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return parsed
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if parsed < 0 {
		return 0, fmt.Errorf("invalid %s: must not be negative", key)
	}

	return parsed, nil
}

func splitCSV(raw string) []string {
	items := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		if item := strings.TrimSpace(part); item != "" {
			items = append(items, item)
		}
	}
	return items
}
