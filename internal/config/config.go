package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"code.cloudfoundry.org/bytefmt"
	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env         string      `yaml:"env" env:"APP_ENV" env-default:"local"`
	HTTPServer  HTTPServer  `yaml:"http_server"`
	Database    Database    `yaml:"database"`
	Kafka       Kafka       `yaml:"kafka"`
	Storage     Storage     `yaml:"storage"`
	Upload      Upload      `yaml:"upload"`
	Derivatives Derivatives `yaml:"derivatives"`
	Janitor     Janitor     `yaml:"janitor"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:4000"`
	Timeout     time.Duration `yaml:"timeout" env-default:"30s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

type Database struct {
	Host     string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port     int    `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"DB_USER" env-default:"postgres"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	DBName   string `yaml:"dbname" env:"DB_NAME" env-default:"storefront"`
	SSLMode  string `yaml:"sslmode" env:"DB_SSLMODE" env-default:"disable"`
}

// Kafka carries derivative cleanup jobs. With Enabled false, files of a
// deleted product are removed inside the request instead.
type Kafka struct {
	Enabled bool     `yaml:"enabled" env:"KAFKA_ENABLED" env-default:"false"`
	Brokers []string `yaml:"brokers" env:"KAFKA_BROKERS" env-separator:","`
	Topic   string   `yaml:"topic" env:"KAFKA_TOPIC" env-default:"derivative-cleanup"`
	GroupID string   `yaml:"group_id" env:"KAFKA_GROUP_ID" env-default:"storefront-janitor"`
}

// Storage selects where originals and derivatives live. PublicURL is the
// prefix every stored key is served under.
type Storage struct {
	Kind      string        `yaml:"kind" env:"STORAGE_KIND" env-default:"local"`
	Dir       string        `yaml:"dir" env:"STORAGE_DIR" env-default:"./upload/images"`
	PublicURL string        `yaml:"public_url" env:"STORAGE_PUBLIC_URL" env-default:"/images/"`
	Bucket    string        `yaml:"bucket" env:"STORAGE_BUCKET"`
	Region    string        `yaml:"region" env:"STORAGE_REGION"`
	MaxAge    time.Duration `yaml:"max_age" env-default:"168h"`
}

type Upload struct {
	Field        string   `yaml:"field" env-default:"product"`
	MaxSize      string   `yaml:"max_size" env:"UPLOAD_MAX_SIZE" env-default:"10MB"`
	AllowedTypes []string `yaml:"allowed_types" env-default:"image/jpeg,image/png,image/gif,image/webp"`
}

// MaxBytes returns MaxSize in bytes.
func (u Upload) MaxBytes() (int64, error) {
	n, err := bytefmt.ToBytes(u.MaxSize)
	if err != nil {
		return 0, fmt.Errorf("upload.max_size %q: %w", u.MaxSize, err)
	}

	return int64(n), nil
}

type Breakpoint struct {
	Name  string `yaml:"name"`
	Width int    `yaml:"width"`
}

type Derivatives struct {
	Format      string       `yaml:"format" env:"DERIVATIVE_FORMAT" env-default:"webp"`
	Quality     int          `yaml:"quality" env-default:"75"`
	Effort      int          `yaml:"effort" env-default:"4"`
	Breakpoints []Breakpoint `yaml:"breakpoints"`
}

type Janitor struct {
	Schedule string        `yaml:"schedule" env:"JANITOR_SCHEDULE" env-default:"@daily"`
	Grace    time.Duration `yaml:"grace" env-default:"24h"`
}

func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatal(err)
	}

	return cfg
}

func Load(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}

	if _, err := cfg.Upload.MaxBytes(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
