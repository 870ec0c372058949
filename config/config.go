package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

const (
	DefaultHTTPAddr       = ":8080"
	DefaultMongoURI       = "mongodb://localhost:27017"
	DefaultMongoDBName    = "blog"
	DefaultConnectTimeout = 10 * time.Second
	DefaultLogLevel       = "info"
	DefaultEventsTopic    = "blog.post.events"
)

type AppConfig struct {
	Server  ServerConfig  `yaml:"server"`
	Mongo   MongoConfig   `yaml:"mongo"`
	Logging LoggingConfig `yaml:"logging"`
	CORS    CORSConfig    `yaml:"cors"`
	Events  EventsConfig  `yaml:"events"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// MongoConfig 는 스토어 접속 대상만 정의한다. 접속 이후의 타임아웃은 드라이버 설정을 따른다.
type MongoConfig struct {
	URI            string        `yaml:"uri"`
	DBName         string        `yaml:"db_name"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// EventsConfig controls post lifecycle event publishing.
// Publishing is skipped entirely unless Enabled is true and Brokers is non-empty.
type EventsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Brokers string `yaml:"brokers"`
	Topic   string `yaml:"topic"`
}

// Default returns the configuration used when no file is present.
func Default() AppConfig {
	return AppConfig{
		Server:  ServerConfig{Addr: DefaultHTTPAddr},
		Mongo:   MongoConfig{URI: DefaultMongoURI, DBName: DefaultMongoDBName, ConnectTimeout: DefaultConnectTimeout},
		Logging: LoggingConfig{Level: DefaultLogLevel},
		CORS:    CORSConfig{AllowedOrigins: []string{"*"}},
		Events:  EventsConfig{Topic: DefaultEventsTopic},
	}
}

// Load reads .env and config.yaml from the directory returned by GetBasePath.
func Load() (*AppConfig, error) {
	base := GetBasePath()
	if base == "" {
		if cwd, err := os.Getwd(); err == nil {
			base = cwd
		}
	}
	return LoadFrom(filepath.Join(base, CONFIG_FILE))
}

// LoadFrom reads the YAML file at path on top of Default, then applies environment
// overrides. A missing file is not an error.
func LoadFrom(path string) (*AppConfig, error) {
	// load environment variables
	_ = godotenv.Load(filepath.Join(filepath.Dir(path), ENV_FILE))

	c := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	applyEnv(&c)
	c.fillDefaults()
	return &c, nil
}

func applyEnv(c *AppConfig) {
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("MONGO_URI"); v != "" {
		c.Mongo.URI = v
	}
	if v := os.Getenv("MONGO_DB_NAME"); v != "" {
		c.Mongo.DBName = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("KAFKA_BOOTSTRAP_SERVERS"); v != "" {
		c.Events.Brokers = v
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.CORS.AllowedOrigins = origins
	}
}

// fillDefaults restores defaults for keys that the YAML file set to empty values.
func (c *AppConfig) fillDefaults() {
	d := Default()
	if c.Server.Addr == "" {
		c.Server.Addr = d.Server.Addr
	}
	if c.Mongo.URI == "" {
		c.Mongo.URI = d.Mongo.URI
	}
	if c.Mongo.DBName == "" {
		c.Mongo.DBName = d.Mongo.DBName
	}
	if c.Mongo.ConnectTimeout <= 0 {
		c.Mongo.ConnectTimeout = d.Mongo.ConnectTimeout
	}
	if c.Logging.Level == "" {
		c.Logging.Level = d.Logging.Level
	}
	if c.Events.Topic == "" {
		c.Events.Topic = d.Events.Topic
	}
}

// EventsActive reports whether a real broker should be used.
func (c AppConfig) EventsActive() bool {
	return c.Events.Enabled && c.Events.Brokers != ""
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
