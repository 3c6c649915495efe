package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

var configLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	configLogger = l
}

// Config represents the complete configuration structure
type Config struct {
	Site    SiteConfig    `yaml:"site"`
	Server  ServerConfig  `yaml:"server"`
	Theme   ThemeConfig   `yaml:"theme"`
	Storage StorageConfig `yaml:"storage"`
	Remote  RemoteConfig  `yaml:"remote"`
	Images  ImagesConfig  `yaml:"images"`
	Admin   AdminConfig   `yaml:"admin"`
	Logging LoggingConfig `yaml:"logging"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" default:"info" env:"LOG_LEVEL"`
	Pretty bool   `yaml:"pretty" default:"false" env:"LOG_PRETTY"`
}

type SiteConfig struct {
	Name        string `yaml:"name" default:"MutuTech Solutions"`
	Description string `yaml:"description" default:"Professional IT solutions and technology services for modern businesses"`
	URL         string `yaml:"url" default:"https://mututechsolutions.com"`
	WhatsApp    string `yaml:"whatsapp" default:"https://wa.me/6281234567890"`
}

type ServerConfig struct {
	Host          string `yaml:"host" default:"0.0.0.0" env:"HOST"`
	Port          string `yaml:"port" default:"3000" env:"PORT"`
	SecureCookies bool   `yaml:"secure_cookies" default:"false" env:"SECURE_COOKIES"`
}

type ThemeConfig struct {
	Default            string       `yaml:"default" default:"dark-theme"`
	SyntaxHighlighting SyntaxConfig `yaml:"syntax_highlighting"`
}

type SyntaxConfig struct {
	DefaultDark  string `yaml:"default_dark" default:"gruvbox"`
	DefaultLight string `yaml:"default_light" default:"catppuccin-latte"`
}

// StorageConfig locates the local snapshot of the whole dataset.
type StorageConfig struct {
	SnapshotPath string `yaml:"snapshot_path" default:"db.json" env:"SNAPSHOT_PATH"`
}

// RemoteConfig selects the record database. An empty DSN disables it.
// Driver is sqlite3, sqlite, or memory for an in-process store.
type RemoteConfig struct {
	Driver string `yaml:"driver" default:"sqlite3" env:"DATABASE_DRIVER"`
	DSN    string `yaml:"dsn" default:"./mututech.db" env:"DATABASE_DSN"`

	// Codec for blog content at rest: zstd, gzip or none.
	Compression string `yaml:"compression" default:"zstd"`
}

// ImagesConfig configures the S3-compatible object store. Uploads fall back
// to placeholder images when the endpoint or the credentials are missing.
type ImagesConfig struct {
	Bucket          string   `yaml:"bucket" default:"images" env:"S3_BUCKET"`
	Endpoint        string   `yaml:"endpoint" default:"" env:"S3_ENDPOINT"`
	Region          string   `yaml:"region" default:"auto" env:"S3_REGION"`
	AccessKeyID     string   `yaml:"-" env:"S3_ACCESS_KEY_ID"`
	SecretAccessKey string   `yaml:"-" env:"S3_SECRET_ACCESS_KEY"`
	PublicBaseURL   string   `yaml:"public_base_url" default:"" env:"S3_PUBLIC_URL"`
	MaxSizeBytes    int      `yaml:"max_size_bytes" default:"52428800"`
	AllowedTypes    []string `yaml:"allowed_types" default:"image/jpeg,image/png,image/gif,image/webp"`
	CacheControl    string   `yaml:"cache_control" default:"max-age=3600"`
}

// Enabled reports whether enough is configured to reach the object store.
func (c ImagesConfig) Enabled() bool {
	return c.Endpoint != "" && c.AccessKeyID != "" && c.SecretAccessKey != ""
}

type AdminConfig struct {
	User         string `yaml:"-" default:"admin" env:"ADMIN_USER"`
	Password     string `yaml:"-" default:"admin" env:"ADMIN_PASS"`
	SessionHours int    `yaml:"session_hours" default:"24"`
}

var AppConfig *Config

func init() {
	AppConfig = Default()
}

// Default returns a configuration with every default value applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func LoadConfig(path string) error {
	config := &Config{}

	// Apply default values first
	applyDefaults(config)

	// Try to read and parse the config file
	data, err := os.ReadFile(path)
	if err != nil {
		// If file doesn't exist, just use defaults
		configLogger.Info().Str("path", path).Msg("Config file not found, using defaults")
	} else if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	applyEnv(config, os.LookupEnv)

	AppConfig = config
	return nil
}

func ApplyDefaults(config interface{}) {
	applyDefaults(config)
}

func applyDefaults(config interface{}) {
	walkFields(config, "default", func(field reflect.Value, name, value string) {
		setField(field, name, value)
	})
}

// applyEnv overrides fields tagged with `env:"NAME"` from the environment.
// Variables that are unset or empty leave the field untouched.
func applyEnv(config interface{}, lookup func(string) (string, bool)) {
	walkFields(config, "env", func(field reflect.Value, name, key string) {
		if value, ok := lookup(key); ok && value != "" {
			setField(field, name, value)
		}
	})
}

func walkFields(config interface{}, tag string, fn func(field reflect.Value, name, value string)) {
	v := reflect.ValueOf(config)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return
	}

	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		if !field.IsValid() || !field.CanSet() {
			continue
		}

		// Recurse into nested structs
		if field.Kind() == reflect.Struct {
			walkFields(field.Addr().Interface(), tag, fn)
			continue
		}

		value := fieldType.Tag.Get(tag)
		if value == "" {
			continue
		}

		fn(field, fieldType.Name, value)
	}
}

func setField(field reflect.Value, name, value string) {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Bool:
		if val, err := strconv.ParseBool(value); err == nil {
			field.SetBool(val)
		}
	case reflect.Int, reflect.Int64:
		if val, err := strconv.ParseInt(value, 10, 64); err == nil {
			field.SetInt(val)
		}
	case reflect.Float64:
		if val, err := strconv.ParseFloat(value, 64); err == nil {
			field.SetFloat(val)
		}
	case reflect.Slice:
		if field.Type().Elem().Kind() == reflect.String {
			parts := strings.Split(value, ",")
			slice := reflect.MakeSlice(field.Type(), len(parts), len(parts))
			for j, part := range parts {
				slice.Index(j).SetString(strings.TrimSpace(part))
			}
			field.Set(slice)
		}
	default:
		configLogger.Warn().
			Str("field_name", name).
			Str("field_type", field.Kind().String()).
			Msg("Unsupported field type for config value")
	}
}
