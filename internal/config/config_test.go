package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/rs/zerolog"
)

func TestApplyDefaults(t *testing.T) {
	t.Run("Config struct defaults", func(t *testing.T) {
		config := &Config{}
		applyDefaults(config)

		if config.Site.Name != "MutuTech Solutions" {
			t.Errorf("Expected site name 'MutuTech Solutions', got %q", config.Site.Name)
		}
		if config.Server.Host != "0.0.0.0" {
			t.Errorf("Expected host '0.0.0.0', got %q", config.Server.Host)
		}
		if config.Server.Port != "3000" {
			t.Errorf("Expected port '3000', got %q", config.Server.Port)
		}
		if config.Server.SecureCookies {
			t.Error("Expected secure cookies to be disabled by default")
		}
		if config.Theme.Default != DarkTheme {
			t.Errorf("Expected theme %q, got %q", DarkTheme, config.Theme.Default)
		}
		if config.Storage.SnapshotPath != "db.json" {
			t.Errorf("Expected snapshot path 'db.json', got %q", config.Storage.SnapshotPath)
		}
		if config.Remote.Driver != "sqlite3" {
			t.Errorf("Expected driver 'sqlite3', got %q", config.Remote.Driver)
		}
		if config.Images.Bucket != "images" {
			t.Errorf("Expected bucket 'images', got %q", config.Images.Bucket)
		}
		if config.Images.MaxSizeBytes != 52428800 {
			t.Errorf("Expected max size 52428800, got %d", config.Images.MaxSizeBytes)
		}
		expectedTypes := []string{"image/jpeg", "image/png", "image/gif", "image/webp"}
		if !reflect.DeepEqual(config.Images.AllowedTypes, expectedTypes) {
			t.Errorf("Expected allowed types %v, got %v", expectedTypes, config.Images.AllowedTypes)
		}
		if config.Admin.User != "admin" || config.Admin.Password != "admin" {
			t.Errorf("Expected admin/admin credentials, got %q/%q", config.Admin.User, config.Admin.Password)
		}
		if config.Admin.SessionHours != 24 {
			t.Errorf("Expected 24 session hours, got %d", config.Admin.SessionHours)
		}
		if config.Logging.Level != "info" {
			t.Errorf("Expected logging level 'info', got %q", config.Logging.Level)
		}
	})

	t.Run("Custom struct with various field types", func(t *testing.T) {
		type TestStruct struct {
			StringField  string   `default:"test-string"`
			BoolField    bool     `default:"true"`
			IntField     int      `default:"42"`
			Float64Field float64  `default:"3.14"`
			SliceField   []string `default:"a, b,c"`
			NoDefault    string
		}

		test := &TestStruct{}
		applyDefaults(test)

		if test.StringField != "test-string" {
			t.Errorf("Expected string field 'test-string', got %q", test.StringField)
		}
		if !test.BoolField {
			t.Error("Expected bool field to be true")
		}
		if test.IntField != 42 {
			t.Errorf("Expected int field 42, got %d", test.IntField)
		}
		if test.Float64Field != 3.14 {
			t.Errorf("Expected float64 field 3.14, got %f", test.Float64Field)
		}
		expectedSlice := []string{"a", "b", "c"}
		if !reflect.DeepEqual(test.SliceField, expectedSlice) {
			t.Errorf("Expected slice %v, got %v", expectedSlice, test.SliceField)
		}
		if test.NoDefault != "" {
			t.Errorf("Expected no default field to be empty, got %q", test.NoDefault)
		}
	})

	t.Run("Invalid default values", func(t *testing.T) {
		type InvalidStruct struct {
			BadBool bool `default:"not-a-bool"`
			BadInt  int  `default:"not-an-int"`
		}

		test := &InvalidStruct{}
		applyDefaults(test)

		if test.BadBool {
			t.Error("Expected invalid bool default to remain false")
		}
		if test.BadInt != 0 {
			t.Errorf("Expected invalid int default to remain 0, got %d", test.BadInt)
		}
	})

	t.Run("Non-struct input", func(t *testing.T) {
		stringVar := "test"
		applyDefaults(&stringVar)
		applyDefaults(stringVar)
		applyDefaults(42)
		applyDefaults(nil)
	})
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"PORT":                 "8080",
		"ADMIN_PASS":           "s3cret",
		"S3_ENDPOINT":          "https://r2.example.com",
		"S3_ACCESS_KEY_ID":     "key",
		"S3_SECRET_ACCESS_KEY": "secret",
		"SECURE_COOKIES":       "true",
		"DATABASE_DSN":         "",
	}
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}

	config := Default()
	applyEnv(config, lookup)

	if config.Server.Port != "8080" {
		t.Errorf("Expected port from env '8080', got %q", config.Server.Port)
	}
	if config.Admin.Password != "s3cret" {
		t.Errorf("Expected admin password from env, got %q", config.Admin.Password)
	}
	if config.Admin.User != "admin" {
		t.Errorf("Expected default admin user to survive, got %q", config.Admin.User)
	}
	if !config.Server.SecureCookies {
		t.Error("Expected secure cookies enabled from env")
	}
	if config.Remote.DSN != "./mututech.db" {
		t.Errorf("Expected empty env var to keep default DSN, got %q", config.Remote.DSN)
	}
	if !config.Images.Enabled() {
		t.Error("Expected images to be enabled once endpoint and keys are set")
	}
}

func TestImagesEnabled(t *testing.T) {
	if Default().Images.Enabled() {
		t.Error("Expected images to be disabled without endpoint and credentials")
	}
}

func TestLoadConfig(t *testing.T) {
	SetLogger(zerolog.New(os.Stdout).Level(zerolog.ErrorLevel))

	originalAppConfig := AppConfig
	defer func() { AppConfig = originalAppConfig }()

	t.Run("Missing file uses defaults", func(t *testing.T) {
		err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		if err != nil {
			t.Fatalf("Expected no error for missing file, got %v", err)
		}
		if AppConfig.Site.Name != "MutuTech Solutions" {
			t.Errorf("Expected default site name, got %q", AppConfig.Site.Name)
		}
	})

	t.Run("File overrides defaults", func(t *testing.T) {
		err := LoadConfig("testdata/config.yaml")
		if err != nil {
			t.Fatalf("Failed to load config: %v", err)
		}
		if AppConfig.Site.Name != "BangOos Web Solutions" {
			t.Errorf("Expected site name from file, got %q", AppConfig.Site.Name)
		}
		if AppConfig.Storage.SnapshotPath != "data/db.json" {
			t.Errorf("Expected snapshot path from file, got %q", AppConfig.Storage.SnapshotPath)
		}
		if AppConfig.Remote.Driver != "sqlite" {
			t.Errorf("Expected driver from file, got %q", AppConfig.Remote.Driver)
		}
		// Untouched sections keep their defaults
		if AppConfig.Images.Bucket != "images" {
			t.Errorf("Expected default bucket, got %q", AppConfig.Images.Bucket)
		}
	})

	t.Run("Malformed file fails", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte("site: [unterminated"), 0o644); err != nil {
			t.Fatalf("Failed to write config: %v", err)
		}
		if err := LoadConfig(path); err == nil {
			t.Error("Expected error for malformed config")
		}
	})
}
