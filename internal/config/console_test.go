package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func clearConsoleEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ITEMS_API_URL", "ITEMS_API_TOKEN", "JWT_SECRET",
		"S3_ENDPOINT", "S3_ACCESS_KEY", "S3_SECRET_KEY", "S3_BUCKET", "S3_REGION", "S3_USE_SSL",
	} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "itemsctl.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConsole_MissingFileUsesDefaults(t *testing.T) {
	clearConsoleEnv(t)

	cfg, err := LoadConsole(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("LoadConsole: %v", err)
	}
	if cfg.APIURL != "http://localhost:8080" || cfg.Storage != nil || cfg.FilePath() != "" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if err := cfg.Validate(false); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadConsole_FileAndEnvOverrides(t *testing.T) {
	clearConsoleEnv(t)
	path := writeConfig(t, `
api_url = "http://items.internal:9000"
token = "from-file"

[storage]
endpoint = "s3.internal:3900"
access_key = "GK123"
secret_key = "secret"
bucket = "snapshots"
`)
	t.Setenv("ITEMS_API_TOKEN", "from-env")
	t.Setenv("S3_BUCKET", "override")

	cfg, err := LoadConsole(path)
	if err != nil {
		t.Fatalf("LoadConsole: %v", err)
	}

	if cfg.APIURL != "http://items.internal:9000" {
		t.Errorf("api_url = %q", cfg.APIURL)
	}
	if cfg.Token != "from-env" {
		t.Errorf("token = %q, env must win", cfg.Token)
	}
	if cfg.Storage == nil || cfg.Storage.Bucket != "override" || cfg.Storage.Endpoint != "s3.internal:3900" {
		t.Fatalf("unexpected storage: %+v", cfg.Storage)
	}
	if cfg.Storage.KeyTemplate != DefaultExportKeyTemplate || cfg.Storage.Region != "garage" {
		t.Errorf("storage defaults not applied: %+v", cfg.Storage)
	}
	if cfg.FilePath() != path {
		t.Errorf("file path = %q", cfg.FilePath())
	}
	if err := cfg.Validate(true); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadConsole_StorageFromEnvOnly(t *testing.T) {
	clearConsoleEnv(t)
	t.Setenv("S3_ENDPOINT", "localhost:3900")

	cfg, err := LoadConsole("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Storage == nil || cfg.Storage.Bucket != "item-exports" {
		t.Fatalf("unexpected storage: %+v", cfg.Storage)
	}

	err = cfg.Validate(true)
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	paths := map[string]bool{}
	for _, e := range verrs {
		paths[e.FieldPath] = true
	}
	if !paths["storage.access_key"] || !paths["storage.secret_key"] {
		t.Errorf("missing credential errors in %v", verrs)
	}
}

func TestLoadConsole_ParseErrorHasPosition(t *testing.T) {
	clearConsoleEnv(t)
	path := writeConfig(t, "api_url = \"http://x\"\ntoken = \n")

	_, err := LoadConsole(path)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error should name the line: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name           string
		cfg            ConsoleConfig
		requireStorage bool
		wantPath       string
	}{
		{"bad url", ConsoleConfig{APIURL: "not a url"}, false, "api_url"},
		{"empty url", ConsoleConfig{}, false, "api_url"},
		{"storage required", ConsoleConfig{APIURL: "http://localhost:8080"}, true, "storage"},
		{
			"incomplete storage",
			ConsoleConfig{APIURL: "http://localhost:8080", Storage: &StorageConfig{Endpoint: "e", AccessKey: "a", SecretKey: "s", Bucket: "b"}},
			true,
			"storage.key_template",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate(tt.requireStorage)
			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected ValidationErrors, got %v", err)
			}
			if verrs[0].FieldPath != tt.wantPath {
				t.Errorf("path = %q, want %q (%v)", verrs[0].FieldPath, tt.wantPath, verrs)
			}
		})
	}
}

func TestValidate_StorageIgnoredWhenNotRequired(t *testing.T) {
	cfg := ConsoleConfig{APIURL: "http://localhost:8080", Storage: &StorageConfig{}}
	if err := cfg.Validate(false); err != nil {
		t.Errorf("storage must not be checked: %v", err)
	}
}
