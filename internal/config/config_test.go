package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileIsEmptyConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.ADSToken != "" || cfg.RepoURL != "" || cfg.CachePath != "" {
		t.Errorf("Load() on missing file = %+v, want empty config", cfg)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path := filepath.Join(dir, ConfigDir, ConfigFile)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	content := "ads_token: sekrit\nrepo_url: http://mirror.example/documents/\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.ADSToken != "sekrit" {
		t.Errorf("ADSToken = %q, want sekrit", cfg.ADSToken)
	}
	if cfg.RepoURL != "http://mirror.example/documents/" {
		t.Errorf("RepoURL = %q", cfg.RepoURL)
	}
	if cfg.CachePath != "" {
		t.Errorf("CachePath = %q, want empty", cfg.CachePath)
	}
}

func TestResolveToken(t *testing.T) {
	cfg := &Config{ADSToken: "from-config"}

	t.Setenv("ADS_TOKEN", "")
	if got := cfg.ResolveToken("from-flag"); got != "from-flag" {
		t.Errorf("flag should win, got %q", got)
	}
	t.Setenv("ADS_TOKEN", "from-env")
	if got := cfg.ResolveToken(""); got != "from-env" {
		t.Errorf("env should beat config, got %q", got)
	}
	t.Setenv("ADS_TOKEN", "")
	if got := cfg.ResolveToken(""); got != "from-config" {
		t.Errorf("config should be the fallback, got %q", got)
	}
	if got := (&Config{}).ResolveToken(""); got != "" {
		t.Errorf("no token anywhere should resolve empty, got %q", got)
	}
}

func TestResolveRepoURL(t *testing.T) {
	cfg := &Config{RepoURL: "http://mirror.example/documents/"}
	if got := cfg.ResolveRepoURL("http://flag.example/"); got != "http://flag.example/" {
		t.Errorf("flag should win, got %q", got)
	}
	if got := cfg.ResolveRepoURL(""); got != "http://mirror.example/documents/" {
		t.Errorf("config should beat default, got %q", got)
	}
	if got := (&Config{}).ResolveRepoURL(""); got != DefaultRepoURL {
		t.Errorf("default = %q, want %q", got, DefaultRepoURL)
	}
}

func TestResolveCachePath(t *testing.T) {
	if got := (&Config{}).ResolveCachePath(""); got != DefaultCachePath {
		t.Errorf("default = %q, want %q", got, DefaultCachePath)
	}
	if got := (&Config{CachePath: "/var/cache/h.db"}).ResolveCachePath(""); got != "/var/cache/h.db" {
		t.Errorf("config path = %q", got)
	}
}
