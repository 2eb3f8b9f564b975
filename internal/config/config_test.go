package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const sampleConfig = `
default_mirror = "docs"

[mirrors.docs]
url = "https://redmine.example.com"
project = "demo"
api_key_env = "DEMO_REDMINE_KEY"
output_dir = "/srv/wiki/demo"
rewrite_links = true

[mirrors.infra]
url = "https://redmine.example.com"
project = "infra"
output_dir = "/srv/wiki/infra"
extension = "markdown"
delete_stale = false
`

func TestLoadFrom(t *testing.T) {
	cfg, err := LoadFrom(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatalf("LoadFrom error: %v", err)
	}

	if cfg.DefaultMirror != "docs" {
		t.Fatalf("DefaultMirror = %q", cfg.DefaultMirror)
	}
	docs := cfg.Mirrors["docs"]
	if docs.Project != "demo" || !docs.RewriteLinks {
		t.Fatalf("docs mirror = %+v", docs)
	}
	infra := cfg.Mirrors["infra"]
	if infra.Extension != "markdown" || infra.DeleteStaleEnabled() {
		t.Fatalf("infra mirror = %+v", infra)
	}
}

func TestLoadFromInvalid(t *testing.T) {
	if _, err := LoadFrom(writeConfig(t, "not [valid")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestGetMirror(t *testing.T) {
	cfg, err := LoadFrom(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatalf("LoadFrom error: %v", err)
	}

	if m, err := cfg.GetMirror(""); err != nil || m.Project != "demo" {
		t.Fatalf("default mirror = %+v, err %v", m, err)
	}
	if m, err := cfg.GetMirror("infra"); err != nil || m.Project != "infra" {
		t.Fatalf("named mirror = %+v, err %v", m, err)
	}
	if _, err := cfg.GetMirror("missing"); err == nil {
		t.Fatal("expected error for unknown mirror")
	}
}

func TestGetMirrorSingleFallback(t *testing.T) {
	cfg := &Config{Mirrors: map[string]Mirror{"only": {Project: "solo"}}}

	m, err := cfg.GetMirror("")
	if err != nil || m.Project != "solo" {
		t.Fatalf("single-mirror fallback = %+v, err %v", m, err)
	}
}

func TestDeleteStaleDefault(t *testing.T) {
	if !(Mirror{}).DeleteStaleEnabled() {
		t.Fatal("delete_stale should default to true")
	}
}

func TestResolveAPIKey(t *testing.T) {
	t.Setenv("DEMO_REDMINE_KEY", "from-named-env")
	t.Setenv(APIKeyEnvVar, "from-default-env")

	if got := (Mirror{APIKey: "literal"}).ResolveAPIKey(); got != "literal" {
		t.Fatalf("literal key = %q", got)
	}
	if got := (Mirror{APIKeyEnv: "DEMO_REDMINE_KEY"}).ResolveAPIKey(); got != "from-named-env" {
		t.Fatalf("named env key = %q", got)
	}
	if got := (Mirror{}).ResolveAPIKey(); got != "from-default-env" {
		t.Fatalf("default env key = %q", got)
	}
}
