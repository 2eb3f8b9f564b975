package cli

import (
	"strings"
	"testing"

	"wikimirror/internal/config"
)

func TestMergeOptionsConfigOnly(t *testing.T) {
	off := false
	m := config.Mirror{
		URL:          "https://redmine.example.com/",
		Project:      "demo",
		APIKey:       "cfg-key",
		OutputDir:    "/srv/wiki",
		Extension:    "markdown",
		DeleteStale:  &off,
		RewriteLinks: true,
	}

	opts, apiKey, err := mergeOptions(m, syncFlags{})
	if err != nil {
		t.Fatalf("mergeOptions error: %v", err)
	}

	if opts.BaseURL != "https://redmine.example.com" {
		t.Fatalf("BaseURL = %q (trailing slash kept?)", opts.BaseURL)
	}
	if opts.Project != "demo" || opts.OutputDir != "/srv/wiki" || opts.Extension != "markdown" {
		t.Fatalf("opts = %+v", opts)
	}
	if opts.DeleteStale || !opts.RewriteLinks {
		t.Fatalf("bool opts = %+v", opts)
	}
	if apiKey != "cfg-key" {
		t.Fatalf("apiKey = %q", apiKey)
	}
}

func TestMergeOptionsFlagsOverride(t *testing.T) {
	m := config.Mirror{
		URL:       "https://redmine.example.com",
		Project:   "demo",
		OutputDir: "/srv/wiki",
	}
	f := syncFlags{
		project:         "other",
		apiKey:          "flag-key",
		deleteStale:     false,
		deleteStaleSet:  true,
		rewriteLinks:    true,
		rewriteLinksSet: true,
		dryRun:          true,
	}

	opts, apiKey, err := mergeOptions(m, f)
	if err != nil {
		t.Fatalf("mergeOptions error: %v", err)
	}

	if opts.Project != "other" {
		t.Fatalf("Project = %q", opts.Project)
	}
	if opts.DeleteStale {
		t.Fatal("delete-stale flag override lost")
	}
	if !opts.RewriteLinks || !opts.DryRun {
		t.Fatalf("opts = %+v", opts)
	}
	if apiKey != "flag-key" {
		t.Fatalf("apiKey = %q", apiKey)
	}
}

func TestMergeOptionsUnsetBoolsKeepConfig(t *testing.T) {
	m := config.Mirror{
		URL:       "https://redmine.example.com",
		Project:   "demo",
		OutputDir: "/srv/wiki",
	}

	// --delete-stale defaults to true but was not set explicitly; the
	// config default (true when unset) must win without flag noise.
	opts, _, err := mergeOptions(m, syncFlags{deleteStale: true})
	if err != nil {
		t.Fatalf("mergeOptions error: %v", err)
	}
	if !opts.DeleteStale {
		t.Fatal("DeleteStale should default to true")
	}
	if opts.RewriteLinks {
		t.Fatal("RewriteLinks should default to false")
	}
}

func TestMergeOptionsValidation(t *testing.T) {
	tests := []struct {
		name string
		m    config.Mirror
		want string
	}{
		{"missing url", config.Mirror{Project: "p", OutputDir: "o"}, "base URL"},
		{"missing project", config.Mirror{URL: "u", OutputDir: "o"}, "project"},
		{"missing output", config.Mirror{URL: "u", Project: "p"}, "output"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := mergeOptions(tt.m, syncFlags{})
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestExtensionValue(t *testing.T) {
	var ext string
	v := extensionValue{&ext}

	if err := v.Set(".markdown"); err != nil || ext != "markdown" {
		t.Fatalf("Set(.markdown): ext=%q err=%v", ext, err)
	}
	if err := v.Set("md"); err != nil || ext != "md" {
		t.Fatalf("Set(md): ext=%q err=%v", ext, err)
	}
	if err := v.Set(""); err == nil {
		t.Fatal("empty extension accepted")
	}
	if err := v.Set("a/b"); err == nil {
		t.Fatal("extension with path separator accepted")
	}
	if v.Type() != "extension" {
		t.Fatalf("Type = %q", v.Type())
	}
}
