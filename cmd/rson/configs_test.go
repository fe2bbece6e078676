package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/rson/format"
)

func TestApplyDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rson.toml")
	err := os.WriteFile(path, []byte("indent = 4\ntab = true\ninput = \"yaml\"\noutput = \"json\"\n"), 0644)
	if err != nil {
		t.Fatal(err)
	}
	cfg := &MainConfig{Indent: 2, Config: path}
	if err := cfg.applyDefaults(); err != nil {
		t.Fatal(err)
	}
	if cfg.Indent != 4 || !cfg.Tab {
		t.Errorf("indent %d tab %v", cfg.Indent, cfg.Tab)
	}
	if cfg.InFormat == nil || *cfg.InFormat != format.YAMLFormat {
		t.Errorf("input format %v", cfg.InFormat)
	}
	if cfg.outFormat() != format.JSONFormat {
		t.Errorf("output format %s", cfg.outFormat())
	}

	json := format.JSONFormat
	cfg = &MainConfig{Config: path, InFormat: &json}
	if err := cfg.applyDefaults(); err != nil {
		t.Fatal(err)
	}
	if *cfg.InFormat != format.JSONFormat {
		t.Error("-I should win over the defaults file")
	}

	bad := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(bad, []byte("input = \"xml\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg = &MainConfig{Config: bad}
	if err := cfg.applyDefaults(); err == nil {
		t.Error("expected an error for an unknown format")
	}
}

func TestInFormat(t *testing.T) {
	cfg := &MainConfig{}
	got := []format.Format{
		cfg.inFormat("a.json"),
		cfg.inFormat("a.yml"),
		cfg.inFormat("a.yaml"),
		cfg.inFormat("a.rson"),
		cfg.inFormat("-"),
		cfg.inFormat("noext"),
	}
	want := []format.Format{
		format.JSONFormat,
		format.YAMLFormat,
		format.YAMLFormat,
		format.RSONFormat,
		format.RSONFormat,
		format.RSONFormat,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
