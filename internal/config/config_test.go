package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileReturnsDefault(t *testing.T) {
	proj, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if proj.Output != "output" {
		t.Errorf("Output = %q, want %q", proj.Output, "output")
	}
	if proj.TargetTriple != "" {
		t.Errorf("TargetTriple = %q, want empty (host default)", proj.TargetTriple)
	}
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".rutaceae.yaml")
	contents := "target_triple: x86_64-unknown-linux-gnu\noutput: myapp\nverbose: true\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}

	proj, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if proj.TargetTriple != "x86_64-unknown-linux-gnu" {
		t.Errorf("TargetTriple = %q", proj.TargetTriple)
	}
	if proj.Output != "myapp" {
		t.Errorf("Output = %q", proj.Output)
	}
	if !proj.Verbose {
		t.Error("Verbose = false, want true")
	}
}

func TestLoad_PartialFileKeepsRemainingDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".rutaceae.yaml")
	if err := os.WriteFile(path, []byte("verbose: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	proj, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if proj.Output != "output" {
		t.Errorf("Output = %q, want default %q to survive a partial file", proj.Output, "output")
	}
}
