package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFileAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "client.yaml")
	payload := []byte(`
chain:
  network: testnet
nodes:
  urls:
    - https://testnet.example
`)
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Chain.Network != "testnet" {
		t.Fatalf("network=%s", cfg.Chain.Network)
	}
	if cfg.Chain.AddressPrefix != "STM" {
		t.Fatalf("address prefix default missing: %s", cfg.Chain.AddressPrefix)
	}
	if len(cfg.Nodes.URLs) != 1 || cfg.Nodes.URLs[0] != "https://testnet.example" {
		t.Fatalf("urls=%v", cfg.Nodes.URLs)
	}
	if cfg.Nodes.TimeoutSeconds != 10 || cfg.Nodes.FailoverThreshold != 3 {
		t.Fatalf("node defaults missing: %+v", cfg.Nodes)
	}
	if cfg.Backoff.Strategy != "exponential" || cfg.Backoff.BaseMS != 100 || cfg.Backoff.MaxMS != 10_000 {
		t.Fatalf("backoff defaults missing: %+v", cfg.Backoff)
	}
}

func TestLoadFileRejectsMissingFile(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected missing file to fail")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HIVE_NODES", "https://a.example,https://b.example")
	t.Setenv("HIVE_NETWORK", "mainnet")
	t.Setenv("HIVE_TIMEOUT_SECONDS", "5")

	cfg := LoadFromEnv()
	if len(cfg.Nodes.URLs) != 2 {
		t.Fatalf("urls=%v", cfg.Nodes.URLs)
	}
	if cfg.Nodes.TimeoutSeconds != 5 {
		t.Fatalf("timeout=%d", cfg.Nodes.TimeoutSeconds)
	}
	if cfg.Chain.Network != "mainnet" {
		t.Fatalf("network=%s", cfg.Chain.Network)
	}
}
