package config

import "testing"

func validConfig() Config {
	return Config{
		HTTP: HTTPConfig{Port: 8080},
		Database: DatabaseConfig{
			Addrs: []string{"localhost:6379"},
		},
		LLM: LLMConfig{Model: "gpt-4o"},
	}
}

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig()
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingDatabaseAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Addrs = nil

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing database addrs")
	}
}

func TestValidate_MissingModel(t *testing.T) {
	cfg := validConfig()
	cfg.LLM.Model = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing llm model")
	}
}

func TestValidate_ExplicitOriginalVersion(t *testing.T) {
	cfg := validConfig()
	cfg.Search.Versions = map[string][]string{
		"en": {"ESV", "Original"},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for explicitly listed Original version")
	}
}

func TestValidate_EmptyVersionList(t *testing.T) {
	cfg := validConfig()
	cfg.Search.Versions = map[string][]string{"en": {}}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for empty version list")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := validConfig()
	cfg.ApplyDefaults()

	if cfg.Trending.CacheTTLHours != 24 {
		t.Errorf("expected 24h trending TTL default, got %d", cfg.Trending.CacheTTLHours)
	}
	if cfg.Trending.PromptCount != 3 {
		t.Errorf("expected 3 trending prompts default, got %d", cfg.Trending.PromptCount)
	}
	if cfg.Storage.KeyPrefix != "versefinder:" {
		t.Errorf("unexpected key prefix default: %q", cfg.Storage.KeyPrefix)
	}
	if got := cfg.Search.Versions["en"]; len(got) != 2 || got[0] != "ESV" {
		t.Errorf("unexpected en version defaults: %v", got)
	}
	if got := cfg.Search.Versions["ko"]; len(got) != 2 || got[0] != "KRV" {
		t.Errorf("unexpected ko version defaults: %v", got)
	}
	if cfg.LLM.RequestTimeoutSec != 90 {
		t.Errorf("expected 90s llm timeout default, got %d", cfg.LLM.RequestTimeoutSec)
	}
	if cfg.Sessions.IdleTTLMin != 30 {
		t.Errorf("expected 30min session idle TTL default, got %d", cfg.Sessions.IdleTTLMin)
	}
}
