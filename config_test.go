package main

import (
	"os"
	"path/filepath"
	"testing"
)

func setMinimalValidConfigEnv(t *testing.T) {
	t.Helper()
	t.Setenv("LLM_PROVIDER", "anthropic")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-test")
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"LLM_PROVIDER", "LLM_MODEL", "ANTHROPIC_API_KEY", "OPENAI_API_KEY",
		"DB_PATH", "KEYWORD_TABLES_PATH", "SLACK_BOT_TOKEN", "ESCALATION_CHANNEL_ID",
		"TRIAGE_SCHEDULE", "SWEEP_LIMIT", "BATCH_PAUSE_SECONDS", "CACHE_CAPACITY",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigFromEnvWithDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing-config.yaml"))
	clearConfigEnv(t)
	setMinimalValidConfigEnv(t)

	cfg := LoadConfig()

	if cfg.LLMProvider != "anthropic" {
		t.Fatalf("unexpected provider: %q", cfg.LLMProvider)
	}
	if cfg.AnthropicAPIKey != "sk-ant-test" {
		t.Fatalf("unexpected api key: %q", cfg.AnthropicAPIKey)
	}
	if cfg.DBPath != "./triagebot.db" {
		t.Fatalf("unexpected db path default: %q", cfg.DBPath)
	}
	if cfg.TriageSchedule != "*/5 * * * *" {
		t.Fatalf("unexpected schedule default: %q", cfg.TriageSchedule)
	}
	if cfg.SweepLimit != 50 {
		t.Fatalf("unexpected sweep limit default: %d", cfg.SweepLimit)
	}
	if cfg.BatchPauseSeconds != 2 {
		t.Fatalf("unexpected batch pause default: %d", cfg.BatchPauseSeconds)
	}
	if cfg.CacheCapacity != defaultCacheCapacity {
		t.Fatalf("unexpected cache capacity default: %d", cfg.CacheCapacity)
	}
}

func TestLoadConfigYAMLAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	yaml := `llm_provider: openai
openai_api_key: sk-from-yaml
db_path: /tmp/from-yaml.db
sweep_limit: 25
`
	if err := os.WriteFile(configPath, []byte(yaml), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("CONFIG_PATH", configPath)
	clearConfigEnv(t)
	t.Setenv("DB_PATH", "/tmp/from-env.db")

	cfg := LoadConfig()

	if cfg.LLMProvider != "openai" {
		t.Fatalf("expected provider from yaml, got %q", cfg.LLMProvider)
	}
	if cfg.OpenAIAPIKey != "sk-from-yaml" {
		t.Fatalf("expected api key from yaml, got %q", cfg.OpenAIAPIKey)
	}
	if cfg.SweepLimit != 25 {
		t.Fatalf("expected sweep limit from yaml, got %d", cfg.SweepLimit)
	}
	// Env vars beat yaml.
	if cfg.DBPath != "/tmp/from-env.db" {
		t.Fatalf("expected env override for db path, got %q", cfg.DBPath)
	}
}
