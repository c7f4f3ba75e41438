package main

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	LLMProvider     string `yaml:"llm_provider"`
	LLMModel        string `yaml:"llm_model"`
	AnthropicAPIKey string `yaml:"anthropic_api_key"`
	OpenAIAPIKey    string `yaml:"openai_api_key"`

	DBPath            string `yaml:"db_path"`
	KeywordTablesPath string `yaml:"keyword_tables_path"`

	SlackBotToken       string `yaml:"slack_bot_token"`
	EscalationChannelID string `yaml:"escalation_channel_id"`

	TriageSchedule    string `yaml:"triage_schedule"`
	SweepLimit        int    `yaml:"sweep_limit"`
	BatchPauseSeconds int    `yaml:"batch_pause_seconds"`
	CacheCapacity     int    `yaml:"cache_capacity"`
}

func LoadConfig() Config {
	var cfg Config

	// Load from config.yaml if it exists
	configPath := "config.yaml"
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		configPath = envPath
	}
	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			log.Fatalf("Error parsing %s: %v", configPath, err)
		}
		log.Printf("Loaded config from %s", configPath)
	}

	// Env vars override YAML values
	envOverride(&cfg.LLMProvider, "LLM_PROVIDER")
	envOverride(&cfg.LLMModel, "LLM_MODEL")
	envOverride(&cfg.AnthropicAPIKey, "ANTHROPIC_API_KEY")
	envOverride(&cfg.OpenAIAPIKey, "OPENAI_API_KEY")
	envOverride(&cfg.DBPath, "DB_PATH")
	envOverride(&cfg.KeywordTablesPath, "KEYWORD_TABLES_PATH")
	envOverride(&cfg.SlackBotToken, "SLACK_BOT_TOKEN")
	envOverride(&cfg.EscalationChannelID, "ESCALATION_CHANNEL_ID")
	envOverride(&cfg.TriageSchedule, "TRIAGE_SCHEDULE")
	envOverrideInt(&cfg.SweepLimit, "SWEEP_LIMIT")
	envOverrideInt(&cfg.BatchPauseSeconds, "BATCH_PAUSE_SECONDS")
	envOverrideInt(&cfg.CacheCapacity, "CACHE_CAPACITY")

	// Defaults
	if cfg.LLMProvider == "" {
		cfg.LLMProvider = "anthropic"
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "./triagebot.db"
	}
	if cfg.TriageSchedule == "" {
		cfg.TriageSchedule = "*/5 * * * *"
	}
	if cfg.SweepLimit == 0 {
		cfg.SweepLimit = 50
	}
	if cfg.BatchPauseSeconds == 0 {
		cfg.BatchPauseSeconds = 2
	}
	if cfg.CacheCapacity == 0 {
		cfg.CacheCapacity = defaultCacheCapacity
	}

	// Validate
	switch cfg.LLMProvider {
	case "anthropic":
		if cfg.AnthropicAPIKey == "" {
			log.Fatalf("anthropic_api_key is required when llm_provider=anthropic")
		}
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			log.Fatalf("openai_api_key is required when llm_provider=openai")
		}
	default:
		log.Fatalf("llm_provider must be 'anthropic' or 'openai', got '%s'", cfg.LLMProvider)
	}

	if cfg.SweepLimit < 1 {
		log.Fatalf("invalid sweep_limit '%d': must be >= 1", cfg.SweepLimit)
	}
	if cfg.BatchPauseSeconds < 0 {
		log.Fatalf("invalid batch_pause_seconds '%d': must be >= 0", cfg.BatchPauseSeconds)
	}
	if cfg.CacheCapacity < 1 {
		log.Fatalf("invalid cache_capacity '%d': must be >= 1", cfg.CacheCapacity)
	}
	if cfg.EscalationChannelID != "" && cfg.SlackBotToken == "" {
		log.Fatalf("slack_bot_token is required when escalation_channel_id is set")
	}
	if cfg.KeywordTablesPath != "" {
		if _, err := LoadKeywordTables(cfg.KeywordTablesPath); err != nil {
			log.Fatalf("invalid keyword_tables_path '%s': %v", cfg.KeywordTablesPath, err)
		}
	}

	return cfg
}

func envOverride(field *string, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}

func envOverrideInt(field *int, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		parsed, err := strconv.Atoi(val)
		if err != nil {
			log.Fatalf("invalid %s '%s': %v", envKey, val, err)
		}
		*field = parsed
	}
}
