package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type LLMConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
}

type PipelineConfig struct {
	MaxChunkSize   int  `toml:"max_chunk_size"`
	MaxConcurrency int  `toml:"max_concurrency"`
	Verify         bool `toml:"verify"`
}

type RetryConfig struct {
	MaxAttempts       int     `toml:"max_attempts"`
	BaseDelayMS       int     `toml:"base_delay_ms"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

type Config struct {
	LLM      LLMConfig      `toml:"llm"`
	Pipeline PipelineConfig `toml:"pipeline"`
	Retry    RetryConfig    `toml:"retry"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return &cfg, nil
}
