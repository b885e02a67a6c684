package config

import (
	"fmt"
	"time"

	coreconfig "github.com/go-core-fx/config"
)

type Config struct {
	BaseURL      string        `koanf:"base_url"`
	Timeout      time.Duration `koanf:"timeout"`
	StorageDir   string        `koanf:"storage_dir"`
	LogFile      string        `koanf:"log_file"`
	Debug        bool          `koanf:"debug"`
	MetricsFile  string        `koanf:"metrics_file"`
	OTLPEndpoint string        `koanf:"otlp_endpoint"`

	// Upstream throttling. The customer limit caps a run at the first N
	// customers by turnover.
	CustomerLimit     int           `koanf:"customer_limit"`
	ListPause         time.Duration `koanf:"list_pause"`
	CustomerPause     time.Duration `koanf:"customer_pause"`
	PagePause         time.Duration `koanf:"page_pause"`
	BranchPause       time.Duration `koanf:"branch_pause"`
	BranchJitterMin   time.Duration `koanf:"branch_jitter_min"`
	BranchJitterMax   time.Duration `koanf:"branch_jitter_max"`
	BranchJitterEvery int           `koanf:"branch_jitter_every"`

	// Setting LLM_API_KEY and LLM_MODEL sends report rows to the provider for
	// a summary sheet. Customer names and phones are never included.
	LLMBaseURL string `koanf:"llm_base_url"`
	LLMAPIKey  string `koanf:"llm_api_key"`
	LLMModel   string `koanf:"llm_model"`
}

func Default() Config {
	return Config{
		BaseURL:    "https://api-proxy.choco.kz",
		Timeout:    30 * time.Second,
		StorageDir: "./storage",
		LogFile:    "./rahmet-export.log",
		Debug:      false,

		CustomerLimit:     100,
		ListPause:         2 * time.Second,
		CustomerPause:     500 * time.Millisecond,
		PagePause:         5 * time.Second,
		BranchPause:       5 * time.Second,
		BranchJitterMin:   500 * time.Millisecond,
		BranchJitterMax:   1500 * time.Millisecond,
		BranchJitterEvery: 20,
	}
}

func New() (Config, error) {
	cfg := Default()

	if err := coreconfig.Load(&cfg); err != nil {
		return Config{}, fmt.Errorf("loading config: %w", err)
	}

	return cfg, nil
}
