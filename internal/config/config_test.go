package config

import "testing"

func validConfig() Config {
	return Config{
		HTTP:      HTTPConfig{Port: 8080},
		Database:  DatabaseConfig{Addrs: []string{"localhost:6379"}},
		Embedding: EmbeddingConfig{APIKey: "test-key"},
	}
}

func TestValidate_OK(t *testing.T) {
	cfg := validConfig()
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Addrs = nil

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing database addrs")
	}
}

func TestValidate_MissingAPIKey(t *testing.T) {
	cfg := validConfig()
	cfg.Embedding.APIKey = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing embedding api key")
	}
}

func TestValidate_ThresholdOrdering(t *testing.T) {
	cfg := validConfig()
	cfg.Retrieval.ScoreThreshold = 0.9
	cfg.Retrieval.ScheduleScoreThreshold = 0.7

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for inverted thresholds")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 30 {
		t.Errorf("expected WriteTimeoutSec=30, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Database.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Database.ReadinessTimeout)
	}
	if cfg.Index.HNSWM != 32 {
		t.Errorf("expected HNSWM=32, got %d", cfg.Index.HNSWM)
	}
	if cfg.Index.HNSWEFConstruct != 400 {
		t.Errorf("expected HNSWEFConstruct=400, got %d", cfg.Index.HNSWEFConstruct)
	}
	if cfg.Storage.KeyPrefix != "teamrecall:" {
		t.Errorf("expected KeyPrefix='teamrecall:', got %q", cfg.Storage.KeyPrefix)
	}
	if cfg.Embedding.Model != "text-embedding-3-small" {
		t.Errorf("unexpected default model %q", cfg.Embedding.Model)
	}
	if cfg.Embedding.Dimensions != 1536 {
		t.Errorf("expected Dimensions=1536, got %d", cfg.Embedding.Dimensions)
	}
	if cfg.Retrieval.DefaultK != 5 {
		t.Errorf("expected DefaultK=5, got %d", cfg.Retrieval.DefaultK)
	}
	if cfg.Retrieval.ScoreThreshold != 0.5 {
		t.Errorf("expected ScoreThreshold=0.5, got %g", cfg.Retrieval.ScoreThreshold)
	}
	if cfg.Retrieval.ScheduleScoreThreshold != 0.7 {
		t.Errorf("expected ScheduleScoreThreshold=0.7, got %g", cfg.Retrieval.ScheduleScoreThreshold)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:      HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Database:  DatabaseConfig{ReadinessTimeout: 15},
		Index:     IndexConfig{HNSWM: 16, HNSWEFConstruct: 200, MaxBatchSize: 50},
		Storage:   StorageConfig{KeyPrefix: "custom:"},
		Retrieval: RetrievalConfig{DefaultK: 3, ScoreThreshold: 0.4},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Index.HNSWM != 16 {
		t.Errorf("expected HNSWM=16, got %d", cfg.Index.HNSWM)
	}
	if cfg.Storage.KeyPrefix != "custom:" {
		t.Errorf("expected KeyPrefix='custom:', got %q", cfg.Storage.KeyPrefix)
	}
	if cfg.Retrieval.DefaultK != 3 {
		t.Errorf("expected DefaultK=3, got %d", cfg.Retrieval.DefaultK)
	}
	if cfg.Retrieval.ScoreThreshold != 0.4 {
		t.Errorf("expected ScoreThreshold=0.4, got %g", cfg.Retrieval.ScoreThreshold)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("TR_TEST_KEY", "secret")

	out := string(expandEnvVars([]byte("api_key: ${TR_TEST_KEY}\nurl: ${TR_MISSING:-http://localhost}\n")))
	want := "api_key: secret\nurl: http://localhost\n"
	if out != want {
		t.Errorf("unexpected expansion:\ngot:  %q\nwant: %q", out, want)
	}
}
