package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SERVICE_NAME", "summary-service")

	cfg := Load()
	if cfg.TopicSummaryAnalyzed != "summary_analyzed" {
		t.Errorf("topic = %q, want summary_analyzed", cfg.TopicSummaryAnalyzed)
	}
	if cfg.RedisPubSubChannel != "summary_updates_broadcast" {
		t.Errorf("pubsub channel = %q", cfg.RedisPubSubChannel)
	}
	if cfg.OpenAIModel != "gpt-4.1-mini" {
		t.Errorf("model = %q", cfg.OpenAIModel)
	}
	if cfg.OpenAIAPIURL == "" {
		t.Error("OpenAIAPIURL must have a default")
	}
}

func TestLoad_ServicePorts(t *testing.T) {
	tests := []struct {
		service     string
		wantHTTP    string
		wantMetrics string
	}{
		{"summary-service", "8080", "9095"},
		{"summary-archiver-worker", "", "9097"},
		{"", "8080", "9095"},
	}

	for _, tt := range tests {
		t.Run("svc="+tt.service, func(t *testing.T) {
			t.Setenv("SERVICE_NAME", tt.service)
			cfg := Load()
			if cfg.HTTPPort != tt.wantHTTP {
				t.Errorf("HTTPPort = %q, want %q", cfg.HTTPPort, tt.wantHTTP)
			}
			if cfg.MetricsPort != tt.wantMetrics {
				t.Errorf("MetricsPort = %q, want %q", cfg.MetricsPort, tt.wantMetrics)
			}
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVICE_NAME", "summary-service")
	t.Setenv("HTTP_PORT", "8888")
	t.Setenv("OPENAI_MODEL", "gpt-4o")
	t.Setenv("ADMIN_API_TOKEN", "tok")

	cfg := Load()
	if cfg.HTTPPort != "8888" {
		t.Errorf("HTTPPort = %q, want 8888", cfg.HTTPPort)
	}
	if cfg.OpenAIModel != "gpt-4o" {
		t.Errorf("OpenAIModel = %q, want gpt-4o", cfg.OpenAIModel)
	}
	if cfg.AdminAPIToken != "tok" {
		t.Errorf("AdminAPIToken = %q", cfg.AdminAPIToken)
	}
}
