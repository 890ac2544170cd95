package config

import (
	"testing"
	"time"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Transcribe.Model != "gpt-4o-transcribe" {
		t.Errorf("transcribe model = %q", cfg.Transcribe.Model)
	}
	if cfg.Transcribe.Language != "pt" || cfg.Transcribe.Format != "json" {
		t.Errorf("transcribe defaults = %+v", cfg.Transcribe)
	}
	if cfg.Summary.Model != "gpt-4o-mini" || cfg.Summary.Temperature != 0.2 {
		t.Errorf("summary defaults = %+v", cfg.Summary)
	}
	if cfg.OpenAI.Timeout.Duration() != 120*time.Second {
		t.Errorf("timeout = %v", cfg.OpenAI.Timeout.Duration())
	}
	if cfg.OpenAI.MaxRetries != 3 {
		t.Errorf("max retries = %d", cfg.OpenAI.MaxRetries)
	}
	if cfg.Summary.MaxTokens != 4000 {
		t.Errorf("max tokens = %d", cfg.Summary.MaxTokens)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_TIMEOUT", "30")
	t.Setenv("TRANSCRIBE_MODEL", "whisper-1")
	t.Setenv("TRANSCRIBE_FORMAT", "verbose_json")
	t.Setenv("SUMMARY_TEMPERATURE", "0.7")
	t.Setenv("SERVER_ALLOWED_ORIGINS", "http://a.test,http://b.test")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OpenAI.APIKey != "sk-test" {
		t.Errorf("api key = %q", cfg.OpenAI.APIKey)
	}
	if cfg.OpenAI.Timeout.Duration() != 30*time.Second {
		t.Errorf("timeout = %v", cfg.OpenAI.Timeout.Duration())
	}
	if cfg.Transcribe.Model != "whisper-1" || cfg.Transcribe.Format != "verbose_json" {
		t.Errorf("transcribe = %+v", cfg.Transcribe)
	}
	if cfg.Summary.Temperature != 0.7 {
		t.Errorf("temperature = %v", cfg.Summary.Temperature)
	}
	if len(cfg.Server.AllowedOrigins) != 2 {
		t.Errorf("origins = %v", cfg.Server.AllowedOrigins)
	}
}

func TestFromEnv_RejectsUnknownFormat(t *testing.T) {
	t.Setenv("TRANSCRIBE_FORMAT", "docx")

	if _, err := FromEnv(); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestSeconds_Decode(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"120", 120 * time.Second, false},
		{"1.5", 1500 * time.Millisecond, false},
		{"2m", 2 * time.Minute, false},
		{"-1", 0, true},
		{"soon", 0, true},
	}

	for _, tt := range tests {
		var s Seconds
		err := s.Decode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("Decode(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && s.Duration() != tt.want {
			t.Errorf("Decode(%q) = %v, want %v", tt.in, s.Duration(), tt.want)
		}
	}
}

func TestRequireCredentials(t *testing.T) {
	cfg := &Config{}
	if err := cfg.RequireCredentials(ProviderOpenAI); err == nil {
		t.Fatalf("expected missing OpenAI key error")
	}
	cfg.OpenAI.APIKey = "sk"
	if err := cfg.RequireCredentials(ProviderOpenAI); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cfg.RequireCredentials(ProviderAssemblyAI); err == nil {
		t.Fatalf("expected missing AssemblyAI key error")
	}
}
