package cfg

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func viperFromYaml(t *testing.T, raw string) *viper.Viper {
	t.Helper()
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(strings.NewReader(raw)); err != nil {
		t.Fatalf("read config: %v", err)
	}
	return v
}

func TestDecodeConfigMalformedNumbers(t *testing.T) {
	v := viperFromYaml(t, `
Tracker:
  PollIntervalMs: not-a-number
  RequestDelayMs: also-not-a-number
  Repos:
    - golang/go
Server:
  Port: 9090
`)

	config := decodeConfig(v)

	// Giá trị số hỏng về mặc định, không làm chết quá trình nạp cấu hình
	if config.Tracker.PollIntervalMs != DefaultPollIntervalMs {
		t.Errorf("PollIntervalMs = %d, want default %d for malformed value", config.Tracker.PollIntervalMs, DefaultPollIntervalMs)
	}
	if config.Tracker.RequestDelayMs != DefaultRequestDelayMs {
		t.Errorf("RequestDelayMs = %d, want default %d for malformed value", config.Tracker.RequestDelayMs, DefaultRequestDelayMs)
	}
	if config.Server.Port != 9090 {
		t.Errorf("Port = %d, want 9090 kept as configured", config.Server.Port)
	}
	if len(config.Tracker.Repos) != 1 || config.Tracker.Repos[0] != "golang/go" {
		t.Errorf("Repos = %v, valid fields must survive a malformed sibling", config.Tracker.Repos)
	}
}

func TestDecodeConfigAbsentNumbers(t *testing.T) {
	v := viperFromYaml(t, "App:\n  Name: github-event-tracker\n")

	config := decodeConfig(v)

	if config.Tracker.PollIntervalMs != DefaultPollIntervalMs {
		t.Errorf("PollIntervalMs = %d, want default %d when absent", config.Tracker.PollIntervalMs, DefaultPollIntervalMs)
	}
	if config.Server.Port != DefaultServerPort {
		t.Errorf("Port = %d, want default %d when absent", config.Server.Port, DefaultServerPort)
	}
}

func TestLenientInt(t *testing.T) {
	cases := []struct {
		name     string
		raw      interface{}
		fallback int
		want     int
	}{
		{"int value", 250, 200, 250},
		{"numeric string", "250", 200, 250},
		{"zero kept", 0, 200, 0},
		{"nil uses fallback", nil, 200, 200},
		{"garbage uses fallback", "not-a-number", 200, 200},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := lenientInt(tc.raw, tc.fallback); got != tc.want {
				t.Errorf("lenientInt(%v, %d) = %d, want %d", tc.raw, tc.fallback, got, tc.want)
			}
		})
	}
}
