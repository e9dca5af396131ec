package config

import (
	"testing"

	_ "time/tzdata"
)

func TestDefaultIsValid(t *testing.T) {
	config := Default()

	if err := config.Validate(); err != nil {
		t.Fatalf("Default().Validate() error = %v", err)
	}
	if config.MinConfidence != 0.3 {
		t.Errorf("MinConfidence = %v, expected 0.3", config.MinConfidence)
	}
	if config.MaxAttempts != 5 {
		t.Errorf("MaxAttempts = %v, expected 5", config.MaxAttempts)
	}
}

func TestOverlay(t *testing.T) {
	config := Default()
	config.TfL.AppKey = "secret"

	err := Overlay(&config, []byte("maxAttempts: 2\ndefaultModes: [bus, tube]\n"))
	if err != nil {
		t.Fatalf("Overlay() error = %v", err)
	}

	if config.MaxAttempts != 2 {
		t.Errorf("MaxAttempts = %d, expected 2", config.MaxAttempts)
	}
	if len(config.DefaultModes) != 2 || config.DefaultModes[0] != "bus" {
		t.Errorf("DefaultModes = %v, expected [bus tube]", config.DefaultModes)
	}
	if config.MinConfidence != DefaultMinConfidence {
		t.Errorf("MinConfidence = %v, should keep the default", config.MinConfidence)
	}
	if config.TfL.AppKey != "secret" {
		t.Errorf("TfL.AppKey = %q, overlay must not touch provider settings", config.TfL.AppKey)
	}
}

func TestOverlayRejectsUnknownKeys(t *testing.T) {
	config := Default()

	if err := Overlay(&config, []byte("maxAttempt: 2\n")); err == nil {
		t.Error("Overlay() should reject unknown keys")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"confidence too high", func(c *Config) { c.MinConfidence = 1.5 }},
		{"no attempts", func(c *Config) { c.MaxAttempts = 0 }},
		{"no itineraries", func(c *Config) { c.MaxItineraries = 0 }},
		{"bad timezone", func(c *Config) { c.Timezone = "Mars/Olympus" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			config := Default()
			tc.mutate(&config)

			if err := config.Validate(); err == nil {
				t.Errorf("Validate() should fail for %s", tc.name)
			}
		})
	}
}
