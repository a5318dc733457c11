package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "CAMERA_DEVICE", "BROADCAST_INTERVAL", "DEFAULT_MIRROR", "ANALYTICS_DB", "JPEG_QUALITY"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Port != 8080 {
		t.Errorf("Expected port 8080, got %d", cfg.Port)
	}
	if cfg.CameraDevice != 0 {
		t.Errorf("Expected camera device 0, got %d", cfg.CameraDevice)
	}
	if cfg.BroadcastInterval != 1 {
		t.Errorf("Expected broadcast interval 1, got %d", cfg.BroadcastInterval)
	}
	if !cfg.DefaultMirror {
		t.Error("Expected mirror to be on by default")
	}
	if cfg.AnalyticsDBPath != "" {
		t.Errorf("Expected analytics to be disabled, got %q", cfg.AnalyticsDBPath)
	}
	if cfg.JPEGQuality != 80 {
		t.Errorf("Expected JPEG quality 80, got %d", cfg.JPEGQuality)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CAMERA_DEVICE", "2")
	t.Setenv("DEFAULT_MIRROR", "false")
	t.Setenv("ANALYTICS_DB", "/tmp/events.db")

	cfg := Load()

	if cfg.Port != 9090 {
		t.Errorf("Expected port 9090, got %d", cfg.Port)
	}
	if cfg.CameraDevice != 2 {
		t.Errorf("Expected camera device 2, got %d", cfg.CameraDevice)
	}
	if cfg.DefaultMirror {
		t.Error("Expected mirror to be off")
	}
	if cfg.AnalyticsDBPath != "/tmp/events.db" {
		t.Errorf("Expected analytics db path, got %q", cfg.AnalyticsDBPath)
	}
}

func TestGetEnvAsInt_Invalid(t *testing.T) {
	tests := []struct {
		value    string
		expected int
	}{
		{"abc", 7},
		{"12.5", 7},
		{"", 7},
		{"42", 42},
	}

	for _, tt := range tests {
		t.Setenv("TRUEMIRROR_TEST_INT", tt.value)
		if got := getEnvAsInt("TRUEMIRROR_TEST_INT", 7); got != tt.expected {
			t.Errorf("getEnvAsInt(%q) = %d, expected %d", tt.value, got, tt.expected)
		}
	}
}

func TestGetEnvAsBool_Invalid(t *testing.T) {
	t.Setenv("TRUEMIRROR_TEST_BOOL", "maybe")
	if !getEnvAsBool("TRUEMIRROR_TEST_BOOL", true) {
		t.Error("Expected default for unparsable bool")
	}
}
