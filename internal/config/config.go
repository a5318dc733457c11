package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              int
	CameraDevice      int
	CameraWidth       int  // 0 keeps the device default
	CameraHeight      int  // 0 keeps the device default
	CameraFPS         int  // 0 keeps the device default
	BroadcastInterval int  // Co którą klatkę wysyłać do viewerów (1=każdą)
	JPEGQuality       int  // Jakość JPEG dla podglądu na żywo
	DefaultMirror     bool // Mirror captures when the request does not say
	StaticDirectory   string
	LogDirectory      string
	CaptureDirectory  string
	AnalyticsDBPath   string // Empty disables analytics
}

// Load reads the configuration from the environment. Values from a .env file
// in the working directory are used when the variable is not already set.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:              getEnvAsInt("PORT", 8080),
		CameraDevice:      getEnvAsInt("CAMERA_DEVICE", 0),
		CameraWidth:       getEnvAsInt("CAMERA_WIDTH", 0),
		CameraHeight:      getEnvAsInt("CAMERA_HEIGHT", 0),
		CameraFPS:         getEnvAsInt("CAMERA_FPS", 0),
		BroadcastInterval: getEnvAsInt("BROADCAST_INTERVAL", 1),
		JPEGQuality:       getEnvAsInt("JPEG_QUALITY", 80),
		DefaultMirror:     getEnvAsBool("DEFAULT_MIRROR", true),
		StaticDirectory:   getEnv("STATIC_DIR", filepath.Join(".", "static")),
		LogDirectory:      getEnv("LOG_DIR", filepath.Join(".", "logs")),
		CaptureDirectory:  getEnv("CAPTURE_DIR", filepath.Join(".", "captures")),
		AnalyticsDBPath:   getEnv("ANALYTICS_DB", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
