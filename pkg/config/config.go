package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	GoogleApiKey       string
	FreepikApiKey      string
	LinkupApiKey       string
	DeepLApiKey        string
	TwitterBearerToken string
	ReasoningModel     string
	FastModel          string
	Port               string
	ImagePollInterval  time.Duration
	ImagePollAttempts  int
	VideoPollInterval  time.Duration
	VideoPollAttempts  int
	ResearchWorkers    int
}

func Load() *Config {
	return &Config{
		GoogleApiKey:       getEnv("GOOGLE_API_KEY", ""),
		FreepikApiKey:      getEnv("FREEPIK_API_KEY", ""),
		LinkupApiKey:       getEnv("LINKUP_API_KEY", ""),
		DeepLApiKey:        getEnv("DEEPL_API_KEY", ""),
		TwitterBearerToken: getEnv("TWITTER_BEARER_TOKEN", ""),
		ReasoningModel:     getEnv("REASONING_MODEL", "gemini-3-pro-preview"),
		FastModel:          getEnv("FAST_MODEL", "gemini-3-flash-preview"),
		Port:               getEnv("PORT", "3000"),
		ImagePollInterval:  getEnvAsDuration("IMAGE_POLL_INTERVAL", 3*time.Second),
		ImagePollAttempts:  getEnvAsInt("IMAGE_POLL_ATTEMPTS", 10),
		VideoPollInterval:  getEnvAsDuration("VIDEO_POLL_INTERVAL", 5*time.Second),
		VideoPollAttempts:  getEnvAsInt("VIDEO_POLL_ATTEMPTS", 30),
		ResearchWorkers:    getEnvAsInt("RESEARCH_WORKERS", 3),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
