package config

import (
	"os"
	"strconv"
)

// FromEnv reads configuration from environment variables. GEMINI_API_KEY is
// preferred; API_KEY is accepted as a fallback.
func FromEnv() Config {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("API_KEY")
	}

	return Config{
		Port:              getEnvInt("PORT", 0),
		SessionTTL:        os.Getenv("SESSION_TTL"),
		APIKey:            apiKey,
		Model:             os.Getenv("GEMINI_MODEL"),
		PreviewDebounceMS: getEnvInt("PREVIEW_DEBOUNCE_MS", 0),
		LogLevel:          os.Getenv("LOG_LEVEL"),
		LogFormat:         os.Getenv("LOG_FORMAT"),
		ChromePath:        os.Getenv("CHROME_PATH"),
		ExtractPDFLocally: getEnvBool("EXTRACT_PDF_LOCALLY", false),
		MaxUploadBytes:    int64(getEnvInt("MAX_UPLOAD_BYTES", 0)),
		MaxImageBytes:     int64(getEnvInt("MAX_IMAGE_BYTES", 0)),
		BrowserFetch:      getEnvBool("FETCH_WITH_BROWSER", false),
	}
}

// getEnvInt gets an environment variable as an integer with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool gets an environment variable as a boolean with a default value.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
