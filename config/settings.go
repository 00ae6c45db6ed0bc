package config

import (
	"os"
	"strconv"
	"sync"
)

const (
	DEFAULT_MAX_TEXT_LENGTH         = 5000
	DEFAULT_STRESS_THRESHOLD_MEDIUM = 0.4
	DEFAULT_STRESS_THRESHOLD_HIGH   = 0.7
	DEFAULT_PRIVACY_EPSILON         = 1.0
	DEFAULT_TIME_WINDOW_DAYS        = 7
	DEFAULT_HTTP_PORT               = "8086"
	DEFAULT_ASSESSMENTS_TABLE       = "WellbeingAssessments"
)

type Settings struct {
	MaxTextLength             int
	StressThresholdMedium     float64
	StressThresholdHigh       float64
	PrivacyEpsilon            float64
	EnableDifferentialPrivacy bool
	HTTPPort                  string
	AssessmentsTable          string
}

var (
	settingsInstance *Settings
	settingsOnce     sync.Once
)

// GetSettings reads the process environment once and returns the same
// immutable snapshot on every subsequent call.
func GetSettings() *Settings {
	settingsOnce.Do(func() {
		settingsInstance = &Settings{
			MaxTextLength:             getEnvInt("MAX_TEXT_LENGTH", DEFAULT_MAX_TEXT_LENGTH),
			StressThresholdMedium:     getEnvFloat("STRESS_THRESHOLD_MEDIUM", DEFAULT_STRESS_THRESHOLD_MEDIUM),
			StressThresholdHigh:       getEnvFloat("STRESS_THRESHOLD_HIGH", DEFAULT_STRESS_THRESHOLD_HIGH),
			PrivacyEpsilon:            getEnvFloat("PRIVACY_EPSILON", DEFAULT_PRIVACY_EPSILON),
			EnableDifferentialPrivacy: getEnvBool("ENABLE_DIFFERENTIAL_PRIVACY", true),
			HTTPPort:                  getEnvString("HTTP_PORT", DEFAULT_HTTP_PORT),
			AssessmentsTable:          getEnvString("ASSESSMENTS_TABLE", DEFAULT_ASSESSMENTS_TABLE),
		}
	})
	return settingsInstance
}

func getEnvString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
