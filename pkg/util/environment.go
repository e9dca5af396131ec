package util

import (
	"os"
	"strconv"
	"strings"
)

func GetEnvironmentVariables() map[string]string {
	environmentVariables := map[string]string{}

	for _, variable := range os.Environ() {
		pair := strings.SplitN(variable, "=", 2)

		if len(pair) == 2 {
			environmentVariables[pair[0]] = pair[1]
		}
	}

	return environmentVariables
}

func GetEnvironmentString(env map[string]string, key string, fallback string) string {
	if value := strings.TrimSpace(env[key]); value != "" {
		return value
	}

	return fallback
}

func GetEnvironmentInt(env map[string]string, key string, fallback int) int {
	if value, err := strconv.Atoi(strings.TrimSpace(env[key])); err == nil {
		return value
	}

	return fallback
}

func GetEnvironmentFloat(env map[string]string, key string, fallback float64) float64 {
	if value, err := strconv.ParseFloat(strings.TrimSpace(env[key]), 64); err == nil {
		return value
	}

	return fallback
}
