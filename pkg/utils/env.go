package utils

import "os"

func ParseWithFallback(envName string, fallback string) string {
	if result, ok := os.LookupEnv(envName); ok && result != "" {
		return result
	}

	return fallback
}
