package utils

import "os"

// GetEnvOrSetDefault reads an environment variable, seeding it with the
// default when unset so later readers observe the same value.
func GetEnvOrSetDefault(key string, defaultVal string) string {
	v := os.Getenv(key)
	if v == "" {
		os.Setenv(key, defaultVal)
		return defaultVal
	}

	return v
}
