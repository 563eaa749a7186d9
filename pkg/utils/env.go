package utils

import "os"

// Getenv returns the environment variable named by key, or fallback when it
// is unset or empty. Server, database and threshold settings are all read
// through this so each default lives at its call site.
func Getenv(key, fallback string) string {
	value := os.Getenv(key)
	if len(value) == 0 {
		return fallback
	}
	return value
}
