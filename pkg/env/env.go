package env

import "os"

// Get reads an environment variable, falling back when it is unset or
// empty. Used before config has loaded, e.g. for the logger's format switch.
func Get(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
