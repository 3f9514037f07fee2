// Package config defines the application configuration structure and
// loading. Settings come from environment variables (RECITE_ prefix)
// and an optional YAML file, and are validated before use.
package config
