// Package config loads library configuration from environment variables.
//
// Every section is read with envconfig under the HELPER prefix, so a section
// named "HTTP" maps field tags such as `envconfig:"TIMEOUT"` to
// HELPER_HTTP_TIMEOUT. Packages declare their own section structs and call
// Process. Shared logging settings live here.
//
// Environment Variables:
//   - HELPER_LOG_ENABLED, HELPER_LOG_LEVEL, HELPER_LOG_DEV
//   - HELPER_HTTP_* (see pkg/http/client.Config)
//   - HELPER_FILE_* (see pkg/file.Config)
//
// Example Usage:
//
//	var cfg client.Config
//	if err := config.Process("HTTP", &cfg); err != nil {
//		return err
//	}
package config
