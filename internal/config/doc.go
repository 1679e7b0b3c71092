// Package config loads server configuration from environment variables.
//
// Only the HTTP shell is configured here. The file engine itself takes
// explicit absolute paths on every call and reads no environment state.
package config
