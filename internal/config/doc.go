// Package config loads application configuration from environment
// variables, with a .env file honored in development. Load applies
// defaults; Validate reports every problem at once so a misconfigured
// deploy fails fast with a complete list.
package config
