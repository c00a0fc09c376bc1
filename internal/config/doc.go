// Package config loads application configuration from environment
// variables, optionally seeded from a .env file.
package config
