// Package config loads and validates calculator settings.
//
// Settings are resolved in layers, later layers winning:
//
//  1. built-in defaults
//  2. a TOML file (reckon.toml by default)
//  3. a .env file in the working directory
//  4. RECKON_* environment variables
//
// # Live Reload
//
// Watch monitors the TOML file and re-runs the load pipeline when it
// changes, delivering the new configuration to a callback. Reload
// failures are reported, never fatal.
package config
