// Package config loads typed configuration from the environment.
//
// Every package that needs settings exposes a Config struct with
// github.com/caarlos0/env tags. Load parses it once per type and caches the
// result, so the service entry point and any lazily built component see the
// same values.
//
//	var cfg tenant.Config
//	config.MustLoad(&cfg)
//
// A .env file in the working directory is read on first use when present.
// LoadEnv reads additional files explicitly.
package config
