// Package config loads environment-driven configuration structs.
//
// It combines godotenv (for local .env files) with caarlos0/env struct tag
// parsing. Each package in this repository declares its own Config struct
// with `env` tags; callers load them at startup:
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
package config
