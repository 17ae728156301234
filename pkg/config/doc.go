// Package config loads configuration structs from environment variables.
//
// It wraps github.com/joho/godotenv for .env files and
// github.com/caarlos0/env/v11 for struct-tag parsing. Each configuration type
// is parsed once and cached; ForceReloadConfig and ResetCache exist for tests.
//
//	var cfg gitlab.Config
//	config.MustLoad(&cfg)
//
//	strategy, err := gitlab.New(cfg, verify)
//
// LoadEnv reads explicit .env files. Values already present in the process
// environment are never overwritten.
package config
