// Package config loads configuration structs from environment variables.
//
// It wraps github.com/caarlos0/env/v11 for struct parsing and
// github.com/joho/godotenv for .env files. Parsed structs are cached per type
// and prefix, so packages can call Load for the same type without parsing the
// environment again.
//
//	var cfg redis.Config
//	if err := config.Load(&cfg, config.WithPrefix("SCHEMAKIT_")); err != nil {
//	    return err
//	}
//
// Tests that change the environment between runs use WithoutCache or Reset.
package config
