// Package config provides type-safe environment variable loading with caching
// using Go generics. Each configuration type is loaded once and cached for
// subsequent calls.
//
// The package loads a .env file on first use and uses the caarlos0/env
// library for parsing environment variables into struct fields.
//
// Basic usage:
//
//	import "github.com/dmitrymomot/databus/core/config"
//
//	type BusConfig struct {
//		Discipline string `env:"BUS_DISCIPLINE" envDefault:"single"`
//		Capacity   int    `env:"BUS_CAPACITY" envDefault:"64"`
//	}
//
//	func main() {
//		var cfg BusConfig
//
//		if err := config.Load(&cfg); err != nil {
//			log.Fatal(err)
//		}
//
//		// Or panic on failure (useful for startup)
//		config.MustLoad(&cfg)
//	}
//
// # Caching Behavior
//
// Each configuration type is loaded only once per process. Different types are
// cached independently. Use Parse to bypass the cache, for example in tests
// that change the environment between calls.
package config
