package config

import (
	"github.com/spf13/viper"
)

type (
	Config struct {
		PokeAPI
		Database
		Pipeline
		Sync
	}

	PokeAPI struct {
		BaseURL string
	}
	Database struct {
		Path string
	}
	Pipeline struct {
		Limit    int // How many pokemon to process in one run
		PageSize int // Listing page size for extraction
	}
	Sync struct {
		Schedule string // Cron format: "0 * * * *" = hourly; empty disables scheduling
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("pokeapi_base_url", DefaultBaseURL)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("pokemon_limit", DefaultPokemonLimit)
	v.SetDefault("page_size", DefaultPageSize)
	v.SetDefault("sync_schedule", "")

	return &Config{
		PokeAPI: PokeAPI{
			BaseURL: v.GetString("POKEAPI_BASE_URL"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Pipeline: Pipeline{
			Limit:    v.GetInt("POKEMON_LIMIT"),
			PageSize: v.GetInt("PAGE_SIZE"),
		},
		Sync: Sync{
			Schedule: v.GetString("SYNC_SCHEDULE"),
		},
	}
}
