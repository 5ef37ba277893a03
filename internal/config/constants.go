package config

// Defaults for the pipeline configuration surface
const (
	// DefaultDatabasePath is the default path for the destination database
	DefaultDatabasePath = "./pokemon_data.db"

	// DefaultBaseURL is the public PokeAPI endpoint
	DefaultBaseURL = "https://pokeapi.co/api/v2"

	// DefaultPokemonLimit is how many pokemon one run processes
	DefaultPokemonLimit = 20

	// DefaultPageSize is the listing page size used during extraction
	DefaultPageSize = 20
)
