package services

import (
	"context"

	"github.com/Dianaaleja/poke-pipeline/internal/entities"
)

// Extractor fetches raw detail documents from the upstream API.
// Use this interface so the pipeline can be tested without network access.
type Extractor interface {
	ExtractAll(ctx context.Context, limit, pageSize int) ([]entities.RawPokemon, error)
}

// Loader persists a transformed record set into the destination store.
type Loader interface {
	ResetSchema() error
	Load(rs *entities.RecordSet) error
}

// RunReport contains the outcome of one pipeline run.
type RunReport struct {
	DocumentsFetched  int
	PokemonLoaded     int
	TypesLoaded       int
	MembershipsLoaded int
}
