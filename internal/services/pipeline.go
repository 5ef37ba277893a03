package services

import (
	"context"
	"fmt"
	"log"

	"github.com/Dianaaleja/poke-pipeline/internal/transform"
)

// PipelineService runs the full extract-transform-load sequence. The stages
// run strictly one after another; if transform fails the loader is never
// invoked, not even to reset the schema, so a failed run leaves the previous
// tables untouched.
type PipelineService struct {
	extractor   Extractor
	transformer *transform.Transformer
	loader      Loader
}

// NewPipelineService creates a new PipelineService.
func NewPipelineService(extractor Extractor, loader Loader) *PipelineService {
	return &PipelineService{
		extractor:   extractor,
		transformer: transform.NewTransformer(),
		loader:      loader,
	}
}

// Run executes one full pipeline pass: fetch limit documents, normalize
// them, rebuild the destination tables and insert everything. Errors are
// wrapped with the stage that produced them.
func (s *PipelineService) Run(ctx context.Context, limit, pageSize int) (*RunReport, error) {
	docs, err := s.extractor.ExtractAll(ctx, limit, pageSize)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	log.Printf("Extracted %d documents", len(docs))

	rs, err := s.transformer.Transform(docs)
	if err != nil {
		return nil, fmt.Errorf("transform: %w", err)
	}
	log.Printf("Transformed %d documents into %d pokemon, %d types, %d links",
		len(docs), len(rs.Pokemon), len(rs.Types), len(rs.Memberships))

	if err := s.loader.ResetSchema(); err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	if err := s.loader.Load(rs); err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}

	return &RunReport{
		DocumentsFetched:  len(docs),
		PokemonLoaded:     len(rs.Pokemon),
		TypesLoaded:       len(rs.Types),
		MembershipsLoaded: len(rs.Memberships),
	}, nil
}
