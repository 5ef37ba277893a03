package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dianaaleja/poke-pipeline/internal/entities"
	"github.com/Dianaaleja/poke-pipeline/internal/transform"
)

type fakeExtractor struct {
	docs []entities.RawPokemon
	err  error
}

func (f *fakeExtractor) ExtractAll(_ context.Context, limit, _ int) ([]entities.RawPokemon, error) {
	if f.err != nil {
		return nil, f.err
	}
	if limit < len(f.docs) {
		return f.docs[:limit], nil
	}
	return f.docs, nil
}

type fakeLoader struct {
	resetCalls int
	loadCalls  int
	loaded     *entities.RecordSet
	resetErr   error
	loadErr    error
}

func (f *fakeLoader) ResetSchema() error {
	f.resetCalls++
	return f.resetErr
}

func (f *fakeLoader) Load(rs *entities.RecordSet) error {
	f.loadCalls++
	f.loaded = rs
	return f.loadErr
}

func validDoc(id float64, name string, typeNames ...string) entities.RawPokemon {
	refs := make([]entities.TypeRef, 0, len(typeNames))
	for _, n := range typeNames {
		refs = append(refs, entities.TypeRef{Name: n})
	}
	return entities.RawPokemon{
		ID: id, Name: name,
		Height: 10.0, Weight: 100.0, BaseExperience: 64.0,
		Types: refs,
	}
}

func TestPipelineService_Run(t *testing.T) {
	extractor := &fakeExtractor{docs: []entities.RawPokemon{
		validDoc(6, "charizard", "fire", "flying"),
		validDoc(12, "butterfree", "bug", "flying"),
	}}
	loader := &fakeLoader{}
	svc := NewPipelineService(extractor, loader)

	report, err := svc.Run(context.Background(), 20, 20)
	require.NoError(t, err)

	assert.Equal(t, 2, report.DocumentsFetched)
	assert.Equal(t, 2, report.PokemonLoaded)
	assert.Equal(t, 3, report.TypesLoaded)
	assert.Equal(t, 4, report.MembershipsLoaded)

	assert.Equal(t, 1, loader.resetCalls)
	assert.Equal(t, 1, loader.loadCalls)
	require.NotNil(t, loader.loaded)
	assert.Len(t, loader.loaded.Memberships, 4)
}

func TestPipelineService_ExtractFailure(t *testing.T) {
	extractor := &fakeExtractor{err: errors.New("connection refused")}
	loader := &fakeLoader{}
	svc := NewPipelineService(extractor, loader)

	_, err := svc.Run(context.Background(), 20, 20)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "extract:")

	assert.Zero(t, loader.resetCalls, "loader must not be touched after a failed extract")
	assert.Zero(t, loader.loadCalls)
}

func TestPipelineService_TransformFailure(t *testing.T) {
	bad := validDoc(6, "charizard", "fire")
	bad.Height = "tall"

	extractor := &fakeExtractor{docs: []entities.RawPokemon{bad}}
	loader := &fakeLoader{}
	svc := NewPipelineService(extractor, loader)

	_, err := svc.Run(context.Background(), 20, 20)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transform:")

	var verr *transform.ValidationError
	assert.ErrorAs(t, err, &verr)

	assert.Zero(t, loader.resetCalls, "a failed transform must not reset the schema")
	assert.Zero(t, loader.loadCalls)
}

func TestPipelineService_LoadFailure(t *testing.T) {
	extractor := &fakeExtractor{docs: []entities.RawPokemon{validDoc(6, "charizard", "fire")}}
	loader := &fakeLoader{loadErr: errors.New("UNIQUE constraint failed")}
	svc := NewPipelineService(extractor, loader)

	_, err := svc.Run(context.Background(), 20, 20)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load:")
}
