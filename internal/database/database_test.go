package database

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dianaaleja/poke-pipeline/internal/entities"
)

// setupTestDB creates a fresh test database with an empty schema
func setupTestDB(t *testing.T) (*Database, func()) {
	t.Helper()
	dbPath := "./test_" + t.Name() + ".db"
	db, err := NewDatabase(dbPath)
	require.NoError(t, err)
	require.NoError(t, db.ResetSchema())

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return db, cleanup
}

func sampleRecordSet() *entities.RecordSet {
	return &entities.RecordSet{
		Pokemon: []entities.Pokemon{
			{ID: 6, Name: "charizard", Height: 17, Weight: 905, BaseExperience: 240},
			{ID: 12, Name: "butterfree", Height: 11, Weight: 320, BaseExperience: 178},
		},
		Types: []entities.Type{
			{ID: 1, Name: "fire"},
			{ID: 2, Name: "flying"},
			{ID: 3, Name: "bug"},
		},
		Memberships: []entities.PokemonType{
			{PokemonID: 6, TypeID: 1, Slot: 1},
			{PokemonID: 6, TypeID: 2, Slot: 2},
			{PokemonID: 12, TypeID: 3, Slot: 1},
			{PokemonID: 12, TypeID: 2, Slot: 2},
		},
	}
}

func TestDatabase_Load(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, db.Load(sampleRecordSet()))

	t.Run("all rows are inserted", func(t *testing.T) {
		pokemon, types, memberships, err := db.CountRows()
		require.NoError(t, err)
		assert.EqualValues(t, 2, pokemon)
		assert.EqualValues(t, 3, types)
		assert.EqualValues(t, 4, memberships)
	})

	t.Run("source ids and slots survive the round trip", func(t *testing.T) {
		var charizard entities.Pokemon
		require.NoError(t, db.DB.First(&charizard, 6).Error)
		assert.Equal(t, "charizard", charizard.Name)
		assert.Equal(t, 240, charizard.BaseExperience)

		var links []entities.PokemonType
		require.NoError(t, db.DB.Where("pokemon_id = ?", 6).Order("slot").Find(&links).Error)
		require.Len(t, links, 2)
		assert.Equal(t, 1, links[0].TypeID)
		assert.Equal(t, 1, links[0].Slot)
		assert.Equal(t, 2, links[1].TypeID)
		assert.Equal(t, 2, links[1].Slot)
	})

	t.Run("duplicate entity id is rejected", func(t *testing.T) {
		err := db.Load(&entities.RecordSet{
			Pokemon: []entities.Pokemon{{ID: 6, Name: "charizard-clone"}},
		})
		assert.Error(t, err)
	})

	t.Run("duplicate type name is rejected", func(t *testing.T) {
		err := db.Load(&entities.RecordSet{
			Types: []entities.Type{{ID: 99, Name: "fire"}},
		})
		assert.Error(t, err)
	})
}

func TestDatabase_ResetSchema(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, db.Load(sampleRecordSet()))

	// A second reset must wipe everything and allow a clean reload
	require.NoError(t, db.ResetSchema())

	pokemon, types, memberships, err := db.CountRows()
	require.NoError(t, err)
	assert.Zero(t, pokemon)
	assert.Zero(t, types)
	assert.Zero(t, memberships)

	require.NoError(t, db.Load(sampleRecordSet()))
}

func TestDatabase_TypeCounts(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, db.Load(sampleRecordSet()))

	counts, err := db.TypeCounts()
	require.NoError(t, err)

	// flying has two pokemon; bug and fire tie on one and sort by name
	assert.Equal(t, []TypeCount{
		{Type: "flying", Count: 2},
		{Type: "bug", Count: 1},
		{Type: "fire", Count: 1},
	}, counts)
}

func TestDatabase_EmptyRecordSet(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, db.Load(&entities.RecordSet{}))

	pokemon, types, memberships, err := db.CountRows()
	require.NoError(t, err)
	assert.Zero(t, pokemon)
	assert.Zero(t, types)
	assert.Zero(t, memberships)
}
