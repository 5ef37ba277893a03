// Package transform converts raw PokeAPI detail documents into a normalized
// three-table record set: pokemon rows, a deduplicated type lookup table and
// an order-preserving pokemon_type junction table.
//
// A run is all-or-nothing: the first validation or uniqueness failure aborts
// the whole transform and no partial record set is returned. The loader
// rebuilds its tables from scratch, so an incomplete record set would
// silently shrink the dataset.
package transform

import (
	"fmt"
	"math"

	"github.com/Dianaaleja/poke-pipeline/internal/entities"
)

// Transformer maps batches of raw documents to normalized record sets. It is
// stateless between runs; the type name→id mapping lives inside a single
// Transform call.
type Transformer struct{}

// NewTransformer creates a new Transformer
func NewTransformer() *Transformer {
	return &Transformer{}
}

// run holds the state of one Transform invocation.
type run struct {
	typeIndex  map[string]int
	nextTypeID int
	seenIDs    map[int]bool
	seenNames  map[string]bool
	out        entities.RecordSet
}

// Transform validates and normalizes an ordered batch of raw documents.
// Type surrogate ids are assigned in order of first appearance across the
// whole batch, which makes the output a deterministic function of document
// order. Returns *ValidationError or *UniquenessError on failure.
func (t *Transformer) Transform(docs []entities.RawPokemon) (*entities.RecordSet, error) {
	r := &run{
		typeIndex:  make(map[string]int),
		nextTypeID: 1,
		seenIDs:    make(map[int]bool),
		seenNames:  make(map[string]bool),
	}

	for i, doc := range docs {
		if err := r.addDocument(i, doc); err != nil {
			return nil, err
		}
	}

	return &r.out, nil
}

func (r *run) addDocument(i int, doc entities.RawPokemon) error {
	label := documentLabel(i, doc)

	name, err := stringField(label, "name", doc.Name)
	if err != nil {
		return err
	}
	id, err := intField(label, "id", doc.ID)
	if err != nil {
		return err
	}
	if id <= 0 {
		return &ValidationError{Document: label, Field: "id", Reason: "must be positive"}
	}
	height, err := numberField(label, "height", doc.Height)
	if err != nil {
		return err
	}
	weight, err := numberField(label, "weight", doc.Weight)
	if err != nil {
		return err
	}
	baseExperience, err := intField(label, "base_experience", doc.BaseExperience)
	if err != nil {
		return err
	}

	if r.seenIDs[id] {
		return &UniquenessError{Document: label, Field: "id", Value: fmt.Sprintf("%d", id)}
	}
	if r.seenNames[name] {
		return &UniquenessError{Document: label, Field: "name", Value: name}
	}
	r.seenIDs[id] = true
	r.seenNames[name] = true

	r.out.Pokemon = append(r.out.Pokemon, entities.Pokemon{
		ID:             id,
		Name:           name,
		Height:         height,
		Weight:         weight,
		BaseExperience: baseExperience,
	})

	// Resolve the document's types in listed order. The slot counter is
	// local to the document; the type lookup table is shared by the run.
	seenTypes := make(map[int]bool, len(doc.Types))
	slot := 1
	for _, ref := range doc.Types {
		if ref.Name == "" {
			return &ValidationError{Document: label, Field: "types", Reason: "contains an unnamed type reference"}
		}

		typeID, ok := r.typeIndex[ref.Name]
		if !ok {
			typeID = r.nextTypeID
			r.nextTypeID++
			r.typeIndex[ref.Name] = typeID
			r.out.Types = append(r.out.Types, entities.Type{ID: typeID, Name: ref.Name})
		}

		if seenTypes[typeID] {
			return &UniquenessError{Document: label, Field: "type", Value: ref.Name}
		}
		seenTypes[typeID] = true

		r.out.Memberships = append(r.out.Memberships, entities.PokemonType{
			PokemonID: id,
			TypeID:    typeID,
			Slot:      slot,
		})
		slot++
	}

	return nil
}

// documentLabel identifies a document in error messages: its name when the
// document has a usable one, otherwise its 1-based position in the batch.
func documentLabel(i int, doc entities.RawPokemon) string {
	if name, ok := doc.Name.(string); ok && name != "" {
		return fmt.Sprintf("%q", name)
	}
	return fmt.Sprintf("#%d", i+1)
}

func stringField(label, field string, v any) (string, error) {
	if v == nil {
		return "", &ValidationError{Document: label, Field: field, Reason: "is missing"}
	}
	s, ok := v.(string)
	if !ok {
		return "", &ValidationError{Document: label, Field: field, Reason: fmt.Sprintf("has unexpected type %T", v)}
	}
	if s == "" {
		return "", &ValidationError{Document: label, Field: field, Reason: "is empty"}
	}
	return s, nil
}

// numberField accepts any JSON number. encoding/json decodes numbers into
// float64, so that is the only numeric type seen in practice; ints are
// accepted for documents constructed directly in tests.
func numberField(label, field string, v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case nil:
		return 0, &ValidationError{Document: label, Field: field, Reason: "is missing"}
	default:
		return 0, &ValidationError{Document: label, Field: field, Reason: fmt.Sprintf("is not numeric (got %T)", v)}
	}
}

func intField(label, field string, v any) (int, error) {
	n, err := numberField(label, field, v)
	if err != nil {
		return 0, err
	}
	if math.Trunc(n) != n {
		return 0, &ValidationError{Document: label, Field: field, Reason: "is not an integer"}
	}
	return int(n), nil
}
