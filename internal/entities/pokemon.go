package entities

// Pokemon is one row of the pokemon table. The ID comes straight from the
// source document; it is never generated locally.
type Pokemon struct {
	ID             int     `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name           string  `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Height         float64 `json:"height"`
	Weight         float64 `json:"weight"`
	BaseExperience int     `json:"base_experience"`
}

func (Pokemon) TableName() string { return "pokemon" }

// Type is one row of the normalized type lookup table. IDs are surrogate
// keys assigned by the transformer in order of first appearance.
type Type struct {
	ID   int    `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name string `gorm:"uniqueIndex;size:50;not null" json:"name"`
}

func (Type) TableName() string { return "type" }

// PokemonType is the junction table linking a pokemon to one of its types.
// Slot preserves the order the types were listed in the source document,
// starting at 1 for the primary type.
type PokemonType struct {
	PokemonID int     `gorm:"primaryKey;autoIncrement:false" json:"pokemon_id"`
	TypeID    int     `gorm:"primaryKey;autoIncrement:false" json:"type_id"`
	Slot      int     `gorm:"not null" json:"slot"`
	Pokemon   Pokemon `gorm:"foreignKey:PokemonID;constraint:OnDelete:CASCADE" json:"-"`
	Type      Type    `gorm:"foreignKey:TypeID;constraint:OnDelete:CASCADE" json:"-"`
}

func (PokemonType) TableName() string { return "pokemon_type" }

// TypeRef is one entry of a detail document's ordered type list, already
// reduced to the type name.
type TypeRef struct {
	Name string `json:"name"`
}

// RawPokemon is a detail document as fetched from the API, before
// validation. Scalar fields stay untyped so the transformer can reject
// documents whose values do not have the expected semantic type instead of
// failing opaquely at decode time.
type RawPokemon struct {
	ID             any       `json:"id"`
	Name           any       `json:"name"`
	Height         any       `json:"height"`
	Weight         any       `json:"weight"`
	BaseExperience any       `json:"base_experience"`
	Types          []TypeRef `json:"-"`
}

// RecordSet is the transformer's hand-off to the loader: a complete,
// self-consistent set of rows for all three tables. It is built once per run
// and not mutated afterwards.
type RecordSet struct {
	Pokemon     []Pokemon
	Types       []Type
	Memberships []PokemonType
}
