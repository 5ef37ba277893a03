// Package database is the load stage: it owns the SQLite destination schema
// and persists the record sets produced by the transform stage.
package database

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/Dianaaleja/poke-pipeline/internal/entities"
)

type Database struct {
	DB *gorm.DB
}

// NewDatabase opens (creating if necessary) the SQLite database at dbPath
// with foreign key enforcement enabled.
func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath+"?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Database{DB: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ResetSchema drops and recreates the three destination tables. Dropping is
// done junction table first so foreign keys never dangle; the whole
// operation is idempotent and safe on a fresh database.
func (d *Database) ResetSchema() error {
	migrator := d.DB.Migrator()

	for _, model := range []any{&entities.PokemonType{}, &entities.Pokemon{}, &entities.Type{}} {
		if err := migrator.DropTable(model); err != nil {
			return fmt.Errorf("failed to drop table: %w", err)
		}
	}

	err := d.DB.AutoMigrate(
		&entities.Type{},
		&entities.Pokemon{},
		&entities.PokemonType{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Destination schema recreated")
	return nil
}

// Load inserts a complete record set in one transaction, parents before the
// junction table so foreign key constraints are satisfied. A constraint
// violation here means the transform stage produced an inconsistent record
// set and is surfaced as an error rather than repaired.
func (d *Database) Load(rs *entities.RecordSet) error {
	return d.DB.Transaction(func(tx *gorm.DB) error {
		if len(rs.Types) > 0 {
			if err := tx.Create(rs.Types).Error; err != nil {
				return fmt.Errorf("failed to insert types: %w", err)
			}
		}
		if len(rs.Pokemon) > 0 {
			if err := tx.Create(rs.Pokemon).Error; err != nil {
				return fmt.Errorf("failed to insert pokemon: %w", err)
			}
		}
		if len(rs.Memberships) > 0 {
			if err := tx.Omit(clause.Associations).Create(rs.Memberships).Error; err != nil {
				return fmt.Errorf("failed to insert pokemon-type links: %w", err)
			}
		}
		return nil
	})
}

// TypeCount is one row of the per-type aggregation
type TypeCount struct {
	Type  string
	Count int
}

// TypeCounts returns the number of pokemon linked to each type, most
// populous first, ties broken by name.
func (d *Database) TypeCounts() ([]TypeCount, error) {
	var counts []TypeCount
	err := d.DB.
		Table("type").
		Select("type.name AS type, COUNT(pokemon_type.pokemon_id) AS count").
		Joins("JOIN pokemon_type ON pokemon_type.type_id = type.id").
		Group("type.name").
		Order("count DESC, type.name ASC").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate type counts: %w", err)
	}
	return counts, nil
}

// CountRows reports how many rows each destination table holds
func (d *Database) CountRows() (pokemon, types, memberships int64, err error) {
	if err = d.DB.Model(&entities.Pokemon{}).Count(&pokemon).Error; err != nil {
		return
	}
	if err = d.DB.Model(&entities.Type{}).Count(&types).Error; err != nil {
		return
	}
	err = d.DB.Model(&entities.PokemonType{}).Count(&memberships).Error
	return
}
