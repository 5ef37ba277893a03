package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/Dianaaleja/poke-pipeline/internal/config"
	"github.com/Dianaaleja/poke-pipeline/internal/database"
	"github.com/Dianaaleja/poke-pipeline/internal/exporters"
)

// TypeCountsCommand prints how many pokemon are linked to each type
type TypeCountsCommand struct {
	DatabasePath string
}

// NewTypeCountsCommand creates a new TypeCountsCommand
func NewTypeCountsCommand(cfg *config.Config) *TypeCountsCommand {
	return &TypeCountsCommand{
		DatabasePath: cfg.Database.Path,
	}
}

// ParseFlags parses command line flags
func (cmd *TypeCountsCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("type-counts", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", cmd.DatabasePath, "Path to the SQLite database to query")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s type-counts [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Print the number of pokemon per type as CSV on stdout.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s type-counts\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s type-counts -db ./pokedex.db > counts.csv\n", os.Args[0])
	}

	return fs.Parse(args)
}

// Run queries the database and writes the counts as CSV
func (cmd *TypeCountsCommand) Run() error {
	if _, err := os.Stat(cmd.DatabasePath); err != nil {
		return fmt.Errorf("database not found at %s, run the pipeline first", cmd.DatabasePath)
	}

	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	return exporters.NewCSVExporter(db).ExportTypeCounts(os.Stdout)
}
