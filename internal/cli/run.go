package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/Dianaaleja/poke-pipeline/internal/config"
	"github.com/Dianaaleja/poke-pipeline/internal/database"
	"github.com/Dianaaleja/poke-pipeline/internal/pokeapi"
	"github.com/Dianaaleja/poke-pipeline/internal/scheduler"
	"github.com/Dianaaleja/poke-pipeline/internal/services"
)

// RunCommand executes the extract-transform-load pipeline
type RunCommand struct {
	Limit        int
	PageSize     int
	DatabasePath string
	BaseURL      string
	Schedule     string
}

// NewRunCommand creates a new RunCommand with defaults taken from the
// environment configuration
func NewRunCommand(cfg *config.Config) *RunCommand {
	return &RunCommand{
		Limit:        cfg.Pipeline.Limit,
		PageSize:     cfg.Pipeline.PageSize,
		DatabasePath: cfg.Database.Path,
		BaseURL:      cfg.PokeAPI.BaseURL,
		Schedule:     cfg.Sync.Schedule,
	}
}

// ParseFlags parses command line flags
func (cmd *RunCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)

	fs.IntVar(&cmd.Limit, "limit", cmd.Limit, "How many pokemon to process")
	fs.IntVar(&cmd.PageSize, "page-size", cmd.PageSize, "Listing page size for extraction")
	fs.StringVar(&cmd.DatabasePath, "db", cmd.DatabasePath, "Path to the destination SQLite database")
	fs.StringVar(&cmd.BaseURL, "base-url", cmd.BaseURL, "PokeAPI base URL")
	fs.StringVar(&cmd.Schedule, "schedule", cmd.Schedule, "Cron schedule for recurring runs (empty = run once)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s run [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Fetch pokemon from the PokeAPI, normalize them and load them into SQLite.\n\n")
		fmt.Fprintf(os.Stderr, "This command:\n")
		fmt.Fprintf(os.Stderr, "  1. Pages through the pokemon listing and fetches each detail document\n")
		fmt.Fprintf(os.Stderr, "  2. Normalizes the documents into pokemon, type and pokemon_type rows\n")
		fmt.Fprintf(os.Stderr, "  3. Rebuilds the destination tables and inserts everything\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s run\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s run -limit 151 -db ./pokedex.db\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s run -schedule \"0 * * * *\"\n", os.Args[0])
	}

	return fs.Parse(args)
}

// Run executes the pipeline once, or on a schedule when one is configured
func (cmd *RunCommand) Run() error {
	fmt.Println("🚀 PokéPipeline")
	fmt.Println("===============")

	absDBPath, err := filepath.Abs(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for database: %w", err)
	}
	cmd.DatabasePath = absDBPath

	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	fmt.Printf("📁 Database: %s\n", cmd.DatabasePath)
	fmt.Printf("🌐 Source:   %s\n", cmd.BaseURL)

	client := pokeapi.NewClient(cmd.BaseURL)
	pipeline := services.NewPipelineService(client, db)

	if cmd.Schedule == "" {
		return cmd.runOnce(pipeline)
	}
	return cmd.runScheduled(pipeline)
}

func (cmd *RunCommand) runOnce(pipeline *services.PipelineService) error {
	report, err := pipeline.Run(context.Background(), cmd.Limit, cmd.PageSize)
	if err != nil {
		return err
	}

	fmt.Println("\n✅ Pipeline complete")
	fmt.Printf("   Documents fetched: %d\n", report.DocumentsFetched)
	fmt.Printf("   Pokemon loaded:    %d\n", report.PokemonLoaded)
	fmt.Printf("   Types loaded:      %d\n", report.TypesLoaded)
	fmt.Printf("   Links loaded:      %d\n", report.MembershipsLoaded)
	return nil
}

func (cmd *RunCommand) runScheduled(pipeline *services.PipelineService) error {
	sched := scheduler.NewPipelineScheduler(func() error {
		_, err := pipeline.Run(context.Background(), cmd.Limit, cmd.PageSize)
		return err
	})

	if err := sched.Start(cmd.Schedule); err != nil {
		return err
	}
	defer sched.Stop()

	fmt.Printf("⏰ Running on schedule %q, press Ctrl-C to stop\n", cmd.Schedule)
	if next := sched.NextRunTime(); next != nil {
		fmt.Printf("   Next run: %s\n", next.Format(time.RFC3339))
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	fmt.Println("\n👋 Shutting down")
	return nil
}
