package main

import (
	"fmt"
	"os"
	"os/user"

	"github.com/de-tools/report-desk/pkg/runtime/terminal"
	"github.com/de-tools/report-desk/pkg/services/config"
	"github.com/de-tools/report-desk/pkg/store/duckdb"
	duckdbsubmission "github.com/de-tools/report-desk/pkg/store/duckdb/submission"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	usr, _ := user.Current()
	profilesPath := fmt.Sprintf("%s/.reportdeskcfg", usr.HomeDir)
	if fromEnv := os.Getenv("REPORTDESK_PROFILES"); fromEnv != "" {
		profilesPath = fromEnv
	}

	registry, err := config.NewRegistry(profilesPath)
	if err != nil {
		return fmt.Errorf("failed to create profile registry: %w", err)
	}

	settings, err := config.LoadServerSettings(".")
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	db, err := duckdb.NewDB(duckdb.Settings{DbPath: settings.ArchivePath})
	if err != nil {
		return fmt.Errorf("failed to create DuckDB instance: %w", err)
	}
	defer db.Close()

	archive, err := duckdbsubmission.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create submission store: %w", err)
	}

	cli := terminal.NewCLI(terminal.Options{
		Registry: registry,
		Archive:  archive,
		Output:   os.Stdout,
	})

	return cli.Execute()
}
