package main

import (
	"fmt"
	"net"
	"net/http"
	"os"
	"os/user"

	"github.com/de-tools/report-desk/pkg/runtime/terminal/commands"
	"github.com/de-tools/report-desk/pkg/server"
	"github.com/de-tools/report-desk/pkg/services/config"
	"github.com/de-tools/report-desk/pkg/services/history"
	"github.com/de-tools/report-desk/pkg/services/request"
	"github.com/de-tools/report-desk/pkg/services/submission"
	"github.com/de-tools/report-desk/pkg/store/duckdb"
	duckdbsubmission "github.com/de-tools/report-desk/pkg/store/duckdb/submission"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	profilesPath string
	settingsPath string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Report Desk",
		RunE:  runServer,
	}

	usr, _ := user.Current()
	defaultPath := fmt.Sprintf("%s/.reportdeskcfg", usr.HomeDir)

	rootCmd.Flags().StringVarP(&profilesPath, "profiles", "p", defaultPath,
		"Path to the destination profiles file (default is $HOME/.reportdeskcfg)")
	rootCmd.Flags().StringVarP(&settingsPath, "config", "c", ".",
		"Directory containing config.yaml")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	settings, err := config.LoadServerSettings(settingsPath)
	if err != nil {
		return fmt.Errorf("failed to load server settings: %w", err)
	}

	registry, err := config.NewRegistry(profilesPath)
	if err != nil {
		return fmt.Errorf("failed to create profile registry: %w", err)
	}

	dest, err := registry.GetDestination(ctx, settings.Profile)
	if err != nil {
		return fmt.Errorf("failed to resolve profile %q: %w", settings.Profile, err)
	}

	db, err := duckdb.NewDB(duckdb.Settings{
		DbPath: settings.ArchivePath,
	})
	if err != nil {
		return fmt.Errorf("failed to create DuckDB instance: %w", err)
	}

	archive, err := duckdbsubmission.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create submission store: %w", err)
	}

	historyStore := history.NewStore()
	coordinator := submission.NewCoordinator(
		request.NewBuilder(),
		commands.NewSubmitter(dest),
		historyStore,
		submission.WithArchive(archive),
	)

	logger.Info().Msgf("Profiles found at `%s` successfully loaded.", profilesPath)
	profiles, _ := registry.GetProfiles(ctx)
	for _, profile := range profiles {
		logger.Info().Msgf("Name: `%s`, Type: `%s`", profile.Name, profile.Type)
	}
	logger.Info().Msgf("Submitting through profile `%s` (%s)", settings.Profile, dest.Mode)

	mux := server.ConfigureRouter(server.Config{
		Dependencies: server.Dependencies{
			Submitter: coordinator,
			History:   historyStore,
			Archive:   archive,
			Logger:    logger,
		},
	})

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")

	if host == "" || port == "" {
		logger.Error().Msgf("Missing server configuration from .env file")
		os.Exit(1)
	}

	addr := net.JoinHostPort(host, port)
	logger.Info().Msgf("starting server on %s", addr)

	return http.ListenAndServe(addr, mux)
}
