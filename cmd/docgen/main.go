package main

import (
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/de-tools/report-desk/pkg/docgen"
	"github.com/de-tools/report-desk/pkg/services/config"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var settingsPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "docgen",
		Short: "Start the stand-in document generation service",
		RunE:  runServer,
	}

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

	settings, err := config.LoadDocgenSettings(settingsPath)
	if err != nil {
		return fmt.Errorf("failed to load docgen settings: %w", err)
	}

	opts := []docgen.Option{
		docgen.WithDownloadTokenTTL(time.Duration(settings.TokenTTLMinutes) * time.Minute),
	}
	if settings.OutputDir != "" {
		opts = append(opts, docgen.WithOutputDirectory(settings.OutputDir))
	}
	service := docgen.NewService(settings.BaseURL, opts...)

	router := docgen.ConfigureRouter(service, logger)

	host := os.Getenv("DOCGEN_HOST")
	port := os.Getenv("DOCGEN_PORT")

	if host == "" || port == "" {
		logger.Error().Msgf("Missing docgen configuration from .env file")
		os.Exit(1)
	}

	addr := net.JoinHostPort(host, port)
	logger.Info().Msgf("starting document service on %s", addr)

	return http.ListenAndServe(addr, router)
}
