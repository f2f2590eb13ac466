package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/gapdebug/gapdebug/internal/config"
	"github.com/gapdebug/gapdebug/internal/extract"
	"github.com/gapdebug/gapdebug/internal/llm"
	"github.com/gapdebug/gapdebug/internal/server"
	"github.com/gapdebug/gapdebug/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the resume parsing, profile analysis, roadmap, and live context endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}
	if cfg.APIKey == "" {
		log.Printf("Warning: %s is not set; AI endpoints will fail until it is provided", config.EnvAPIKey)
	}

	if err := cfg.EnsureDataDir(); err != nil {
		return err
	}
	snapshots, err := store.Open(cfg.SnapshotPath())
	if err != nil {
		return err
	}
	defer snapshots.Close()

	liveCtx, err := store.NewContextStore(snapshots)
	if err != nil {
		return fmt.Errorf("failed to restore live context: %w", err)
	}

	srv := server.New(server.Config{
		Port:      cfg.Port,
		Client:    llm.NewOpenRouterClient(cfg.APIKey, cfg.AppURL),
		Models:    llm.ConfigFromEnv(),
		Extractor: extract.NewPopplerExtractor(),
		Context:   liveCtx,
		Profiles:  store.NewProfileCache(snapshots),
	})

	return srv.Start()
}
