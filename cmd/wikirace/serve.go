package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wikirace/wikirace/internal/api"
)

var (
	serveHost       string
	servePort       int
	serveCORS       bool
	serveProduction bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the wikirace HTTP API server",
	Long: `Start the wikirace HTTP API server.

Every search runs live against en.wikipedia.org through the link cache
and fetcher; there is no precomputed graph to load.

Examples:
  wikirace serve
  wikirace serve --port 3000
  wikirace serve --host 0.0.0.0 --port 8080
  wikirace serve --production`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveHost, "host", "", "host to bind to (default from config)")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "port to listen on (default from config)")
	serveCmd.Flags().BoolVar(&serveCORS, "cors", true, "enable CORS")
	serveCmd.Flags().BoolVar(&serveProduction, "production", false, "enable production mode")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	eng, store, err := buildEngine()
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	metrics, err := buildMetricsSink()
	if err != nil {
		return fmt.Errorf("opening metrics sink: %w", err)
	}
	if closer, ok := metrics.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	serverCfg := api.Config{
		Host:            cfg.API.Host,
		Port:            cfg.API.Port,
		EnableCORS:      cfg.API.EnableCORS,
		CORSOrigins:     cfg.API.CORSOrigins,
		ReadTimeout:     cfg.API.ReadTimeout,
		WriteTimeout:    cfg.API.WriteTimeout,
		ShutdownTimeout: cfg.API.ShutdownTimeout,
		RateLimit:       cfg.API.RateLimit,
		RateBurst:       cfg.API.RateBurst,
		Production:      cfg.API.Production,
	}

	if serveHost != "" {
		serverCfg.Host = serveHost
	}
	if servePort != 0 {
		serverCfg.Port = servePort
	}
	if cmd.Flags().Changed("cors") {
		serverCfg.EnableCORS = serveCORS
	}
	if cmd.Flags().Changed("production") {
		serverCfg.Production = serveProduction
	}

	server := api.New(eng, metrics, store, serverCfg)

	fmt.Printf("Starting wikirace API server on http://%s:%d\n", serverCfg.Host, serverCfg.Port)
	fmt.Println("\nAvailable endpoints:")
	fmt.Println("  GET  /health                 - Health check")
	fmt.Println("  GET  /api/v1/path            - Find a path (start, finish, strategy)")
	fmt.Println("  POST /api/v1/path            - Find a path (JSON body)")
	fmt.Println("  GET  /api/v1/cache/stats     - Backing store statistics")
	fmt.Println("\nPress Ctrl+C to stop")

	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
