package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/bio2bel/ctd/internal/api"
)

var (
	serverHost string
	serverPort int
	serverCORS bool
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Serve the CTD database over HTTP",
	Long: `Server starts a JSON API over the local CTD database. Endpoints under
/api/v1 expose the chemical, disease, gene, and pathway vocabularies, the
chemical-gene interactions, full-text search, and database statistics.`,
	Example: `  bio2bel_ctd server
  bio2bel_ctd server --host 0.0.0.0 --port 9090`,
	RunE: runServer,
}

func init() {
	serverCmd.Flags().StringVar(&serverHost, "host", "", "Host to bind to (default from config)")
	serverCmd.Flags().IntVarP(&serverPort, "port", "p", 0, "Port to listen on (default from config)")
	serverCmd.Flags().BoolVar(&serverCORS, "cors", true, "Enable CORS headers")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		printError("%v", err)
		return err
	}

	host := cfg.Server.Host
	if serverHost != "" {
		host = serverHost
	}
	port := cfg.Server.Port
	if serverPort != 0 {
		port = serverPort
	}

	srv, err := api.NewServer(&api.Config{
		Host:         host,
		Port:         port,
		DatabasePath: cfg.Database.Path,
		EnableCORS:   serverCORS && cfg.Server.EnableCORS,
	})
	if err != nil {
		printError("%v", err)
		return err
	}

	// Shut down cleanly on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	printInfo("API listening on http://%s:%d", host, port)

	select {
	case err := <-errCh:
		printError("Server error: %v", err)
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		printError("Shutdown error: %v", err)
		return err
	}

	printSuccess("Server stopped")
	return nil
}
