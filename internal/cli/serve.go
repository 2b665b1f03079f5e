package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/infolens/infolens/internal/model"
	"github.com/infolens/infolens/internal/pipeline"
	"github.com/infolens/infolens/internal/server"
	"github.com/infolens/infolens/internal/store"
)

var (
	servePort int
	dbPath    string
	noPersist bool
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the InfoLens HTTP API server",
	Long: `Serve exposes the forensic pipeline over HTTP:

  POST /api/forensics/analyze   {"url": ...} or {"text": ...}
  GET  /api/forensics/history   recent persisted analyses
  GET  /healthz

Completed analyses are persisted to a local SQLite database.

Example:
  infolens serve
  infolens serve --port 9000 --db ./forensics.db`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVar(&servePort, "port", 8000, "HTTP listen port")
	serveCmd.Flags().StringVar(&dbPath, "db", "infolens.db", "SQLite database path for analysis history")
	serveCmd.Flags().BoolVar(&noPersist, "no-persist", false, "disable analysis history persistence")
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err == nil && verbose {
		fmt.Fprintln(os.Stderr, "Loaded .env")
	}

	cfg := model.DefaultConfig()
	cfg.Server.Port = servePort
	cfg.Server.DatabasePath = dbPath
	cfg.Output.Verbose = verbose

	if port := os.Getenv("PORT"); port != "" {
		if parsed, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = parsed
		}
	}
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		cfg.Server.AllowedOrigins = splitOrigins(origins)
	}

	var st *store.Store
	if !noPersist {
		var err error
		st, err = store.Open(cfg.Server.DatabasePath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()
	}

	p := pipeline.New(cfg)
	srv := server.New(p, st, cfg)
	r := srv.SetupRouter()

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	fmt.Fprintf(os.Stderr, "InfoLens API listening on %s\n", addr)
	return r.Run(addr)
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			origins = append(origins, part)
		}
	}
	return origins
}
