package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/unimatch/internal/api"
	"github.com/vijay-prabhu/unimatch/internal/geo"
	"github.com/vijay-prabhu/unimatch/internal/logging"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API server.

Endpoints:
  GET /api/v1/health
  GET /api/v1/search?grade=2.1&admissionType=subject&region=seoul
  GET /api/v1/universities
  GET /api/v1/universities/{id}
  GET /api/v1/regions
  GET /metrics`,
	RunE: runServe,
}

var serveAddr string

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, src, err := openSource()
	if err != nil {
		return err
	}
	defer src.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	geocoder := geo.NewStaticGeocoder(nil)
	if all, err := src.FetchAllUniversities(ctx); err != nil {
		logging.Warn().Err(err).Str("backend", src.Backend).Msg("source unavailable at startup, geocoding disabled")
	} else {
		geocoder = geo.NewStaticGeocoder(all)
	}

	handler := api.NewHandler(src, newSearcher(cfg, src), geocoder, cfg.Search.PerPage)
	router := api.NewRouter(handler, api.RouterConfig{
		CORSOrigins:       cfg.Server.CORSOrigins,
		RateLimitRequests: cfg.Server.RateLimitRequests,
		RateLimitWindow:   cfg.Server.Window(),
	})

	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	logging.Info().
		Str("backend", src.Backend).
		Int("geocoded_addresses", geocoder.Len()).
		Msg("starting unimatch api")

	return api.NewServer(addr, router).Run(ctx)
}

