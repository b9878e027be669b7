package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/GAJENDER439/Low-Quality-Tester/config"
	"github.com/GAJENDER439/Low-Quality-Tester/internal/api"
	"github.com/GAJENDER439/Low-Quality-Tester/internal/classify"
	"github.com/GAJENDER439/Low-Quality-Tester/internal/fetch"
	"github.com/GAJENDER439/Low-Quality-Tester/internal/slack"
	"github.com/GAJENDER439/Low-Quality-Tester/internal/trust"
)

// serveCmd is the cobra command that starts the classifier API server
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "start the lqtester api server",
	Run: func(cmd *cobra.Command, _ []string) {
		err := serve(cmd.Context())
		cobra.CheckErr(err)
	},
}

// init registers the serve command on the root command
func init() {
	rootCmd.AddCommand(serveCmd)
}

// serve initializes dependencies and starts the API server
func serve(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	routerCfg := api.RouterConfig{
		Analyzer:    setupPipeline(cfg),
		MaxBodySize: cfg.Server.MaxBodySize,
		Timeout:     cfg.Server.RequestTimeout,
		MaxItems:    cfg.Bulk.MaxItems,
		Workers:     cfg.Bulk.Workers,
	}

	if slackClient := setupSlack(cfg); slackClient != nil {
		routerCfg.Notifier = slackClient
	}

	srv := &http.Server{
		Addr:         cfg.Server.Listen,
		Handler:      api.NewRouter(routerCfg),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownGracePeriod)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown error")
		}
	}()

	log.Info().Str("listen", cfg.Server.Listen).Msg("starting lqtester service")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}

	return nil
}

// loadConfig loads the config file named by the --config flag and applies the logging flags
func loadConfig() (*config.Config, error) {
	cfgPath := k.String("config")

	cfg, err := config.Load(&cfgPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	debug, pretty := k.Bool("debug"), k.Bool("pretty")

	if cfg.Server.Debug != debug || cfg.Server.Pretty != pretty {
		cfg.Server.Debug = cfg.Server.Debug || debug
		cfg.Server.Pretty = cfg.Server.Pretty || pretty

		setupLogging(cfg.Server.Debug, cfg.Server.Pretty)
	}

	return cfg, nil
}

// setupPipeline builds the classification pipeline from config
func setupPipeline(cfg *config.Config) *classify.Pipeline {
	registry := trust.Default()
	if len(cfg.Trust.Domains) > 0 {
		registry = trust.New(cfg.Trust.Domains...)
	}

	log.Debug().Int("trusted_domains", registry.Len()).Msg("trust registry configured")

	fetcher := fetch.New(
		fetch.WithTimeout(cfg.Fetcher.Timeout),
		fetch.WithMaxBodySize(cfg.Fetcher.MaxBodySize),
		fetch.WithUserAgent(cfg.Fetcher.UserAgent),
	)

	return classify.New(registry, fetcher)
}

// setupSlack initializes the Slack webhook client from config, returning nil when unconfigured
func setupSlack(cfg *config.Config) *slack.Client {
	if cfg.Slack.WebhookURL == "" {
		log.Info().Msg("slack notifications not configured, skipping")
		return nil
	}

	client, err := slack.New(
		cfg.Slack.WebhookURL,
		slack.WithRequestTimeout(cfg.Slack.RequestTimeout),
	)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize slack client")
		return nil
	}

	log.Info().Msg("slack notifications configured")

	return client
}
