// edgedeskd is the EdgeDesk analytics daemon. It keeps a session with
// the EdgeDesk API, polls the recommendation, tracking and DFS boards,
// and serves the loaded state over a local HTTP and WebSocket API.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/edgedesk/edgedesk-go/pkg/api"
	"github.com/edgedesk/edgedesk-go/pkg/config"
	"github.com/edgedesk/edgedesk-go/pkg/dashboard"
	"github.com/edgedesk/edgedesk-go/pkg/metrics"
	"github.com/edgedesk/edgedesk-go/pkg/session"
	"github.com/edgedesk/edgedesk-go/pkg/stream"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var (
	// Flags override the environment.
	httpAddr  = flag.String("http", "", "HTTP server address for status API")
	clientID  = flag.String("client", "", "Client profile ID to run boards for")
	pollEvery = flag.Duration("poll", 0, "Board poll interval")
	verbose   = flag.Bool("verbose", false, "Verbose logging")
)

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		errLog := zerolog.New(os.Stderr)
		errLog.Fatal().Err(err).Msg("load config")
	}
	if *httpAddr != "" {
		cfg.HTTPAddr = *httpAddr
	}
	if *clientID != "" {
		cfg.ClientID = *clientID
	}
	if *pollEvery > 0 {
		cfg.PollEvery = *pollEvery
	}

	log := newLogger(cfg.LogLevel, *verbose)
	log.Info().Str("http", cfg.HTTPAddr).Dur("poll", cfg.PollEvery).Msg("starting edgedeskd")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	d, err := newDaemon(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize daemon")
	}

	d.refresher.OnStage(func(result *dashboard.StageResult) {
		if *verbose || !result.Success {
			evt := log.Info()
			if !result.Success {
				evt = log.Warn().Str("error", result.Error)
			}
			evt.Str("board", result.Board).Dur("took", result.Duration).Msg("board refreshed")
		}
		d.hub.BroadcastRefresh(result)
		if result.Board == d.tracking.Name() && result.Success {
			d.hub.BroadcastStats(d.tracking.Summary())
		}
		if result.Board == d.recs.Name() && result.Success {
			d.hub.BroadcastRecommendations(d.recs.Visible())
		}
	})
	d.refresher.OnError(func(err error) {
		log.Error().Err(err).Msg("refresh error")
		d.hub.BroadcastError(err, "refresher")
	})

	d.buildServer()
	go d.serveHTTP(log)

	if err := d.refresher.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("start refresher")
	}

	log.Info().Str("client", cfg.ClientID).Strs("sports", cfg.SportList()).Msg("daemon running")

	<-sigCh
	log.Info().Msg("shutting down")

	d.refresher.Stop()
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = d.server.Shutdown(shutdownCtx)

	summary := d.tracking.Summary()
	log.Info().
		Str("pnl", summary.ProfitLoss.StringFixed(2)).
		Int("bets", summary.TotalBets).
		Str("win_rate", summary.WinRate.Mul(decimal.NewFromInt(100)).StringFixed(1)+"%").
		Msg("final stats")
}

func newLogger(level string, verbose bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	if verbose && lvl > zerolog.DebugLevel {
		lvl = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(lvl).
		With().Timestamp().Logger()
}

type daemon struct {
	cfg       *config.Config
	client    *api.Client
	metrics   *metrics.ClientMetrics
	hub       *stream.Hub
	tracking  *dashboard.TrackingBoard
	recs      *dashboard.RecommendationBoard
	dfs       *dashboard.DFSBoard
	refresher *dashboard.Refresher
	server    *http.Server
}

func newDaemon(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*daemon, error) {
	d := &daemon{cfg: cfg, metrics: metrics.NewClientMetrics()}

	d.hub = stream.NewHub(log.With().Str("component", "stream").Logger(), d.metrics)
	go d.hub.Run()

	sessionPath := cfg.SessionPath
	if sessionPath == "" {
		sessionPath = session.DefaultPath()
	}
	store, err := session.NewFileStore(sessionPath)
	if err != nil {
		return nil, err
	}

	d.client = api.NewClient(
		api.WithBaseURL(cfg.BaseURL),
		api.WithRateLimit(cfg.RateLimit, 5),
		api.WithSessionStore(store),
		api.WithMetrics(d.metrics),
	)

	if err := d.authenticate(ctx, log); err != nil {
		return nil, err
	}

	clientID := cfg.ClientID
	if clientID == "" {
		if id := store.Identity(); id != nil {
			clientID = id.ClientID
		}
	}

	d.tracking = dashboard.NewTrackingBoard(d.client,
		dashboard.WithTrackingMetrics(d.metrics),
		dashboard.WithStakeGuard(dashboard.NewStakeGuard(nil)),
	)
	d.recs = dashboard.NewRecommendationBoard(d.client, clientID, 50, d.metrics)
	d.dfs = dashboard.NewDFSBoard(d.client, clientID, cfg.DFSSport, cfg.DFSPlatform)

	d.refresher = dashboard.NewRefresher(cfg.PollEvery, d.metrics, d.recs, d.tracking, d.dfs)

	return d, nil
}

// authenticate reuses the stored session when it is still good, falls
// back to a token refresh, and logs in from scratch last.
func (d *daemon) authenticate(ctx context.Context, log zerolog.Logger) error {
	store := d.client.Sessions()

	if d.client.HasToken() && !session.TokenExpiresWithin(store, 2*time.Minute) {
		log.Info().Msg("using stored session")
		return nil
	}

	if store.RefreshToken() != "" {
		if _, err := d.client.Refresh(ctx); err == nil {
			log.Info().Msg("session refreshed")
			return nil
		}
		log.Warn().Msg("session refresh failed, logging in")
	}

	if d.cfg.Email == "" || d.cfg.Password == "" {
		return errNoCredentials
	}
	resp, err := d.client.Login(ctx, &api.LoginRequest{
		EmailOrUsername: d.cfg.Email,
		Password:        d.cfg.Password,
	})
	if err != nil {
		return err
	}
	if resp.Requires2FA {
		return errNeeds2FA
	}
	log.Info().Msg("logged in")
	return nil
}

var (
	errNoCredentials = &configError{"no stored session and no credentials configured"}
	errNeeds2FA      = &configError{"account requires a TOTP code, log in interactively first"}
)

type configError struct{ msg string }

func (e *configError) Error() string { return e.msg }

func (d *daemon) buildServer() {
	mux := http.NewServeMux()

	writeJSON := func(w http.ResponseWriter, v interface{}) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(v)
	}

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("/summary", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, d.tracking.Summary())
	})

	mux.HandleFunc("/stats", func(w http.ResponseWriter, r *http.Request) {
		stats := d.tracking.Stats()
		if stats == nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			writeJSON(w, map[string]string{"error": "not loaded yet"})
			return
		}
		writeJSON(w, stats)
	})

	mux.HandleFunc("/recommendations", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, d.recs.Visible())
	})

	mux.HandleFunc("/bets", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, d.tracking.Bets())
	})

	mux.HandleFunc("/leaderboard", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, d.tracking.Leaderboard())
	})

	mux.HandleFunc("/lineups", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, d.dfs.Lineups())
	})

	mux.Handle("/metrics", promhttp.HandlerFor(d.metrics.Registry(), promhttp.HandlerOpts{}))

	mux.HandleFunc("/ws", d.hub.ServeWS)

	d.server = &http.Server{
		Addr:         d.cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
}

func (d *daemon) serveHTTP(log zerolog.Logger) {
	log.Info().Str("addr", d.cfg.HTTPAddr).Msg("http server listening")
	if err := d.server.ListenAndServe(); err != http.ErrServerClosed {
		log.Error().Err(err).Msg("http server")
	}
}
