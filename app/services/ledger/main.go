package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ardanlabs/conf/v3"
	"github.com/ormond/healthchain/app/services/ledger/handlers"
	"github.com/ormond/healthchain/business/core/ledger"
	"github.com/ormond/healthchain/business/core/record"
	"github.com/ormond/healthchain/business/core/record/stores/recorddb"
	"github.com/ormond/healthchain/business/sys/metrics"
	"github.com/ormond/healthchain/foundation/blockchain/chain"
	"github.com/ormond/healthchain/foundation/events"
	"github.com/ormond/healthchain/foundation/logger"
	"go.uber.org/zap"
)

// build is the git version of this program. It is set using build flags in the makefile.
var build = "develop"

func main() {

	// Construct the application logger.
	log, err := logger.New("LEDGER")
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer log.Sync()

	// Perform the startup and shutdown sequence.
	if err := run(log); err != nil {
		log.Errorw("startup", "ERROR", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(log *zap.SugaredLogger) error {

	// =========================================================================
	// Configuration

	cfg := struct {
		conf.Version
		Web struct {
			ReadTimeout     time.Duration `conf:"default:5s"`
			WriteTimeout    time.Duration `conf:"default:30s"`
			IdleTimeout     time.Duration `conf:"default:120s"`
			ShutdownTimeout time.Duration `conf:"default:20s"`
			DebugHost       string        `conf:"default:0.0.0.0:7080"`
			APIHost         string        `conf:"default:0.0.0.0:8080"`
			CORSOrigin      string        `conf:"default:*"`
		}
		Chain struct {
			Difficulty  int           `conf:"default:2"`
			MaxAttempts uint64        `conf:"default:0"`
			MineTimeout time.Duration `conf:"default:10s"`
		}
		Records struct {
			DBPath string `conf:"default:zblock/records"`
			Seed   bool   `conf:"default:true"`
		}
	}{
		Version: conf.Version{
			Build: build,
			Desc:  "Ormond Hospitals record ledger",
		},
	}

	// Parse will set the defaults and then look for any overriding values
	// in environment variables and command line flags.
	const prefix = "LEDGER"
	help, err := conf.Parse(prefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	// =========================================================================
	// App Starting

	log.Infow("starting service", "version", build)
	defer log.Infow("shutdown complete")

	// Display the current configuration to the logs.
	out, err := conf.String(&cfg)
	if err != nil {
		return fmt.Errorf("generating config for output: %w", err)
	}
	log.Infow("startup", "config", out)

	// =========================================================================
	// Record Store Support

	// An empty path keeps every record in memory.
	var store *recorddb.Store
	switch cfg.Records.DBPath {
	case "":
		store, err = recorddb.NewMemory(log)
	default:
		store, err = recorddb.Open(log, cfg.Records.DBPath)
	}
	if err != nil {
		return fmt.Errorf("opening record store: %w", err)
	}
	defer func() {
		log.Infow("shutdown", "status", "closing record store")
		store.Close()
	}()

	recordCore := record.NewCore(log, store)

	// =========================================================================
	// Blockchain Support

	// The blockchain packages accept a function of this signature to allow the
	// application to log. Messages meant for the dashboard carry the viewer
	// prefix and are sent to any websocket client connected through the
	// events package.
	evts := events.New()
	ev := func(v string, args ...any) {
		s := fmt.Sprintf(v, args...)
		log.Infow(s, "traceid", "00000000-0000-0000-0000-000000000000")
		if strings.HasPrefix(s, "viewer:") {
			evts.Send(s)
		}
	}

	ldg, err := ledger.New(ledger.Config{
		Records:     recordCore,
		Difficulty:  cfg.Chain.Difficulty,
		MaxAttempts: cfg.Chain.MaxAttempts,
		MineTimeout: cfg.Chain.MineTimeout,
		EvHandler:   ev,
	})
	if err != nil {
		return fmt.Errorf("constructing ledger: %w", err)
	}

	if cfg.Records.Seed {
		n, err := seed(context.Background(), recordCore, ldg)
		if err != nil {
			return fmt.Errorf("seeding records: %w", err)
		}
		log.Infow("startup", "status", "seeded records", "records", n)
	}

	blocks := ldg.Blocks()
	metrics.SetBlocks(len(blocks))
	log.Infow("startup", "status", "blockchain ready", "blocks", len(blocks), "difficulty", cfg.Chain.Difficulty,
		"valid", chain.Verify(blocks))

	// =========================================================================
	// Start Debug Service

	log.Infow("startup", "status", "debug v1 router started", "host", cfg.Web.DebugHost)

	// Construct the mux for the debug calls.
	debugMux := handlers.DebugMux(build, log, ldg)

	// Start the service listening for debug requests.
	// Not concerned with shutting this down with load shedding.
	go func() {
		if err := http.ListenAndServe(cfg.Web.DebugHost, debugMux); err != nil {
			log.Errorw("shutdown", "status", "debug v1 router closed", "host", cfg.Web.DebugHost, "ERROR", err)
		}
	}()

	// =========================================================================
	// Service Start/Stop Support

	// Make a channel to listen for an interrupt or terminate signal from the OS.
	// Use a buffered channel because the signal package requires it.
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	// Make a channel to listen for errors coming from the listener. Use a
	// buffered channel so the goroutine can exit if we don't collect this error.
	serverErrors := make(chan error, 1)

	// =========================================================================
	// Start API Service

	log.Infow("startup", "status", "initializing V1 API support")

	// Construct the mux for the API calls.
	apiMux := handlers.APIMux(handlers.APIMuxConfig{
		Shutdown:   shutdown,
		Log:        log,
		Ledger:     ldg,
		Record:     recordCore,
		Evts:       evts,
		CORSOrigin: cfg.Web.CORSOrigin,
	})

	// Construct a server to service the requests against the mux.
	api := http.Server{
		Addr:         cfg.Web.APIHost,
		Handler:      apiMux,
		ReadTimeout:  cfg.Web.ReadTimeout,
		WriteTimeout: cfg.Web.WriteTimeout,
		IdleTimeout:  cfg.Web.IdleTimeout,
		ErrorLog:     zap.NewStdLog(log.Desugar()),
	}

	// Start the service listening for api requests.
	go func() {
		log.Infow("startup", "status", "api router started", "host", api.Addr)
		serverErrors <- api.ListenAndServe()
	}()

	// =========================================================================
	// Shutdown

	// Blocking main and waiting for shutdown.
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.Infow("shutdown", "status", "shutdown started", "signal", sig)
		defer log.Infow("shutdown", "status", "shutdown complete", "signal", sig)

		// Release any web sockets that are currently active.
		log.Infow("shutdown", "status", "shutdown web socket channels")
		evts.Shutdown()

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Web.ShutdownTimeout)
		defer cancel()

		// Asking listener to shut down and shed load.
		if err := api.Shutdown(ctx); err != nil {
			api.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}
