package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/me/tijara/internal/authn"
	"github.com/me/tijara/internal/config"
	"github.com/me/tijara/internal/credstore"
	"github.com/me/tijara/internal/logging"
	"github.com/me/tijara/internal/notify"
	"github.com/me/tijara/internal/session"
	"github.com/me/tijara/internal/ui"
	"github.com/me/tijara/pkg/platform"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()

	clientCfg, err := config.LoadClient(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	gwCfg, err := config.LoadGateway(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	flag.StringVar(&gwCfg.Addr, "addr", gwCfg.Addr, "Listen address")
	flag.StringVar(&clientCfg.APIURL, "server", clientCfg.APIURL, "Backend API address")
	flag.StringVar(&clientCfg.DBPath, "db", clientCfg.DBPath, "Credential store path (default ~/.tijara/credentials.db)")
	flag.StringVar(&clientCfg.LogLevel, "log-level", clientCfg.LogLevel, "Log level (debug, info, warn, error)")
	flag.StringVar(&clientCfg.LogFormat, "log-format", clientCfg.LogFormat, "Log format (text, json)")
	flag.BoolVar(&clientCfg.DemoLogin, "demo", clientCfg.DemoLogin, "Enable demo-account fallback when the backend is unreachable")
	debug := flag.Bool("debug", false, "Shorthand for --log-level=debug")
	flag.Parse()

	if *debug {
		clientCfg.LogLevel = "debug"
	}

	logger := logging.New(logging.ParseLevel(clientCfg.LogLevel), clientCfg.LogFormat)

	dbPath := clientCfg.DBPath
	if dbPath == "" {
		dbPath, err = config.DefaultDBPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "resolve credential store path: %v\n", err)
			os.Exit(1)
		}
	}

	store, err := credstore.NewSQLiteStore(dbPath, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open credential store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()
	logger.Info("credential store ready", "path", dbPath)

	client := platform.NewClient(platform.Config{
		BaseURL:     clientCfg.APIURL,
		Timeout:     clientCfg.Timeout,
		TokenSource: credstore.TokenReader{Store: store},
	}, logger)

	var provider authn.Provider = &authn.RemoteProvider{Client: client}
	if clientCfg.DemoLogin {
		provider = authn.NewChain(provider, authn.DemoProvider{})
		logger.Info("demo login fallback enabled")
	}

	sess := session.NewManager(store, provider, notify.LogNotifier{Logger: logger}, nil, logger, session.Options{
		ValidateOnInit: clientCfg.ValidateOnInit,
	})

	client.SetHooks(platform.Hooks{
		Unauthorized: sess.HandleUnauthorized,
		ServerError: func(status int) {
			logger.Warn("backend server error", "status", status)
		},
		NetworkError: func(err error) {
			logger.Warn("backend unreachable", "error", err)
		},
	})

	// Restore a persisted session so the gateway starts logged in when
	// credentials survive a restart.
	if err := sess.Initialize(ctx); err != nil {
		logger.Warn("session restore failed", "error", err)
	}

	bus := notify.NewBus()
	webUI := ui.New(sess, client, bus, logger, ui.Config{Secure: gwCfg.SecureCookies})

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	webUI.RegisterRoutes(r)

	httpServer := &http.Server{
		Addr:    gwCfg.Addr,
		Handler: r,
	}

	// Graceful shutdown
	runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("gateway starting", "addr", gwCfg.Addr, "backend", clientCfg.APIURL)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("gateway failed", "error", err)
			os.Exit(1)
		}
	}()

	<-runCtx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(os.Stderr, "shutdown error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("gateway stopped")
}
