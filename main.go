package main

import (
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/dayfinder/cliparse"
	"github.com/danielhkuo/dayfinder/middleware"
	"github.com/danielhkuo/dayfinder/notify"
	"github.com/danielhkuo/dayfinder/router"
	"github.com/danielhkuo/dayfinder/store"
)

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	if cfg.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	// Open the store: connect, ensure schema, load all events.
	// A failed load is fatal.
	st, err := store.Open(cfg.DriverName(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("store startup failed", "error", err)
		os.Exit(1)
	}
	defer st.Close()
	slog.Info("Store ready", "events", st.Len())

	// Create router
	notifier := notify.NewTelegram(cfg.BotToken)
	mux := router.NewRouter(st, cfg, notifier)

	// Create server. The Mini App frontend runs in a browser, so the whole
	// API sits behind CORS.
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
