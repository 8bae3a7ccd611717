package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/isNotOkay/universal-query-playground-api/config"
	"github.com/isNotOkay/universal-query-playground-api/dispatch"
	"github.com/isNotOkay/universal-query-playground-api/query"
	"github.com/isNotOkay/universal-query-playground-api/relational"
	"github.com/isNotOkay/universal-query-playground-api/render"
	"github.com/isNotOkay/universal-query-playground-api/server"
	"github.com/isNotOkay/universal-query-playground-api/sheet"
	"github.com/isNotOkay/universal-query-playground-api/tabular"
)

var fQuery = flag.String(
	"query",
	"",
	"path to a query request JSON file; executes it once and prints the result instead of serving HTTP",
)

func oops(stage string, err error) {
	fmt.Fprintf(os.Stderr, "ERROR [%s] %s\n", stage, err)
	os.Exit(1)
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.Log.Level {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Log.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	log := slog.New(handler)
	slog.SetDefault(log)
	return log
}

// driverName picks the database/sql driver registration name for a dialect.
func driverName(dialect int) string {
	if dialect == relational.DialectPostgres {
		return "pgx"
	}
	return "sqlite"
}

// buildDispatcher wires whichever engines the configuration enables. An
// engine left nil is reported as unconfigured at request time, not at boot.
func buildDispatcher(cfg *config.Config) (*dispatch.Dispatcher, *sheet.XlsxStore, error) {
	d := &dispatch.Dispatcher{}

	var store *sheet.XlsxStore
	if cfg.Workbook.Path != "" {
		store = sheet.NewXlsxStore(cfg.Workbook.Path)
		d.Tabular = tabular.New(store)
	}

	if cfg.Database.DSN != "" {
		dialect, err := relational.ParseDialect(cfg.Database.Driver)
		if err != nil {
			return nil, nil, err
		}
		db, err := sql.Open(driverName(dialect), cfg.Database.DSN)
		if err != nil {
			return nil, nil, err
		}
		d.Relational = relational.New(db, dialect)
	}

	return d, store, nil
}

func runOnce(d *dispatch.Dispatcher, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	req := &query.Request{}
	if err := json.Unmarshal(data, req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	res, err := d.Execute(ctx, req)
	if err != nil {
		return err
	}
	render.Table(os.Stdout, res.Rows)
	if res.Warning != "" {
		fmt.Fprintf(os.Stderr, "warning: %s\n", res.Warning)
	}
	return nil
}

func serve(cfg *config.Config, d *dispatch.Dispatcher, store *sheet.XlsxStore, log *slog.Logger) error {
	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      server.New(d, store, log).Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", cfg.Server.Addr)
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		log.Info("shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		oops("config", err)
	}
	log := newLogger(cfg)

	d, store, err := buildDispatcher(cfg)
	if err != nil {
		oops("setup", err)
	}

	if *fQuery != "" {
		if err := runOnce(d, *fQuery); err != nil {
			oops("query", err)
		}
		return
	}

	if err := serve(cfg, d, store, log); err != nil && !errors.Is(err, http.ErrServerClosed) {
		oops("serve", err)
	}
}
