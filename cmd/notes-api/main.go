// Command notes-api serves a CRUD API over a MongoDB notes collection.
package main

import (
	"context"
	_ "embed"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/drblury/docweaver/config"
	"github.com/drblury/docweaver/info"
	"github.com/drblury/docweaver/query"
	"github.com/drblury/docweaver/responder"
	"github.com/drblury/docweaver/router"
)

//go:embed openapi.json
var openapiDoc []byte

var version = "dev"

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger := cfg.Log.Logger()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn := query.NewConnection(query.WithConnectionLogger(logger))
	connectCtx, cancel := context.WithTimeout(ctx, cfg.Mongo.ConnectTimeout)
	err = conn.Connect(connectCtx, cfg.Mongo.URI, cfg.Mongo.Database)
	cancel()
	if err != nil {
		return err
	}
	defer func() {
		if err := conn.Disconnect(context.Background()); err != nil {
			logger.Error("disconnect failed", "error", err)
		}
	}()

	handler, err := newHandler(cfg, conn, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{Addr: cfg.Server.Addr, Handler: handler}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Server.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newHandler(cfg config.Config, conn *query.Connection, logger *slog.Logger) (http.Handler, error) {
	swagger, err := openapi3.NewLoader().LoadFromData(openapiDoc)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}

	resp := responder.NewResponder(responder.WithSubject("Note"), responder.WithLogger(logger))
	notes := newNoteAPI(conn, resp, logger)

	infoHandler := info.NewInfoHandler(
		info.WithInfoResponder(responder.NewResponder(responder.WithLogger(logger))),
		info.WithInfoProvider(func() any {
			return map[string]string{"service": "notes-api", "version": version}
		}),
		info.WithSwaggerProvider(func() ([]byte, error) { return openapiDoc, nil }),
		info.WithMongoReadiness(conn),
	)

	mux := http.NewServeMux()
	infoHandler.Register(mux, "/info")
	mux.Handle("/", router.New(
		notes.routes(),
		router.WithConfig(cfg.Router),
		router.WithLogger(logger),
		router.WithResponder(resp),
		router.WithSwagger(swagger),
	))
	return mux, nil
}
