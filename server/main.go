// Servidor de desarrollo: implementa la API REST en memoria para poder usar y
// probar el cliente sin el backend real.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"social/server/config"
	"social/server/middleware"
	"social/server/repository"
	"social/server/router"
	"social/util"
	"social/util/logging"
)

func main() {
	util.FailOnError(config.LoadDotEnv())

	cfg, err := config.LoadWithDefaults()
	util.FailOnError(err)

	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "dirección de escucha")
	flag.StringVar(&cfg.TLSCert, "cert", cfg.TLSCert, "certificado TLS")
	flag.StringVar(&cfg.TLSKey, "key", cfg.TLSKey, "clave privada TLS")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "nivel de log (debug, info, warn, error)")
	flag.Parse()

	logging.Init(os.Stderr, logging.ParseLevel(cfg.LogLevel))

	db := repository.NewDatabase()
	tokens := middleware.NewTokens(cfg.JWTSecret, cfg.TokenTTL)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router.New(db, tokens),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logging.Info("servidor arrancado", "config", cfg.String())
		var err error
		if cfg.TLS() {
			err = srv.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("error del servidor", "err", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logging.Info("apagando el servidor")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("error al apagar", "err", err)
	}
}
