/*
Cliente de terminal de la red social
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"social/client/api"
	"social/client/auth"
	"social/client/config"
	"social/client/mvc"
	"social/client/storage"
	"social/util"
	"social/util/logging"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	util.FailOnError(config.LoadDotEnv())

	cfg, err := config.Load()
	util.FailOnError(err)

	logout := false
	flag.StringVar(&cfg.APIURL, "api", cfg.APIURL, "URL del servidor")
	flag.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "directorio para el token y el log")
	flag.StringVar(&cfg.CACert, "ca-cert", cfg.CACert, "certificado PEM adicional para TLS (servidor de desarrollo)")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "nivel de log (debug, info, warn, error)")
	flag.BoolVar(&logout, "logout", false, "borra la sesión guardada y sale")
	flag.Parse()

	util.FailOnError(os.MkdirAll(cfg.DataDir, 0o700))

	// la terminal es de la interfaz; el log va a fichero
	logFile, err := logging.OpenFile(cfg.LogPath(), logging.ParseLevel(cfg.LogLevel))
	util.FailOnError(err)
	defer logFile.Close()
	logging.Info("cliente arrancado", "config", cfg.String())

	store := storage.Fallback(
		storage.NewSecureFileStore(cfg.DataDir, cfg.Passphrase),
		storage.NewFileStore(cfg.DataDir),
	)
	opts := []api.Option{api.WithTimeout(cfg.Timeout), api.WithLogger(logging.Logger())}
	if cfg.CACert != "" {
		httpClient, err := api.TLSClient(cfg.CACert)
		util.FailOnError(err)
		opts = append(opts, api.WithHTTPClient(httpClient))
	}
	client := api.New(cfg.APIURL, opts...)
	session := auth.NewSession(client, store)

	if logout {
		if err := session.Logout(context.Background()); err != nil {
			fmt.Fprintln(os.Stderr, "logout:", err)
			os.Exit(1)
		}
		fmt.Println("Sesión cerrada")
		return
	}

	app := mvc.NewApp(client, session)
	if _, err := tea.NewProgram(mvc.InitialRootModel(app), tea.WithAltScreen()).Run(); err != nil {
		logging.Error("error en la interfaz", "err", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
