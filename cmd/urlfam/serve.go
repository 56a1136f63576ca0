package main

import (
	"errors"
	"net/http"

	"github.com/jetrtc/urlfam"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the URL builder over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.config.Addr
			}
			srv := &http.Server{
				Addr:         addr,
				Handler:      newHandler(a),
				ReadTimeout:  a.config.Timeout,
				WriteTimeout: a.config.Timeout,
			}
			ctx := cmd.Context()
			go func() {
				<-ctx.Done()
				srv.Close()
			}()
			a.Infof("Listening on %s", addr)
			err := srv.ListenAndServe()
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}

func newHandler(a *app) http.Handler {
	server := urlfam.NewServer(a.logger)
	if a.config.JSONIndent != "" {
		server.JSONIndent("", a.config.JSONIndent)
	}
	return urlfam.NewHandler(server)
}
