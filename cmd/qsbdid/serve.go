/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/trustbloc/qsb-did-core-go/pkg/dochandler"
	"github.com/trustbloc/qsb-did-core-go/internal/log"
	"github.com/trustbloc/qsb-did-core-go/pkg/restapi/common"
	"github.com/trustbloc/qsb-did-core-go/pkg/restapi/diddochandler"
)

var logger = log.New("qsb-did-cmd")

const shutdownTimeout = 5 * time.Second

var serveCmd = &cli.Command{
	Name:  "serve",
	Usage: "Serve the REST API",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "addr", Value: ":8080", EnvVars: []string{"QSB_ADDR"}},
		&cli.StringFlag{Name: "base-path", Value: "", EnvVars: []string{"QSB_BASE_PATH"}},
		&cli.IntFlag{Name: "cache-size", Value: 1000, EnvVars: []string{"QSB_CACHE_SIZE"}},
		&cli.DurationFlag{Name: "cache-ttl", Value: time.Minute, EnvVars: []string{"QSB_CACHE_TTL"}},
	},
	Action: func(cmd *cli.Context) error {
		var opts []dochandler.Option
		if size := cmd.Int("cache-size"); size > 0 {
			opts = append(opts, dochandler.WithDocumentCache(size, cmd.Duration("cache-ttl")))
		}

		h, closeFn, err := newDocumentHandler(cmd, opts...)
		if err != nil {
			return err
		}

		defer closeFn()

		ctx, stop := signal.NotifyContext(cmd.Context, syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		srv := &http.Server{
			Addr:              cmd.String("addr"),
			Handler:           common.NewRouter(diddochandler.NewHandlers(cmd.String("base-path"), h)...),
			ReadHeaderTimeout: 10 * time.Second,
		}

		return serve(ctx, srv)
	},
}

func serve(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)

	go func() {
		logger.Info("Starting REST server", log.WithURIString(srv.Addr))

		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Stopping REST server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
