/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v2"

	"github.com/trustbloc/qsb-did-core-go/pkg/log"
)

// Version is set at build time.
var Version = "dev"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "qsbdid",
		Usage: "QSB DID registry tools",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "node",
				Usage:   "websocket RPC endpoint of a QSB node",
				Value:   "ws://127.0.0.1:9944",
				EnvVars: []string{"QSB_NODE_URL"},
			},
			&cli.StringFlag{
				Name:    "log-spec",
				Usage:   "log levels, for example qsb-did-rpc=debug:info",
				Value:   "info",
				EnvVars: []string{"QSB_LOG_SPEC"},
			},
		},
		Before: func(cmd *cli.Context) error {
			return log.SetSpec(cmd.String("log-spec"))
		},
		Commands: []*cli.Command{
			normalizeCmd,
			resolveCmd,
			payloadCmd,
			signatureCmd,
			schemaIDCmd,
			schemaCmd,
			serveCmd,
		},
		Version: Version,
	}
}
