/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/trustbloc/qsb-did-core-go/pkg/api/operation"
	"github.com/trustbloc/qsb-did-core-go/pkg/did"
	"github.com/trustbloc/qsb-did-core-go/pkg/dochandler"
	"github.com/trustbloc/qsb-did-core-go/pkg/encoder"
	"github.com/trustbloc/qsb-did-core-go/pkg/payload"
	"github.com/trustbloc/qsb-did-core-go/pkg/rpc"
	"github.com/trustbloc/qsb-did-core-go/pkg/schema"
	"github.com/trustbloc/qsb-did-core-go/pkg/signature"
	"github.com/trustbloc/qsb-did-core-go/pkg/util/edsigner"
)

var errMissingArg = errors.New("missing argument")

var normalizeCmd = &cli.Command{
	Name:      "normalize",
	Usage:     "Print the canonical form of a DID",
	ArgsUsage: "<did>",
	Action: func(cmd *cli.Context) error {
		d, err := did.Normalize(cmd.Args().First())
		if err != nil {
			return err
		}

		return writeJSON(cmd, d)
	},
}

var resolveCmd = &cli.Command{
	Name:      "resolve",
	Usage:     "Resolve the DID document of a DID",
	ArgsUsage: "<did>",
	Action: func(cmd *cli.Context) error {
		h, closeFn, err := newDocumentHandler(cmd)
		if err != nil {
			return err
		}

		defer closeFn()

		result, err := h.ResolveDocument(cmd.Context, cmd.Args().First())
		if err != nil {
			return err
		}

		return writeJSON(cmd, result)
	},
}

type payloadOutput struct {
	Action    string `json:"action"`
	DID       string `json:"did"`
	Payload   string `json:"payload"`
	Signature string `json:"signature,omitempty"`
}

var payloadCmd = &cli.Command{
	Name:  "payload",
	Usage: "Build the signable payload of a DID operation, optionally signing it with a development key",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "action", Required: true, Usage: "one of AddKey, RevokeKey, DeactivateDid, AddService, " +
			"RemoveService, SetMetadata, RemoveMetadata, UpdateRoles"},
		&cli.StringFlag{Name: "did", Required: true},
		&cli.StringFlag{Name: "public-key"},
		&cli.StringSliceFlag{Name: "role"},
		&cli.StringFlag{Name: "service-id"},
		&cli.StringFlag{Name: "service-type"},
		&cli.StringFlag{Name: "service-endpoint"},
		&cli.StringFlag{Name: "metadata-key"},
		&cli.StringFlag{Name: "metadata-value"},
		&cli.StringFlag{Name: "dev-seed", Usage: "0x hex Ed25519 seed used to sign the payload", EnvVars: []string{"QSB_DEV_SEED"}},
	},
	Action: func(cmd *cli.Context) error {
		action, err := payload.ParseAction(cmd.String("action"))
		if err != nil {
			return err
		}

		req := &operation.Request{
			Action:          action,
			DID:             cmd.String("did"),
			PublicKey:       cmd.String("public-key"),
			Roles:           cmd.StringSlice("role"),
			ServiceID:       cmd.String("service-id"),
			ServiceType:     cmd.String("service-type"),
			ServiceEndpoint: cmd.String("service-endpoint"),
			MetadataKey:     cmd.String("metadata-key"),
			MetadataValue:   cmd.String("metadata-value"),
		}

		d, err := did.Normalize(req.DID)
		if err != nil {
			return err
		}

		call, err := req.Call(d)
		if err != nil {
			return err
		}

		p, err := payload.New(action, call)
		if err != nil {
			return err
		}

		out := &payloadOutput{Action: string(action), DID: d.DID, Payload: p.Hex()}

		if seed := cmd.String("dev-seed"); seed != "" {
			s, err := edsigner.NewFromSeed(seed)
			if err != nil {
				return err
			}

			raw, err := s.Sign(cmd.Context, d.DID, p.Bytes())
			if err != nil {
				return err
			}

			out.Signature, err = signature.NormalizeRaw(raw)
			if err != nil {
				return err
			}
		}

		return writeJSON(cmd, out)
	},
}

var signatureCmd = &cli.Command{
	Name:      "signature",
	Usage:     "Normalize a signer result (JSON, or a bare string) to hex",
	ArgsUsage: "<result>",
	Action: func(cmd *cli.Context) error {
		arg := cmd.Args().First()

		v, err := signature.ParseJSON([]byte(arg))
		if err != nil {
			v, err = signature.Parse(arg)
			if err != nil {
				return err
			}
		}

		h, err := signature.Normalize(v)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(cmd.App.Writer, h)

		return err
	},
}

type schemaIDOutput struct {
	SchemaID string `json:"schemaId"`
	Hex      string `json:"hex"`
	Digest   string `json:"digest"`
}

var schemaIDCmd = &cli.Command{
	Name:      "schema-id",
	Usage:     "Compute the id of a schema document",
	ArgsUsage: "<file|->",
	Flags: []cli.Flag{
		&cli.BoolFlag{Name: "canonicalize", Usage: "hash the RFC 8785 canonical form instead of the exact bytes"},
		&cli.BoolFlag{Name: "strict", Usage: "require the document to compile as a JSON Schema"},
		&cli.StringFlag{Name: "genesis", Usage: "0x hex genesis hash; fetched from the node when empty"},
	},
	Action: func(cmd *cli.Context) error {
		doc, err := readInput(cmd)
		if err != nil {
			return err
		}

		validate := schema.Validate
		if cmd.Bool("strict") {
			validate = schema.Compile
		}

		if err := validate(doc); err != nil {
			return err
		}

		if cmd.Bool("canonicalize") {
			if doc, err = schema.Canonicalize(doc); err != nil {
				return err
			}
		}

		genesis, err := genesisHash(cmd)
		if err != nil {
			return err
		}

		id := schema.BuildIDBytes(genesis, doc)

		digest, err := schema.Digest(doc)
		if err != nil {
			return err
		}

		return writeJSON(cmd, &schemaIDOutput{SchemaID: id.SchemaID, Hex: id.Hex(), Digest: encoder.ToHex(digest)})
	},
}

var schemaCmd = &cli.Command{
	Name:      "schema",
	Usage:     "Show a schema record, or the schemas issued by a DID",
	ArgsUsage: "[schema id]",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "issuer", Usage: "list the schemas issued by this DID"},
	},
	Action: func(cmd *cli.Context) error {
		h, closeFn, err := newDocumentHandler(cmd)
		if err != nil {
			return err
		}

		defer closeFn()

		if issuer := cmd.String("issuer"); issuer != "" {
			records, err := h.SchemasByIssuer(cmd.Context, issuer)
			if err != nil {
				return err
			}

			return writeJSON(cmd, records)
		}

		record, err := h.ResolveSchema(cmd.Context, cmd.Args().First())
		if err != nil {
			return err
		}

		return writeJSON(cmd, record)
	},
}

func newDocumentHandler(cmd *cli.Context, opts ...dochandler.Option) (*dochandler.DocumentHandler, func(), error) {
	client, err := rpc.Dial(cmd.Context, cmd.String("node"))
	if err != nil {
		return nil, nil, err
	}

	closeFn := func() {
		_ = client.Close() //nolint:errcheck
	}

	return dochandler.New(rpc.NewChainClient(client, nil), opts...), closeFn, nil
}

func genesisHash(cmd *cli.Context) ([]byte, error) {
	if g := cmd.String("genesis"); g != "" {
		return encoder.FromHex(g)
	}

	client, err := rpc.Dial(cmd.Context, cmd.String("node"))
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = client.Close() //nolint:errcheck
	}()

	return rpc.NewChainClient(client, nil).GenesisHash(cmd.Context)
}

func readInput(cmd *cli.Context) ([]byte, error) {
	name := cmd.Args().First()

	switch name {
	case "":
		return nil, errMissingArg
	case "-":
		return io.ReadAll(cmd.App.Reader)
	default:
		return os.ReadFile(name) //nolint:gosec
	}
}

func writeJSON(cmd *cli.Context, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.App.Writer, string(b))

	return err
}
