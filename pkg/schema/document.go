/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package schema

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/gowebpki/jcs"
	"github.com/kaptinlin/jsonschema"
)

const acceptHeader = "application/schema+json, application/json, text/plain;q=0.9, */*;q=0.1"

// Fetch errors.
var (
	ErrEmptyURL      = errors.New("Enter schema URL first.")                 //nolint:stylecheck
	ErrInvalidURL    = errors.New("Schema URL must be a valid absolute URL.") //nolint:stylecheck
	ErrEmptyDocument = errors.New("Fetched schema is empty.")                 //nolint:stylecheck
)

// Validate checks that doc is a non-empty JSON document. Any JSON value is accepted since
// schema ids are defined over exact bytes; use Compile for a JSON Schema check.
func Validate(doc []byte) error {
	if len(bytes.TrimSpace(doc)) == 0 {
		return errors.New("Enter a JSON schema.") //nolint:stylecheck
	}

	if !json.Valid(doc) {
		return fmt.Errorf("invalid JSON: %w", jsonError(doc))
	}

	return nil
}

// Compile checks that doc is a JSON document that compiles as a JSON Schema.
func Compile(doc []byte) error {
	if err := Validate(doc); err != nil {
		return err
	}

	if _, err := jsonschema.NewCompiler().Compile(doc); err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	return nil
}

// ValidateInstance validates a JSON instance against the schema document.
func ValidateInstance(doc, instance []byte) error {
	s, err := jsonschema.NewCompiler().Compile(doc)
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	result := s.ValidateJSON(instance)
	if result.IsValid() {
		return nil
	}

	return fmt.Errorf("schema validation failed: %v", result.Errors)
}

// Canonicalize returns the RFC 8785 canonical form of doc. Schema ids are computed over exact
// bytes, so this is only applied when a caller asks for it before computing the id.
func Canonicalize(doc []byte) ([]byte, error) {
	return jcs.Transform(doc)
}

// Fetch downloads a schema document and returns its exact bytes. The response must be a
// successful, non-empty JSON document.
func Fetch(ctx context.Context, client *http.Client, rawURL string) ([]byte, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, ErrEmptyURL
	}

	u, err := url.Parse(rawURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return nil, ErrInvalidURL
	}

	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("Failed to fetch schema: %w", err) //nolint:stylecheck
	}

	req.Header.Set("Accept", acceptHeader)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Failed to fetch schema: %w", err) //nolint:stylecheck
	}

	defer func() {
		_ = resp.Body.Close() //nolint:errcheck
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("Failed to fetch schema: HTTP %d.", resp.StatusCode) //nolint:stylecheck
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("Failed to fetch schema: %w", err) //nolint:stylecheck
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return nil, ErrEmptyDocument
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("invalid JSON: %w", jsonError(body))
	}

	return body, nil
}

func jsonError(doc []byte) error {
	var v interface{}
	if err := json.Unmarshal(doc, &v); err != nil {
		return err
	}

	return errors.New("malformed JSON")
}
