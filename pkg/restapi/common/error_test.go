/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package common

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trustbloc/qsb-did-core-go/pkg/did"
)

func TestNewHTTPError(t *testing.T) {
	errExpected := errors.New("expected error")

	err := NewHTTPError(http.StatusBadRequest, errExpected)
	require.Equal(t, http.StatusBadRequest, err.Status())
	require.EqualError(t, err, errExpected.Error())
	require.True(t, errors.Is(err, errExpected))
}

func TestClassify(t *testing.T) {
	errNotFound := errors.New("not found")

	t.Run("validation", func(t *testing.T) {
		err := Classify(did.NewValidationError(did.UnrecognizedFormat, "bad"), errNotFound)
		require.Equal(t, http.StatusBadRequest, err.Status())
	})

	t.Run("not found", func(t *testing.T) {
		err := Classify(fmt.Errorf("lookup: %w", errNotFound), errNotFound)
		require.Equal(t, http.StatusNotFound, err.Status())
	})

	t.Run("other", func(t *testing.T) {
		err := Classify(errors.New("connection reset"), errNotFound)
		require.Equal(t, http.StatusInternalServerError, err.Status())

		err = Classify(errNotFound)
		require.Equal(t, http.StatusInternalServerError, err.Status())
	})
}
