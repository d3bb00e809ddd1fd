/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package common

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/trustbloc/qsb-did-core-go/internal/log"
)

var logger = log.New("qsb-did-restapi-common")

// HTTPRequestHandler is an HTTP handler.
type HTTPRequestHandler func(http.ResponseWriter, *http.Request)

// HTTPHandler is a HTTP handler descriptor containing the context path, method, and request handler.
type HTTPHandler interface {
	Path() string
	Method() string
	Handler() HTTPRequestHandler
}

// NewRouter returns a router serving the given handlers.
func NewRouter(handlers ...HTTPHandler) *mux.Router {
	router := mux.NewRouter()

	for _, h := range handlers {
		logger.Debug("Registering handler", log.WithURIString(h.Path()))

		router.HandleFunc(h.Path(), h.Handler()).Methods(h.Method())
	}

	return router
}
