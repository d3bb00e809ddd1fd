/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package diddochandler

import (
	"strings"

	"github.com/trustbloc/qsb-did-core-go/pkg/restapi/common"
)

// handler is a route mounted under a base path. A trailing slash of the base path is ignored.
type handler struct {
	path       string
	method     string
	reqHandler common.HTTPRequestHandler
}

func newHandler(basePath, route, method string, reqHandler common.HTTPRequestHandler) *handler {
	return &handler{
		path:       strings.TrimSuffix(basePath, "/") + route,
		method:     method,
		reqHandler: reqHandler,
	}
}

func (h *handler) Path() string {
	return h.path
}

func (h *handler) Method() string {
	return h.method
}

func (h *handler) Handler() common.HTTPRequestHandler {
	return h.reqHandler
}
