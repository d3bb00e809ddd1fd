/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package document

// ServiceEndpointProperty defines service endpoint.
const ServiceEndpointProperty = "serviceEndpoint"

// Service represents any type of service the entity wishes to advertise.
type Service struct {
	ID              string `json:"id"`
	Type            string `json:"type"`
	ServiceEndpoint string `json:"serviceEndpoint"`
}
