/*
Copyright Identbase Technologies. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package httpbinding resolves DID documents from a remote resolver over
// HTTP(s). The method-specific packages wrap it with a fixed Accept.
package httpbinding

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/identbase/wallet-sdk-go/pkg/common/log"
)

var logger = log.New("wallet-sdk/vdr/httpbinding")

// VDR resolves DID documents via an HTTP(s) endpoint.
type VDR struct {
	endpointURL      string
	client           *http.Client
	accept           Accept
	resolveAuthToken string
}

// Accept is a method acceptance predicate.
type Accept func(method string) bool

// New creates a new HTTP binding resolver.
func New(endpointURL string, opts ...Option) (*VDR, error) {
	v := &VDR{client: &http.Client{}, accept: func(method string) bool { return true }}

	for _, opt := range opts {
		opt(v)
	}

	// Validate host
	_, err := url.ParseRequestURI(endpointURL)
	if err != nil {
		return nil, fmt.Errorf("base URL invalid: %w", err)
	}

	v.endpointURL = endpointURL

	return v, nil
}

// Accept reports whether this resolver handles the DID method.
func (v *VDR) Accept(method string) bool {
	return v.accept(method)
}

// Close frees resources being maintained by the resolver.
func (v *VDR) Close() error {
	return nil
}

// Option configures the HTTP binding resolver.
type Option func(opts *VDR)

// WithTimeout sets the HTTP(s) timeout of the resolver.
func WithTimeout(timeout time.Duration) Option {
	return func(opts *VDR) {
		opts.client.Timeout = timeout
	}
}

// WithHTTPClient sets a custom http client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(opts *VDR) {
		opts.client = httpClient
	}
}

// WithAccept sets the accepted did methods.
func WithAccept(accept Accept) Option {
	return func(opts *VDR) {
		opts.accept = accept
	}
}

// WithResolveAuthToken adds an auth token for resolve calls.
func WithResolveAuthToken(authToken string) Option {
	return func(opts *VDR) {
		opts.resolveAuthToken = "Bearer " + authToken
	}
}

func closeResponseBody(respBody io.Closer) {
	e := respBody.Close()
	if e != nil {
		logger.Errorf("Failed to close response body: %v", e)
	}
}
