/*
Copyright Identbase Technologies. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package transport wraps http.RoundTripper with the cross-cutting concerns
// the service cores stay free of: bearer credential and SDK-version headers,
// and retry of transient failures. The vault and vdr cores never retry; any
// retry policy lives here.
package transport

import (
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	sdkVersionHeader  = "X-SDK-Version"
	defaultMaxElapsed = 10 * time.Second
)

// TokenProvider supplies the bearer credential attached to every request.
type TokenProvider interface {
	AuthToken() (string, error)
}

type staticToken string

func (t staticToken) AuthToken() (string, error) {
	return string(t), nil
}

// RoundTripper decorates a base transport with auth headers and retry.
type RoundTripper struct {
	base       http.RoundTripper
	tokens     TokenProvider
	sdkVersion string
	maxElapsed time.Duration
}

// Option configures the round tripper.
type Option func(*RoundTripper)

// WithBase sets the wrapped transport, http.DefaultTransport otherwise.
func WithBase(base http.RoundTripper) Option {
	return func(rt *RoundTripper) {
		rt.base = base
	}
}

// WithToken attaches a static bearer token.
func WithToken(token string) Option {
	return func(rt *RoundTripper) {
		rt.tokens = staticToken(token)
	}
}

// WithTokenProvider attaches a dynamic bearer token source.
func WithTokenProvider(tokens TokenProvider) Option {
	return func(rt *RoundTripper) {
		rt.tokens = tokens
	}
}

// WithSDKVersion sets the version header value.
func WithSDKVersion(version string) Option {
	return func(rt *RoundTripper) {
		rt.sdkVersion = version
	}
}

// WithMaxElapsedTime bounds the total time spent retrying one request.
func WithMaxElapsedTime(maxElapsed time.Duration) Option {
	return func(rt *RoundTripper) {
		rt.maxElapsed = maxElapsed
	}
}

// New returns the decorated round tripper.
func New(opts ...Option) *RoundTripper {
	rt := &RoundTripper{
		base:       http.DefaultTransport,
		maxElapsed: defaultMaxElapsed,
	}

	for _, opt := range opts {
		opt(rt)
	}

	return rt
}

// Client returns an http client using this round tripper.
func (rt *RoundTripper) Client() *http.Client {
	return &http.Client{Transport: rt}
}

// RoundTrip sends the request, retrying transport errors and 5xx responses
// with exponential backoff. Requests whose body cannot be replayed are sent
// once.
func (rt *RoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := rt.setHeaders(req); err != nil {
		return nil, err
	}

	if req.Body != nil && req.GetBody == nil {
		return rt.base.RoundTrip(req)
	}

	var resp *http.Response

	operation := func() error {
		attempt := req.Clone(req.Context())

		if req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return backoff.Permanent(err)
			}

			attempt.Body = body
		}

		var err error

		resp, err = rt.base.RoundTrip(attempt)
		if err != nil {
			return err
		}

		if resp.StatusCode >= http.StatusInternalServerError {
			closeBody(resp)

			return fmt.Errorf("server responded with status %d", resp.StatusCode)
		}

		return nil
	}

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.MaxElapsedTime = rt.maxElapsed

	if err := backoff.Retry(operation, backoff.WithContext(expBackoff, req.Context())); err != nil {
		return nil, err
	}

	return resp, nil
}

func (rt *RoundTripper) setHeaders(req *http.Request) error {
	if rt.tokens != nil {
		token, err := rt.tokens.AuthToken()
		if err != nil {
			return fmt.Errorf("auth token: %w", err)
		}

		req.Header.Set("Authorization", "Bearer "+token)
	}

	if rt.sdkVersion != "" {
		req.Header.Set(sdkVersionHeader, rt.sdkVersion)
	}

	return nil
}

func closeBody(resp *http.Response) {
	if resp.Body != nil {
		_ = resp.Body.Close()
	}
}
