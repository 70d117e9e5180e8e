/*
Copyright Identbase Technologies. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package api

import (
	"errors"

	diddoc "github.com/identbase/wallet-sdk-go/pkg/doc/did"
)

// ErrNotFound is returned when a DID resolver does not find the DID.
var ErrNotFound = errors.New("DID does not exist")

// Resolver reads DID documents for the methods it accepts.
type Resolver interface {
	Read(did string, opts ...ResolveOption) (*diddoc.Doc, error)
	Accept(method string) bool
	Close() error
}

// ResolveOpts holds the options for a resolve call.
type ResolveOpts struct {
	Values map[string]interface{}
}

// ResolveOption is a resolve call option.
type ResolveOption func(opts *ResolveOpts)

// WithOption adds an option for the method resolver.
func WithOption(name string, value interface{}) ResolveOption {
	return func(opts *ResolveOpts) {
		opts.Values[name] = value
	}
}

// ApplyOptions collects the options of a resolve call.
func ApplyOptions(opts ...ResolveOption) *ResolveOpts {
	resolveOpts := &ResolveOpts{Values: make(map[string]interface{})}

	for _, opt := range opts {
		opt(resolveOpts)
	}

	return resolveOpts
}
