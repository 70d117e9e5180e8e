/*
Copyright Identbase Technologies. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package vdr

import (
	"errors"
	"fmt"
	"strings"

	diddoc "github.com/identbase/wallet-sdk-go/pkg/doc/did"
	"github.com/identbase/wallet-sdk-go/pkg/kms"
	vdrapi "github.com/identbase/wallet-sdk-go/pkg/vdr/api"
)

// ErrMethodNotSupported is returned when no registered resolver accepts a DID
// method. Unsupported tags are an explicit error, never a silent nil
// resolver.
var ErrMethodNotSupported = errors.New("DID method not supported")

// Option is a registry instance option.
type Option func(opts *Registry)

// Registry dispatches DID document reads to method-specific resolvers.
type Registry struct {
	resolvers []vdrapi.Resolver
}

// New returns a new registry.
func New(opts ...Option) *Registry {
	registry := &Registry{}

	for _, opt := range opts {
		opt(registry)
	}

	return registry
}

// WithResolver adds a DID method resolver implementation.
func WithResolver(resolver vdrapi.Resolver) Option {
	return func(opts *Registry) {
		opts.resolvers = append(opts.resolvers, resolver)
	}
}

// Resolve a DID document.
func (r *Registry) Resolve(did string, opts ...vdrapi.ResolveOption) (*diddoc.Doc, error) {
	method, err := GetDidMethod(did)
	if err != nil {
		return nil, err
	}

	resolver, err := r.resolver(method)
	if err != nil {
		return nil, err
	}

	doc, err := resolver.Read(did, opts...)
	if err != nil {
		if errors.Is(err, vdrapi.ErrNotFound) {
			return nil, err
		}

		return nil, fmt.Errorf("did method read failed: %w", err)
	}

	return doc, nil
}

// ForKeyContext selects the resolver keyed by the key context's DID method
// tag. The selection happens once, at service construction time.
func (r *Registry) ForKeyContext(keyContext *kms.KeyContext) (vdrapi.Resolver, error) {
	return r.resolver(keyContext.DIDMethod())
}

// Close frees resources being maintained by the registered resolvers.
func (r *Registry) Close() error {
	for _, resolver := range r.resolvers {
		if err := resolver.Close(); err != nil {
			return fmt.Errorf("close resolver: %w", err)
		}
	}

	return nil
}

func (r *Registry) resolver(method string) (vdrapi.Resolver, error) {
	for _, resolver := range r.resolvers {
		if resolver.Accept(method) {
			return resolver, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrMethodNotSupported, method)
}

// GetDidMethod extracts the method from a DID string.
func GetDidMethod(didID string) (string, error) {
	const numPartsDID = 3

	didParts := strings.Split(didID, ":")
	if len(didParts) < numPartsDID {
		return "", fmt.Errorf("wrong format did input: %s", didID)
	}

	return didParts[1], nil
}
