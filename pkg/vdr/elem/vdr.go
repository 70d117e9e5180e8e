/*
Copyright Identbase Technologies. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package elem resolves did:elem documents from a Sidetree-style resolver
// endpoint.
package elem

import (
	"github.com/pkg/errors"

	"github.com/identbase/wallet-sdk-go/pkg/vdr/httpbinding"
)

// MethodName is the did method this resolver accepts.
const MethodName = "elem"

// VDR resolves elem documents through a remote resolver.
type VDR struct {
	*httpbinding.VDR
}

// New creates the elem resolver against the resolver endpoint.
func New(resolverURL string, opts ...httpbinding.Option) (*VDR, error) {
	opts = append(opts, httpbinding.WithAccept(func(method string) bool {
		return method == MethodName
	}))

	base, err := httpbinding.New(resolverURL, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "creating elem resolver")
	}

	return &VDR{VDR: base}, nil
}
