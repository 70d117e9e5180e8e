/*
Copyright Identbase Technologies. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package jolo resolves did:jolo documents from a registry endpoint. Jolo
// DIDs are derived locally from the wallet seed's key fingerprint.
package jolo

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/identbase/wallet-sdk-go/pkg/kms"
	"github.com/identbase/wallet-sdk-go/pkg/vdr/httpbinding"
)

// MethodName is the did method this resolver accepts.
const MethodName = "jolo"

// VDR resolves jolo documents through the jolo registry.
type VDR struct {
	*httpbinding.VDR
}

// New creates the jolo resolver against the registry endpoint.
func New(registryURL string, opts ...httpbinding.Option) (*VDR, error) {
	opts = append(opts, httpbinding.WithAccept(func(method string) bool {
		return method == MethodName
	}))

	base, err := httpbinding.New(registryURL, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "creating jolo resolver")
	}

	return &VDR{VDR: base}, nil
}

// DIDFromSeed builds the jolo DID for a seed.
func DIDFromSeed(seed []byte) (string, error) {
	fingerprint, err := kms.Fingerprint(seed)
	if err != nil {
		return "", errors.Wrap(err, "deriving jolo DID")
	}

	return fmt.Sprintf("did:%s:%s", MethodName, fingerprint), nil
}
