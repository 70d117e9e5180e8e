/*
Copyright Identbase Technologies. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package kms holds the decrypted key-management context driving DID method
// resolver selection.
package kms

import (
	"errors"
	"fmt"

	"github.com/identbase/wallet-sdk-go/pkg/secretlock"
)

// Supported DID method tags.
const (
	DIDMethodJolo         = "jolo"
	DIDMethodElem         = "elem"
	DIDMethodElemAnchored = "elem-anchored"
)

// ErrUnknownDIDMethod is returned when a key context is created with a method
// tag outside the supported set. Treat it as a configuration error at the
// boundary.
var ErrUnknownDIDMethod = errors.New("unknown DID method")

// KeyContext carries decrypted seed material plus the DID method tag that
// drives resolver selection. It is created once per service instance and is
// immutable thereafter.
type KeyContext struct {
	seed      []byte
	didMethod string
}

// NewKeyContext validates the method tag and copies the seed.
func NewKeyContext(seed []byte, didMethod string) (*KeyContext, error) {
	switch didMethod {
	case DIDMethodJolo, DIDMethodElem, DIDMethodElemAnchored:
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDIDMethod, didMethod)
	}

	if len(seed) == 0 {
		return nil, errors.New("seed is empty")
	}

	seedCopy := make([]byte, len(seed))
	copy(seedCopy, seed)

	return &KeyContext{seed: seedCopy, didMethod: didMethod}, nil
}

// FromEncryptedSeed decrypts the base64 encrypted seed with the given lock
// and builds the key context.
func FromEncryptedSeed(encryptedSeed, didMethod string, lock secretlock.Service) (*KeyContext, error) {
	resp, err := lock.Decrypt(&secretlock.DecryptRequest{Ciphertext: encryptedSeed})
	if err != nil {
		return nil, fmt.Errorf("decrypt seed failed: %w", err)
	}

	return NewKeyContext([]byte(resp.Plaintext), didMethod)
}

// Seed returns a copy of the decrypted seed material.
func (k *KeyContext) Seed() []byte {
	seedCopy := make([]byte, len(k.seed))
	copy(seedCopy, k.seed)

	return seedCopy
}

// DIDMethod returns the DID method tag.
func (k *KeyContext) DIDMethod() string {
	return k.didMethod
}
