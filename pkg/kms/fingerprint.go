/*
Copyright Identbase Technologies. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package kms

import (
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/multiformats/go-multibase"
	"golang.org/x/crypto/hkdf"
)

// ED25519PubKeyMultiCodec for Ed25519 public key in the multicodec table.
// source: https://github.com/multiformats/multicodec/blob/master/table.csv.
const ED25519PubKeyMultiCodec = 0xed

// Fingerprint derives the method-specific identifier for a seed: the seed is
// expanded into an Ed25519 signing key and the public key is encoded as a
// multibase base58btc multicodec fingerprint.
func Fingerprint(seed []byte) (string, error) {
	if len(seed) == 0 {
		return "", errors.New("seed is empty")
	}

	pubKey, err := deriveSigningKey(seed)
	if err != nil {
		return "", err
	}

	multicodec := make([]byte, binary.MaxVarintLen64)
	prefixLength := binary.PutUvarint(multicodec, ED25519PubKeyMultiCodec)

	fingerprint, err := multibase.Encode(multibase.Base58BTC, append(multicodec[:prefixLength], pubKey...))
	if err != nil {
		return "", fmt.Errorf("multibase encode of fingerprint failed: %w", err)
	}

	return fingerprint, nil
}

// SigningKey expands the seed into the Ed25519 private key used to sign
// anchoring operations.
func SigningKey(seed []byte) (ed25519.PrivateKey, error) {
	if len(seed) == 0 {
		return nil, errors.New("seed is empty")
	}

	keySeed := make([]byte, ed25519.SeedSize)

	expander := hkdf.New(sha256.New, seed, nil, []byte("signing"))
	if _, err := io.ReadFull(expander, keySeed); err != nil {
		return nil, fmt.Errorf("expand seed failed: %w", err)
	}

	return ed25519.NewKeyFromSeed(keySeed), nil
}

func deriveSigningKey(seed []byte) (ed25519.PublicKey, error) {
	privKey, err := SigningKey(seed)
	if err != nil {
		return nil, err
	}

	pubKey, ok := privKey.Public().(ed25519.PublicKey)
	if !ok {
		return nil, errors.New("unexpected public key type")
	}

	return pubKey, nil
}
