/*
Copyright Identbase Technologies. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package hkdf

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"hash"
	"io"

	"github.com/google/tink/go/subtle/random"
	"golang.org/x/crypto/hkdf"

	"github.com/identbase/wallet-sdk-go/pkg/secretlock"
)

const encryptionKeySize = 32

type seedLockHKDF struct {
	aead cipher.AEAD
}

// New returns a secretlock service encrypting and decrypting seeds with a key
// expanded from a passphrase using HKDF with hash function h and the given
// salt. The salt is optional and can be set to nil.
func New(passphrase string, h func() hash.Hash, salt []byte) (secretlock.Service, error) {
	if passphrase == "" {
		return nil, fmt.Errorf("passphrase is empty")
	}

	if h == nil {
		h = sha256.New
	}

	expander := hkdf.New(h, []byte(passphrase), salt, nil)

	encryptionKey := make([]byte, encryptionKeySize)

	if _, err := io.ReadFull(expander, encryptionKey); err != nil {
		return nil, err
	}

	cipherBlock, err := aes.NewCipher(encryptionKey)
	if err != nil {
		return nil, err
	}

	aead, err := cipher.NewGCM(cipherBlock)
	if err != nil {
		return nil, err
	}

	return &seedLockHKDF{aead: aead}, nil
}

// Encrypt a seed in req.
func (m *seedLockHKDF) Encrypt(req *secretlock.EncryptRequest) (*secretlock.EncryptResponse, error) {
	nonce := random.GetRandomBytes(uint32(m.aead.NonceSize()))
	ct := m.aead.Seal(nil, nonce, []byte(req.Plaintext), []byte(req.AdditionalAuthenticatedData))
	ct = append(nonce, ct...)

	return &secretlock.EncryptResponse{
		Ciphertext: base64.URLEncoding.EncodeToString(ct),
	}, nil
}

// Decrypt a seed in req.
func (m *seedLockHKDF) Decrypt(req *secretlock.DecryptRequest) (*secretlock.DecryptResponse, error) {
	ct, err := base64.URLEncoding.DecodeString(req.Ciphertext)
	if err != nil {
		return nil, err
	}

	nonceSize := m.aead.NonceSize()

	// ciphertext must contain more than the nonce prepended by Encrypt()
	if len(ct) <= nonceSize {
		return nil, fmt.Errorf("invalid request")
	}

	pt, err := m.aead.Open(nil, ct[:nonceSize], ct[nonceSize:], []byte(req.AdditionalAuthenticatedData))
	if err != nil {
		return nil, err
	}

	return &secretlock.DecryptResponse{Plaintext: string(pt)}, nil
}
