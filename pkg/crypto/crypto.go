/*
Copyright Identbase Technologies. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package crypto provides the payload cipher collaborators consumed by the
// vault store. The vault core treats encryption as opaque; these types are
// the concrete implementations callers plug in.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"fmt"

	"github.com/google/tink/go/subtle/random"
)

// Encrypter encrypts credential payload bytes into a vault blob.
type Encrypter interface {
	Encrypt(plaintext []byte) ([]byte, error)
}

// Decrypter decrypts a vault blob back into credential payload bytes.
type Decrypter interface {
	Decrypt(cyphertext []byte) ([]byte, error)
}

// AESGCM encrypts and decrypts vault payloads with a single symmetric key.
// Blobs are base64 URL encoded with the nonce prepended to the ciphertext.
type AESGCM struct {
	aead cipher.AEAD
}

// NewAESGCM creates an AESGCM cipher for the given key (16, 24 or 32 bytes).
func NewAESGCM(key []byte) (*AESGCM, error) {
	cipherBlock, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create AES cipher failed: %w", err)
	}

	aead, err := cipher.NewGCM(cipherBlock)
	if err != nil {
		return nil, fmt.Errorf("create GCM failed: %w", err)
	}

	return &AESGCM{aead: aead}, nil
}

// Encrypt seals the plaintext.
func (a *AESGCM) Encrypt(plaintext []byte) ([]byte, error) {
	nonce := random.GetRandomBytes(uint32(a.aead.NonceSize()))

	cyphertext := a.aead.Seal(nil, nonce, plaintext, nil)
	cyphertext = append(nonce, cyphertext...)

	return []byte(base64.URLEncoding.EncodeToString(cyphertext)), nil
}

// Decrypt opens a blob produced by Encrypt.
func (a *AESGCM) Decrypt(blob []byte) ([]byte, error) {
	cyphertext, err := base64.URLEncoding.DecodeString(string(blob))
	if err != nil {
		return nil, fmt.Errorf("base64 decode of blob failed: %w", err)
	}

	nonceSize := a.aead.NonceSize()
	if len(cyphertext) <= nonceSize {
		return nil, fmt.Errorf("blob too short")
	}

	plaintext, err := a.aead.Open(nil, cyphertext[:nonceSize], cyphertext[nonceSize:], nil)
	if err != nil {
		return nil, fmt.Errorf("open blob failed: %w", err)
	}

	return plaintext, nil
}

// NoOp passes payloads through unchanged, for vaults holding plaintext
// credential JSON.
type NoOp struct{}

// Encrypt returns the plaintext unchanged.
func (NoOp) Encrypt(plaintext []byte) ([]byte, error) {
	return plaintext, nil
}

// Decrypt returns the blob unchanged.
func (NoOp) Decrypt(cyphertext []byte) ([]byte, error) {
	return cyphertext, nil
}
