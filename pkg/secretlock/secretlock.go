/*
Copyright Identbase Technologies. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package secretlock provides encryption of the wallet seed at rest. The
// decrypted seed is what a kms.KeyContext carries.
package secretlock

// Service provides crypto for protecting the wallet seed.
type Service interface {
	// Encrypt encrypts a seed in req.
	Encrypt(req *EncryptRequest) (*EncryptResponse, error)

	// Decrypt decrypts a seed in req.
	Decrypt(req *DecryptRequest) (*DecryptResponse, error)
}

// EncryptRequest for encrypting a seed.
type EncryptRequest struct {
	Plaintext                   string
	AdditionalAuthenticatedData string
}

// DecryptRequest for decrypting a seed.
type DecryptRequest struct {
	Ciphertext                  string
	AdditionalAuthenticatedData string
}

// EncryptResponse holds the encrypted seed.
type EncryptResponse struct {
	Ciphertext string
}

// DecryptResponse holds the decrypted seed.
type DecryptResponse struct {
	Plaintext string
}
