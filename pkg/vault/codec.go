/*
Copyright Identbase Technologies. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package vault

import (
	"encoding/json"
)

// Decrypter decrypts a stored vault blob into the credential JSON bytes.
// Encryption is a collaborator concern: the vault core treats it as opaque.
type Decrypter interface {
	Decrypt(cyphertext []byte) ([]byte, error)
}

// decodeRecord turns one raw record into a credential. A null or empty
// cyphertext yields (nil, nil): the record is silently skipped, not an error.
// A non-null blob that fails decryption or JSON parsing fails with a
// DecodeError carrying the record's position in the fetched sequence.
func decodeRecord(decrypter Decrypter, record StoredRecord, pos int) (*Credential, error) {
	if record.Cyphertext == nil || *record.Cyphertext == "" {
		return nil, nil
	}

	payload := []byte(*record.Cyphertext)

	if decrypter != nil {
		decrypted, err := decrypter.Decrypt(payload)
		if err != nil {
			return nil, &DecodeError{Pos: pos, Err: err}
		}

		payload = decrypted
	}

	credential := &Credential{}

	if err := json.Unmarshal(payload, credential); err != nil {
		return nil, &DecodeError{Pos: pos, Err: err}
	}

	return credential, nil
}
