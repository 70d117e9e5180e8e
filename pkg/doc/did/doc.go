/*
Copyright Identbase Technologies. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package did

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcutil/base58"
)

// ErrKeyNotFound is returned when a DID document contains no public key
// section with the requested id.
var ErrKeyNotFound = errors.New("public key not found in DID document")

// Doc is the consumed DID document shape. Only the fields this SDK reads are
// modelled; unknown fields are ignored on parse.
type Doc struct {
	Context        string      `json:"@context,omitempty"`
	ID             string      `json:"id"`
	PublicKey      []PublicKey `json:"publicKey,omitempty"`
	Authentication []string    `json:"authentication,omitempty"`
}

// PublicKey is one public key section of a DID document. Exactly one of the
// three key material fields is expected to be populated per section.
type PublicKey struct {
	ID              string `json:"id"`
	Type            string `json:"type,omitempty"`
	Controller      string `json:"controller,omitempty"`
	PublicKeyPem    string `json:"publicKeyPem,omitempty"`
	PublicKeyBase58 string `json:"publicKeyBase58,omitempty"`
	PublicKeyHex    string `json:"publicKeyHex,omitempty"`
}

// ParseDocument creates a Doc from its JSON representation.
func ParseDocument(data []byte) (*Doc, error) {
	doc := &Doc{}

	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("JSON unmarshalling of DID document failed: %w", err)
	}

	return doc, nil
}

// JSONBytes marshals the document.
func (doc *Doc) JSONBytes() ([]byte, error) {
	docBytes, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("JSON marshalling of DID document failed: %w", err)
	}

	return docBytes, nil
}

// LookupPublicKey returns the key material for a key of the given document.
// The target key id is the explicit argument when provided, otherwise keyID is
// parsed and reconstituted as did#fragment. When a section carries more than
// one encoding the material is selected in priority order: PEM bytes, then
// base58 decoded bytes, then hex decoded bytes.
func LookupPublicKey(keyID string, doc *Doc, explicitKeyID ...string) ([]byte, error) {
	target := keyID

	if len(explicitKeyID) > 0 && explicitKeyID[0] != "" {
		target = explicitKeyID[0]
	} else if idx := strings.Index(keyID, "#"); idx >= 0 {
		d := Parse(keyID)
		target = d.String() + "#" + d.Fragment
	}

	for i := range doc.PublicKey {
		section := &doc.PublicKey[i]
		if section.ID != target {
			continue
		}

		switch {
		case section.PublicKeyPem != "":
			return []byte(section.PublicKeyPem), nil
		case section.PublicKeyBase58 != "":
			return base58.Decode(section.PublicKeyBase58), nil
		case section.PublicKeyHex != "":
			keyBytes, err := hex.DecodeString(section.PublicKeyHex)
			if err != nil {
				return nil, fmt.Errorf("hex decode of key %s failed: %w", target, err)
			}

			return keyBytes, nil
		}

		return nil, fmt.Errorf("%w: key %s carries no key material", ErrKeyNotFound, target)
	}

	return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, target)
}
