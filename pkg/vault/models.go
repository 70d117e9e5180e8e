/*
Copyright Identbase Technologies. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package vault

import (
	"encoding/json"
)

// StoredRecord is one raw vault entry. Records are created by the remote
// vault on write and are read-only from the client's perspective. Cyphertext
// is null for tombstoned or corrupted entries and must not crash decoding.
type StoredRecord struct {
	ID         int     `json:"id"`
	Cyphertext *string `json:"cyphertext"`
}

// Credential is a decoded vault payload. Raw preserves the full decoded JSON
// object as-is; ID and Types mirror its id and type fields for matching. An
// absent or empty type field stays absent, it is never synthesized.
type Credential struct {
	ID    string
	Types []string
	Raw   map[string]interface{}
}

// UnmarshalJSON decodes the payload keeping the full object in Raw.
func (c *Credential) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}

	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	c.Raw = raw

	if id, ok := raw["id"].(string); ok {
		c.ID = id
	}

	if types, ok := raw["type"].([]interface{}); ok {
		for _, t := range types {
			if s, ok := t.(string); ok {
				c.Types = append(c.Types, s)
			}
		}
	}

	return nil
}

// MarshalJSON writes the credential back out as the object it was decoded
// from.
func (c *Credential) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Raw)
}

// TypeQuery is a two-level type predicate: a credential passes when at least
// one group is fully contained in the credential's own types. An empty group
// is vacuously true and matches everything.
type TypeQuery [][]string
