/*
Copyright Identbase Technologies. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package did

import (
	"fmt"
	"strings"
)

// DID is a parsed decentralized identifier of the form
// did:method:method-specific-id[;params][#fragment].
type DID struct {
	Method           string
	MethodSpecificID string
	Params           string
	Fragment         string
}

// Parse splits a DID string into its parts. It does not validate the input
// beyond requiring the did:method:id shape: malformed input yields
// zero-valued fields rather than an error, so callers that need strict
// validation must check the fields themselves.
func Parse(didStr string) DID {
	var d DID

	base := didStr
	if idx := strings.Index(base, "#"); idx >= 0 {
		d.Fragment = base[idx+1:]
		base = base[:idx]
	}

	const numPartsDID = 3

	parts := strings.SplitN(base, ":", numPartsDID)
	if len(parts) < numPartsDID || parts[0] != "did" {
		return DID{}
	}

	d.Method = parts[1]

	rest := parts[2]
	if idx := strings.Index(rest, ";"); idx >= 0 {
		d.Params = rest[idx+1:]
		rest = rest[:idx]
	}

	d.MethodSpecificID = rest

	return d
}

// String returns the canonical did:method:id form without params or fragment.
func (d DID) String() string {
	if d.Method == "" {
		return ""
	}

	return fmt.Sprintf("did:%s:%s", d.Method, d.MethodSpecificID)
}
