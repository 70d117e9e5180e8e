/*
Copyright Identbase Technologies. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package vault

import (
	"golang.org/x/exp/slices"
)

// matchTypeQuery applies the two-level type predicate: a credential passes
// when at least one group of the query is fully contained in the credential's
// own types. A group that is itself empty is satisfied by any credential
// regardless of its type value, so a query containing an empty group selects
// everything. A credential with no type field is treated as having an empty
// type set.
func matchTypeQuery(credential *Credential, query TypeQuery) bool {
	for _, group := range query {
		if groupMatches(credential, group) {
			return true
		}
	}

	return false
}

func groupMatches(credential *Credential, group []string) bool {
	for _, wantType := range group {
		if !slices.Contains(credential.Types, wantType) {
			return false
		}
	}

	return true
}

// filterCredentials returns the credentials passing the query, preserving the
// input order. A nil query is the identity: every credential passes.
func filterCredentials(credentials []*Credential, query TypeQuery) []*Credential {
	if query == nil {
		return credentials
	}

	filtered := make([]*Credential, 0, len(credentials))

	for _, credential := range credentials {
		if matchTypeQuery(credential, query) {
			filtered = append(filtered, credential)
		}
	}

	return filtered
}
