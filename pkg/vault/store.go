/*
Copyright Identbase Technologies. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package vault is the client side of the remote credential vault: paged
// range reads over fixed 100-record windows, credential decoding with
// null-tombstone skipping, type matching, and the delete operations built on
// top of a fresh fetch.
package vault

import (
	"fmt"
	"net/http"
)

// Store exposes the credential operations of a remote vault. Every operation
// starts by materializing the full current record set for the given region;
// the store itself holds no cross-call state, so concurrent calls by
// different callers are safe, while concurrent mutations of the same region
// may race (see DeleteCredentialByID).
type Store struct {
	client    *restClient
	decrypter Decrypter
}

// Option configures the store.
type Option func(*Store)

// WithHTTPClient sets a custom http client, e.g. one wrapping a retrying
// transport. The vault core itself never retries.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(s *Store) {
		s.client.httpClient = httpClient
	}
}

// WithHeadersFunc sets the function supplying the bearer credential and
// SDK-version headers on every request.
func WithHeadersFunc(headersFunc AddHeaders) Option {
	return func(s *Store) {
		s.client.headersFunc = headersFunc
	}
}

// WithDecrypter sets the payload decrypter. Without one the stored blobs are
// treated as plaintext credential JSON.
func WithDecrypter(decrypter Decrypter) Option {
	return func(s *Store) {
		s.decrypter = decrypter
	}
}

// NewStore returns a vault credential store addressing the server resolved
// per region by serverURL.
func NewStore(serverURL VaultURL, opts ...Option) *Store {
	store := &Store{
		client: &restClient{
			serverURL:  serverURL,
			httpClient: &http.Client{},
		},
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

// SearchCredentials returns every decoded credential of the region passing
// the query, in the vault's positional order. A nil query returns all.
func (s *Store) SearchCredentials(region string, query TypeQuery) ([]*Credential, error) {
	credentials, _, err := s.fetchDecoded(region)
	if err != nil {
		return nil, err
	}

	return filterCredentials(credentials, query), nil
}

// GetCredentialByID returns the first credential whose embedded id matches.
func (s *Store) GetCredentialByID(id, region string) (*Credential, error) {
	credentials, _, err := s.fetchDecoded(region)
	if err != nil {
		return nil, err
	}

	for _, credential := range credentials {
		if credential.ID == id {
			return credential, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrCredentialNotFound, id)
}

// DeleteCredentialByID deletes the credential by its position within the
// freshly fetched, decoded sequence. The position is only valid within this
// call's own fetch: a concurrent mutation of the same region between the
// fetch and the delete can mis-target the delete.
func (s *Store) DeleteCredentialByID(id, region string) error {
	credentials, _, err := s.fetchDecoded(region)
	if err != nil {
		return err
	}

	position := -1

	for i, credential := range credentials {
		if credential.ID == id {
			position = i

			break
		}
	}

	if position < 0 {
		return fmt.Errorf("%w: %s", ErrCredentialNotFound, id)
	}

	return s.client.deleteRange(region, position, position)
}

// DeleteAllCredentials issues a single unconditional delete covering every
// page boundary touched by this call's fetch: [0, lastPageOffset+99]. The
// delete is not verified against a fresh read; repeated calls on an empty
// region succeed.
func (s *Store) DeleteAllCredentials(region string) error {
	_, lastPageOffset, err := s.client.fetchAll(region)
	if err != nil {
		return err
	}

	return s.client.deleteRange(region, 0, lastPageOffset+pageSize-1)
}

// fetchDecoded materializes the full record set and decodes it, skipping
// null-ciphertext records. The second return value is the offset of the last
// non-empty page fetched.
func (s *Store) fetchDecoded(region string) ([]*Credential, int, error) {
	records, lastPageOffset, err := s.client.fetchAll(region)
	if err != nil {
		return nil, 0, err
	}

	credentials := make([]*Credential, 0, len(records))

	for i, record := range records {
		credential, err := decodeRecord(s.decrypter, record, i)
		if err != nil {
			return nil, 0, err
		}

		if credential == nil {
			continue
		}

		credentials = append(credentials, credential)
	}

	return credentials, lastPageOffset, nil
}
