/*
Copyright Identbase Technologies. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package vault_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/identbase/wallet-sdk-go/pkg/mock/vaultserver"
	"github.com/identbase/wallet-sdk-go/pkg/vault"
)

const testRegion = "eu-west"

func TestFetchAllPaging(t *testing.T) {
	// one request per non-empty page, plus the empty page confirming
	// termination; a short non-empty page does not terminate
	testCases := []struct {
		records          int
		expectedRequests int
	}{
		{records: 0, expectedRequests: 1},
		{records: 99, expectedRequests: 2},
		{records: 100, expectedRequests: 2},
		{records: 248, expectedRequests: 4},
		{records: 399, expectedRequests: 5},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(fmt.Sprintf("%d records", tc.records), func(t *testing.T) {
			operation := &vaultserver.MockServerOperation{
				T:       t,
				UseDB:   true,
				Records: makeRecords(t, tc.records),
			}

			server := operation.Start()
			defer server.Close()

			store := vault.NewStore(vault.StaticURL(server.URL))

			credentials, err := store.SearchCredentials(testRegion, nil)
			require.NoError(t, err)
			require.Len(t, credentials, tc.records)

			require.Len(t, operation.ReadCalls, tc.expectedRequests)

			for i, call := range operation.ReadCalls {
				require.Equal(t, i*100, call.Start)
				require.Equal(t, i*100+99, call.End)
			}

			// positional order is preserved
			for i, credential := range credentials {
				require.Equal(t, fmt.Sprintf("credential-%d", i), credential.ID)
			}
		})
	}
}

func TestSearchCredentialsSkipsNullCyphertext(t *testing.T) {
	// page layout 100 (1 null) + 50 + 0: 149 decoded credentials from 150 raw records
	records := makeRecords(t, 150)
	records[5].Cyphertext = nil

	operation := &vaultserver.MockServerOperation{T: t, UseDB: true, Records: records}

	server := operation.Start()
	defer server.Close()

	store := vault.NewStore(vault.StaticURL(server.URL))

	credentials, err := store.SearchCredentials(testRegion, nil)
	require.NoError(t, err)
	require.Len(t, credentials, 149)
}

func TestSearchCredentialsTypeQuery(t *testing.T) {
	typeSets := [][]string{
		{"Alex", "Sergiy"},
		{"Stas"},
		{"Denis", "Igor", "Max", "Artem"},
		{"Sasha", "Alex", "Stas"},
		{"Roman"},
		{"Max", "Sergiy"},
	}

	records := make([]vault.StoredRecord, 0, len(typeSets))

	for i, types := range typeSets {
		records = append(records, makeRecord(t, fmt.Sprintf("credential-%d", i+1), types))
	}

	operation := &vaultserver.MockServerOperation{T: t, UseDB: true, Records: records}

	server := operation.Start()
	defer server.Close()

	store := vault.NewStore(vault.StaticURL(server.URL))

	t.Run("vacuous empty group passes all", func(t *testing.T) {
		credentials, err := store.SearchCredentials(testRegion, vault.TypeQuery{{}})
		require.NoError(t, err)
		require.Len(t, credentials, len(typeSets))
	})

	t.Run("two-group query", func(t *testing.T) {
		credentials, err := store.SearchCredentials(testRegion,
			vault.TypeQuery{{"Denis"}, {"Stas", "Alex"}})
		require.NoError(t, err)
		require.Len(t, credentials, 2)
		require.Equal(t, "credential-3", credentials[0].ID)
		require.Equal(t, "credential-4", credentials[1].ID)
	})

	t.Run("nil query is identity", func(t *testing.T) {
		credentials, err := store.SearchCredentials(testRegion, nil)
		require.NoError(t, err)
		require.Len(t, credentials, len(typeSets))
	})
}

func TestSearchCredentialsMatchesUntypedCredentials(t *testing.T) {
	records := []vault.StoredRecord{
		makeRecord(t, "typed", []string{"Email"}),
		rawRecord(`{"id":"untyped"}`),
		rawRecord(`{"id":"empty-types","type":[]}`),
	}

	operation := &vaultserver.MockServerOperation{T: t, UseDB: true, Records: records}

	server := operation.Start()
	defer server.Close()

	store := vault.NewStore(vault.StaticURL(server.URL))

	credentials, err := store.SearchCredentials(testRegion, vault.TypeQuery{{}})
	require.NoError(t, err)
	require.Len(t, credentials, 3)
}

func TestGetCredentialByID(t *testing.T) {
	operation := &vaultserver.MockServerOperation{T: t, UseDB: true, Records: makeRecords(t, 3)}

	server := operation.Start()
	defer server.Close()

	store := vault.NewStore(vault.StaticURL(server.URL))

	t.Run("found", func(t *testing.T) {
		credential, err := store.GetCredentialByID("credential-1", testRegion)
		require.NoError(t, err)
		require.Equal(t, "credential-1", credential.ID)
	})

	t.Run("not found", func(t *testing.T) {
		operation.DeleteCalls = nil

		_, err := store.GetCredentialByID("no-such-credential", testRegion)
		require.ErrorIs(t, err, vault.ErrCredentialNotFound)
		require.Empty(t, operation.DeleteCalls)
	})
}

func TestDeleteCredentialByID(t *testing.T) {
	t.Run("deletes by local position", func(t *testing.T) {
		operation := &vaultserver.MockServerOperation{T: t, UseDB: true, Records: makeRecords(t, 5)}

		server := operation.Start()
		defer server.Close()

		store := vault.NewStore(vault.StaticURL(server.URL))

		require.NoError(t, store.DeleteCredentialByID("credential-3", testRegion))
		require.Len(t, operation.DeleteCalls, 1)
		require.Equal(t, vaultserver.RangeCall{Start: 3, End: 3}, operation.DeleteCalls[0])
	})

	t.Run("position counts decoded records only", func(t *testing.T) {
		records := makeRecords(t, 5)
		records[0].Cyphertext = nil

		operation := &vaultserver.MockServerOperation{T: t, UseDB: true, Records: records}

		server := operation.Start()
		defer server.Close()

		store := vault.NewStore(vault.StaticURL(server.URL))

		require.NoError(t, store.DeleteCredentialByID("credential-3", testRegion))
		require.Equal(t, vaultserver.RangeCall{Start: 2, End: 2}, operation.DeleteCalls[0])
	})

	t.Run("not found issues no delete", func(t *testing.T) {
		operation := &vaultserver.MockServerOperation{T: t, UseDB: true, Records: makeRecords(t, 2)}

		server := operation.Start()
		defer server.Close()

		store := vault.NewStore(vault.StaticURL(server.URL))

		err := store.DeleteCredentialByID("no-such-credential", testRegion)
		require.ErrorIs(t, err, vault.ErrCredentialNotFound)
		require.Empty(t, operation.DeleteCalls)
	})
}

func TestDeleteAllCredentials(t *testing.T) {
	t.Run("single page vault issues one [0,99] delete", func(t *testing.T) {
		operation := &vaultserver.MockServerOperation{T: t, UseDB: true, Records: makeRecords(t, 42)}

		server := operation.Start()
		defer server.Close()

		store := vault.NewStore(vault.StaticURL(server.URL))

		require.NoError(t, store.DeleteAllCredentials(testRegion))
		require.Len(t, operation.DeleteCalls, 1)
		require.Equal(t, vaultserver.RangeCall{Start: 0, End: 99}, operation.DeleteCalls[0])
	})

	t.Run("range covers every touched page", func(t *testing.T) {
		operation := &vaultserver.MockServerOperation{T: t, UseDB: true, Records: makeRecords(t, 248)}

		server := operation.Start()
		defer server.Close()

		store := vault.NewStore(vault.StaticURL(server.URL))

		require.NoError(t, store.DeleteAllCredentials(testRegion))
		require.Len(t, operation.DeleteCalls, 1)
		require.Equal(t, vaultserver.RangeCall{Start: 0, End: 299}, operation.DeleteCalls[0])
	})

	t.Run("idempotent on empty vault", func(t *testing.T) {
		operation := &vaultserver.MockServerOperation{T: t, UseDB: true}

		server := operation.Start()
		defer server.Close()

		store := vault.NewStore(vault.StaticURL(server.URL))

		require.NoError(t, store.DeleteAllCredentials(testRegion))
		require.NoError(t, store.DeleteAllCredentials(testRegion))
		require.Len(t, operation.DeleteCalls, 2)
		require.Equal(t, vaultserver.RangeCall{Start: 0, End: 99}, operation.DeleteCalls[0])
		require.Equal(t, vaultserver.RangeCall{Start: 0, End: 99}, operation.DeleteCalls[1])
	})
}

func TestRemoteErrorPropagatesUnchanged(t *testing.T) {
	operation := &vaultserver.MockServerOperation{
		T:                    t,
		ReadReturnStatusCode: http.StatusUnauthorized,
		ReadReturnBody:       []byte(`{"code":"COM-1","message":"token expired"}`),
	}

	server := operation.Start()
	defer server.Close()

	store := vault.NewStore(vault.StaticURL(server.URL))

	operations := map[string]func() error{
		"SearchCredentials": func() error {
			_, err := store.SearchCredentials(testRegion, nil)
			return err
		},
		"GetCredentialByID": func() error {
			_, err := store.GetCredentialByID("credential-0", testRegion)
			return err
		},
		"DeleteCredentialByID": func() error {
			return store.DeleteCredentialByID("credential-0", testRegion)
		},
	}

	for name, call := range operations {
		t.Run(name, func(t *testing.T) {
			err := call()
			require.Error(t, err)

			var remoteErr *vault.RemoteError

			require.True(t, errors.As(err, &remoteErr))
			require.Equal(t, "COM-1", remoteErr.Code)
			require.Equal(t, "token expired", remoteErr.Message)
			require.Equal(t, http.StatusUnauthorized, remoteErr.Status)
		})
	}
}

func TestMalformedCyphertextFailsOperation(t *testing.T) {
	records := []vault.StoredRecord{
		makeRecord(t, "credential-0", nil),
		rawRecord(`{not json`),
	}

	operation := &vaultserver.MockServerOperation{T: t, UseDB: true, Records: records}

	server := operation.Start()
	defer server.Close()

	store := vault.NewStore(vault.StaticURL(server.URL))

	_, err := store.SearchCredentials(testRegion, nil)
	require.Error(t, err)

	var decodeErr *vault.DecodeError

	require.True(t, errors.As(err, &decodeErr))
	require.Equal(t, 1, decodeErr.Pos)
}

func TestStoreUsesHeadersFunc(t *testing.T) {
	var gotAuth, gotVersion string

	operation := &vaultserver.MockServerOperation{T: t, UseDB: true}

	server := operation.Start()
	defer server.Close()

	headersFunc := func(req *http.Request) (*http.Header, error) {
		req.Header.Set("Authorization", "Bearer test-token")
		req.Header.Set("X-SDK-Version", "1.2.3")

		gotAuth = req.Header.Get("Authorization")
		gotVersion = req.Header.Get("X-SDK-Version")

		return &req.Header, nil
	}

	store := vault.NewStore(vault.StaticURL(server.URL), vault.WithHeadersFunc(headersFunc))

	_, err := store.SearchCredentials(testRegion, nil)
	require.NoError(t, err)
	require.Equal(t, "Bearer test-token", gotAuth)
	require.Equal(t, "1.2.3", gotVersion)
}

func makeRecords(t *testing.T, n int) []vault.StoredRecord {
	t.Helper()

	records := make([]vault.StoredRecord, 0, n)

	for i := 0; i < n; i++ {
		records = append(records, makeRecord(t, fmt.Sprintf("credential-%d", i), []string{"Email"}))
	}

	return records
}

func makeRecord(t *testing.T, id string, types []string) vault.StoredRecord {
	t.Helper()

	payload := map[string]interface{}{"id": id}
	if types != nil {
		payload["type"] = types
	}

	payloadBytes, err := json.Marshal(payload)
	require.NoError(t, err)

	return rawRecord(string(payloadBytes))
}

func rawRecord(cyphertext string) vault.StoredRecord {
	return vault.StoredRecord{Cyphertext: &cyphertext}
}
