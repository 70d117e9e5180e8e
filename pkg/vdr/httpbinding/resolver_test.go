/*
Copyright Identbase Technologies. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package httpbinding_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	vdrapi "github.com/identbase/wallet-sdk-go/pkg/vdr/api"
	"github.com/identbase/wallet-sdk-go/pkg/vdr/httpbinding"
)

func TestNew(t *testing.T) {
	t.Run("accepts every method by default", func(t *testing.T) {
		resolver, err := httpbinding.New("https://resolver.example.com")
		require.NoError(t, err)
		require.True(t, resolver.Accept("jolo"))
		require.True(t, resolver.Accept("elem"))
		require.NoError(t, resolver.Close())
	})

	t.Run("custom accept", func(t *testing.T) {
		resolver, err := httpbinding.New("https://resolver.example.com",
			httpbinding.WithAccept(func(method string) bool { return method == "elem" }))
		require.NoError(t, err)
		require.True(t, resolver.Accept("elem"))
		require.False(t, resolver.Accept("jolo"))
	})

	t.Run("invalid base URL", func(t *testing.T) {
		_, err := httpbinding.New("invalid url")
		require.Error(t, err)
	})
}

func TestRead(t *testing.T) {
	const docJSON = `{"id":"did:elem:EiAbc","publicKey":[{"id":"did:elem:EiAbc#primary","publicKeyHex":"02ab"}]}`

	t.Run("resolves a document", func(t *testing.T) {
		var gotPath, gotAuth string

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotAuth = r.Header.Get("Authorization")

			_, err := w.Write([]byte(docJSON))
			require.NoError(t, err)
		}))
		defer server.Close()

		resolver, err := httpbinding.New(server.URL, httpbinding.WithResolveAuthToken("secret"))
		require.NoError(t, err)

		doc, err := resolver.Read("did:elem:EiAbc")
		require.NoError(t, err)
		require.Equal(t, "did:elem:EiAbc", doc.ID)
		require.Equal(t, "/did:elem:EiAbc", gotPath)
		require.Equal(t, "Bearer secret", gotAuth)
	})

	t.Run("404 maps to ErrNotFound", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		resolver, err := httpbinding.New(server.URL)
		require.NoError(t, err)

		_, err = resolver.Read("did:elem:missing")
		require.ErrorIs(t, err, vdrapi.ErrNotFound)
	})

	t.Run("other statuses fail", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		resolver, err := httpbinding.New(server.URL)
		require.NoError(t, err)

		_, err = resolver.Read("did:elem:EiAbc")
		require.Error(t, err)
	})
}
