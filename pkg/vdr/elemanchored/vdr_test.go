/*
Copyright Identbase Technologies. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package elemanchored_test

import (
	"crypto/ed25519"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-jose/go-jose/v3"
	"github.com/stretchr/testify/require"

	diddoc "github.com/identbase/wallet-sdk-go/pkg/doc/did"
	"github.com/identbase/wallet-sdk-go/pkg/kms"
	"github.com/identbase/wallet-sdk-go/pkg/vdr/elemanchored"
)

func TestAccept(t *testing.T) {
	resolver, err := elemanchored.New("https://resolver.example.com", "https://anchor.example.com")
	require.NoError(t, err)

	require.True(t, resolver.Accept(kms.DIDMethodElemAnchored))
	require.False(t, resolver.Accept(kms.DIDMethodElem))
	require.NoError(t, resolver.Close())
}

func TestAnchor(t *testing.T) {
	seed := []byte("0123456789abcdef0123456789abcdef")

	var (
		gotPath        string
		gotContentType string
		gotBody        []byte
	)

	anchorServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")

		body, errRead := ioutil.ReadAll(r.Body)
		require.NoError(t, errRead)

		gotBody = body
	}))
	defer anchorServer.Close()

	resolver, err := elemanchored.New("https://resolver.example.com", anchorServer.URL)
	require.NoError(t, err)

	doc := &diddoc.Doc{ID: "did:elem:EiAbc"}

	require.NoError(t, resolver.Anchor(doc, seed))
	require.Equal(t, "/requests", gotPath)
	require.Equal(t, "application/jose", gotContentType)

	// the posted operation is a JWS over the document, verifiable with the
	// seed's signing key
	jws, err := jose.ParseSigned(string(gotBody))
	require.NoError(t, err)

	signingKey, err := kms.SigningKey(seed)
	require.NoError(t, err)

	payload, err := jws.Verify(signingKey.Public().(ed25519.PublicKey))
	require.NoError(t, err)
	require.Contains(t, string(payload), "did:elem:EiAbc")
}

func TestAnchorFailure(t *testing.T) {
	anchorServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)

		_, err := w.Write([]byte(`{"code":"ANC-1","message":"invalid operation"}`))
		require.NoError(t, err)
	}))
	defer anchorServer.Close()

	resolver, err := elemanchored.New("https://resolver.example.com", anchorServer.URL)
	require.NoError(t, err)

	err = resolver.Anchor(&diddoc.Doc{ID: "did:elem:EiAbc"}, []byte("0123456789abcdef0123456789abcdef"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "ANC-1")
}
