/*
Copyright Identbase Technologies. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package elemanchored resolves did:elem documents like package elem and
// additionally anchors them through the anchoring service. It is selected by
// the elem-anchored key context tag.
package elemanchored

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"path"

	"github.com/go-jose/go-jose/v3"
	"github.com/pkg/errors"

	"github.com/identbase/wallet-sdk-go/pkg/common/log"
	diddoc "github.com/identbase/wallet-sdk-go/pkg/doc/did"
	"github.com/identbase/wallet-sdk-go/pkg/kms"
	vdrapi "github.com/identbase/wallet-sdk-go/pkg/vdr/api"
	"github.com/identbase/wallet-sdk-go/pkg/vdr/httpbinding"
)

var logger = log.New("wallet-sdk/vdr/elemanchored")

// MethodName is the key context tag this resolver accepts. The DIDs it reads
// and anchors are regular did:elem identifiers.
const MethodName = "elem-anchored"

// VDR resolves elem documents and anchors them through the anchoring service.
type VDR struct {
	resolver  *httpbinding.VDR
	anchorURL string
	client    *http.Client
}

// Option configures the anchored resolver.
type Option func(opts *VDR)

// WithHTTPClient sets a custom http client for anchoring requests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(opts *VDR) {
		opts.client = httpClient
	}
}

// New creates the anchored elem resolver. resolverURL serves document reads,
// anchorURL receives anchoring requests.
func New(resolverURL, anchorURL string, opts ...Option) (*VDR, error) {
	base, err := httpbinding.New(resolverURL, httpbinding.WithAccept(func(method string) bool {
		return method == MethodName
	}))
	if err != nil {
		return nil, errors.Wrap(err, "creating elem-anchored resolver")
	}

	if _, err := url.ParseRequestURI(anchorURL); err != nil {
		return nil, fmt.Errorf("anchor URL invalid: %w", err)
	}

	v := &VDR{resolver: base, anchorURL: anchorURL, client: &http.Client{}}

	for _, opt := range opts {
		opt(v)
	}

	return v, nil
}

// Accept reports whether this resolver handles the method tag.
func (v *VDR) Accept(method string) bool {
	return v.resolver.Accept(method)
}

// Read resolves a DID document through the resolver endpoint.
func (v *VDR) Read(didID string, opts ...vdrapi.ResolveOption) (*diddoc.Doc, error) {
	return v.resolver.Read(didID, opts...)
}

// Close frees resources being maintained by the resolver.
func (v *VDR) Close() error {
	return v.resolver.Close()
}

// Anchor signs the document with the seed's signing key and posts the
// operation to the anchoring service. The service's own processing is
// asynchronous; a 200 response only acknowledges the request.
func (v *VDR) Anchor(doc *diddoc.Doc, seed []byte) error {
	docBytes, err := doc.JSONBytes()
	if err != nil {
		return err
	}

	signingKey, err := kms.SigningKey(seed)
	if err != nil {
		return errors.Wrap(err, "loading anchoring key")
	}

	signer, err := jose.NewSigner(jose.SigningKey{Algorithm: jose.EdDSA, Key: signingKey}, nil)
	if err != nil {
		return errors.Wrap(err, "creating anchoring signer")
	}

	jws, err := signer.Sign(docBytes)
	if err != nil {
		return errors.Wrap(err, "signing anchoring operation")
	}

	operation, err := jws.CompactSerialize()
	if err != nil {
		return errors.Wrap(err, "serializing anchoring operation")
	}

	return v.postOperation(operation)
}

func (v *VDR) postOperation(operation string) error {
	reqURL, err := url.ParseRequestURI(v.anchorURL)
	if err != nil {
		return fmt.Errorf("url parse request uri failed: %w", err)
	}

	reqURL.Path = path.Join(reqURL.Path, "requests")

	resp, err := v.client.Post(reqURL.String(), "application/jose", bytes.NewBufferString(operation))
	if err != nil {
		return fmt.Errorf("HTTP Post request failed: %w", err)
	}

	defer func() {
		if errClose := resp.Body.Close(); errClose != nil {
			logger.Errorf("Failed to close response body: %v", errClose)
		}
	}()

	respBytes, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unsupported response from anchoring service [%v] body [%s]", resp.StatusCode, respBytes)
	}

	return nil
}
