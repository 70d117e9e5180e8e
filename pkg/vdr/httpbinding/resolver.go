/*
Copyright Identbase Technologies. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package httpbinding

import (
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"path"

	diddoc "github.com/identbase/wallet-sdk-go/pkg/doc/did"
	vdrapi "github.com/identbase/wallet-sdk-go/pkg/vdr/api"
)

// resolveDID makes the DID resolution call.
func (v *VDR) resolveDID(uri string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("HTTP create get request failed: %w", err)
	}

	req.Header.Add("Accept", "application/json")

	if v.resolveAuthToken != "" {
		req.Header.Add("Authorization", v.resolveAuthToken)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP Get request failed: %w", err)
	}

	defer closeResponseBody(resp.Body)

	gotBody, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body failed: %w", err)
	}

	if resp.StatusCode == http.StatusOK {
		return gotBody, nil
	} else if resp.StatusCode == http.StatusNotFound {
		return nil, vdrapi.ErrNotFound
	}

	return nil, fmt.Errorf("unsupported response from DID resolver [%v] body [%s]", resp.StatusCode, gotBody)
}

// Read resolves a DID document by appending the DID to the endpoint path.
func (v *VDR) Read(didID string, _ ...vdrapi.ResolveOption) (*diddoc.Doc, error) {
	reqURL, err := url.ParseRequestURI(v.endpointURL)
	if err != nil {
		return nil, fmt.Errorf("url parse request uri failed: %w", err)
	}

	reqURL.Path = path.Join(reqURL.Path, didID)

	data, err := v.resolveDID(reqURL.String())
	if err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return nil, vdrapi.ErrNotFound
	}

	return diddoc.ParseDocument(data)
}
