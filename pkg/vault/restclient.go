/*
Copyright Identbase Technologies. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package vault

import (
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"

	"github.com/identbase/wallet-sdk-go/pkg/common/log"
)

var logger = log.New("wallet-sdk/vault")

const (
	// pageSize is the fixed window size supported by the remote vault's
	// range reads.
	pageSize = 100

	failSendRequest   = "failed to send %s request: %w"
	failCreateRequest = "failed to create request: %w"
)

// AddHeaders supports adding custom HTTP headers, typically the bearer
// credential and SDK-version header established by the caller.
type AddHeaders func(req *http.Request) (*http.Header, error)

// VaultURL maps an owner region to the vault server base URL.
type VaultURL func(region string) string

// URLTemplate returns a VaultURL substituting the region into a printf style
// template. A template without a verb yields the same URL for every region.
func URLTemplate(template string) VaultURL {
	return func(region string) string {
		return fmt.Sprintf(template, region)
	}
}

// StaticURL returns a VaultURL ignoring the region.
func StaticURL(serverURL string) VaultURL {
	return func(string) string {
		return serverURL
	}
}

type restClient struct {
	serverURL   VaultURL
	httpClient  *http.Client
	headersFunc AddHeaders
}

// readRange requests the records in the inclusive window [start, end]. The
// remote may return fewer records than the window covers, including none.
func (c *restClient) readRange(region string, start, end int) ([]StoredRecord, error) {
	endpoint := fmt.Sprintf("%s/data/%d/%d", c.serverURL(region), start, end)

	statusCode, respBytes, err := c.sendHTTPRequest(http.MethodGet, endpoint)
	if err != nil {
		return nil, fmt.Errorf(failSendRequest, http.MethodGet, err)
	}

	if statusCode != http.StatusOK {
		return nil, newRemoteError(statusCode, respBytes)
	}

	var records []StoredRecord

	if err := json.Unmarshal(respBytes, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal records: %w", err)
	}

	return records, nil
}

// deleteRange deletes the records in the inclusive window [start, end].
// Deleting an already-empty range succeeds.
func (c *restClient) deleteRange(region string, start, end int) error {
	endpoint := fmt.Sprintf("%s/data/%d/%d", c.serverURL(region), start, end)

	statusCode, respBytes, err := c.sendHTTPRequest(http.MethodDelete, endpoint)
	if err != nil {
		return fmt.Errorf(failSendRequest, http.MethodDelete, err)
	}

	if statusCode != http.StatusOK {
		return newRemoteError(statusCode, respBytes)
	}

	return nil
}

// fetchAll reads every record for a region in fixed-size windows starting at
// offset 0. Only an explicitly empty page terminates the read: a short
// non-empty page is a valid intermediate state in the backing store and does
// NOT stop the loop. The second return value is the offset of the last
// non-empty page, 0 when the vault is empty.
func (c *restClient) fetchAll(region string) ([]StoredRecord, int, error) {
	var all []StoredRecord

	lastPageOffset := 0

	for offset := 0; ; offset += pageSize {
		page, err := c.readRange(region, offset, offset+pageSize-1)
		if err != nil {
			return nil, 0, err
		}

		if len(page) == 0 {
			return all, lastPageOffset, nil
		}

		lastPageOffset = offset

		all = append(all, page...)
	}
}

func (c *restClient) sendHTTPRequest(method, endpoint string) (int, []byte, error) {
	req, err := http.NewRequest(method, endpoint, nil)
	if err != nil {
		return -1, nil, fmt.Errorf(failCreateRequest, err)
	}

	if c.headersFunc != nil {
		httpHeaders, errAddHdr := c.headersFunc(req)
		if errAddHdr != nil {
			return -1, nil, fmt.Errorf("add optional request headers error: %w", errAddHdr)
		}

		if httpHeaders != nil {
			req.Header = httpHeaders.Clone()
		}
	}

	resp, err := c.httpClient.Do(req) //nolint: bodyclose
	if err != nil {
		return -1, nil, fmt.Errorf("failed to send request: %w", err)
	}

	defer closeReadCloser(resp.Body)

	respBytes, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return -1, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	logger.Debugf("Sent %s request to %s. Response status code: %d", method, endpoint, resp.StatusCode)

	return resp.StatusCode, respBytes, nil
}

func closeReadCloser(respBody io.ReadCloser) {
	err := respBody.Close()
	if err != nil {
		logger.Errorf("Failed to close response body: %s", err)
	}
}
