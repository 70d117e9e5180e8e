/*
Copyright Identbase Technologies. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package vaultserver provides a mocked credential vault server for testing
// the vault store and transport against real HTTP round trips.
package vaultserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/identbase/wallet-sdk-go/pkg/vault"
)

const (
	startPathVariable = "start"
	endPathVariable   = "end"

	dataEndpoint = "/data/{" + startPathVariable + "}/{" + endPathVariable + "}"
)

// RangeCall records one range-addressed request received by the mock.
type RangeCall struct {
	Start int
	End   int
}

// MockServerOperation represents a mocked vault server that is useful for
// testing. With UseDB set, reads window into Records and deletes remove the
// addressed range; otherwise the canned return values are served.
type MockServerOperation struct {
	T                      *testing.T
	Records                []vault.StoredRecord
	UseDB                  bool
	ReadReturnStatusCode   int
	ReadReturnBody         []byte
	DeleteReturnStatusCode int
	DeleteReturnBody       []byte
	ReadCalls              []RangeCall
	DeleteCalls            []RangeCall
}

// Start the mocked vault server.
func (o *MockServerOperation) Start() *httptest.Server {
	router := mux.NewRouter()

	router.HandleFunc(dataEndpoint, o.mockReadRangeHandler).Methods(http.MethodGet)
	router.HandleFunc(dataEndpoint, o.mockDeleteRangeHandler).Methods(http.MethodDelete)

	return httptest.NewServer(router)
}

func (o *MockServerOperation) mockReadRangeHandler(rw http.ResponseWriter, req *http.Request) {
	start, end := o.rangeVars(req)

	o.ReadCalls = append(o.ReadCalls, RangeCall{Start: start, End: end})

	if !o.UseDB {
		rw.WriteHeader(o.ReadReturnStatusCode)

		_, err := rw.Write(o.ReadReturnBody)
		require.NoError(o.T, err)

		return
	}

	window := make([]vault.StoredRecord, 0)

	for i := start; i <= end && i < len(o.Records); i++ {
		window = append(window, o.Records[i])
	}

	windowBytes, err := json.Marshal(window)
	require.NoError(o.T, err)

	rw.WriteHeader(http.StatusOK)

	_, err = rw.Write(windowBytes)
	require.NoError(o.T, err)
}

func (o *MockServerOperation) mockDeleteRangeHandler(rw http.ResponseWriter, req *http.Request) {
	start, end := o.rangeVars(req)

	o.DeleteCalls = append(o.DeleteCalls, RangeCall{Start: start, End: end})

	if !o.UseDB {
		rw.WriteHeader(o.DeleteReturnStatusCode)

		_, err := rw.Write(o.DeleteReturnBody)
		require.NoError(o.T, err)

		return
	}

	remaining := make([]vault.StoredRecord, 0)

	for i := range o.Records {
		if i >= start && i <= end {
			continue
		}

		remaining = append(remaining, o.Records[i])
	}

	o.Records = remaining

	rw.WriteHeader(http.StatusOK)
}

func (o *MockServerOperation) rangeVars(req *http.Request) (int, int) {
	start, err := strconv.Atoi(mux.Vars(req)[startPathVariable])
	require.NoError(o.T, err)

	end, err := strconv.Atoi(mux.Vars(req)[endPathVariable])
	require.NoError(o.T, err)

	return start, end
}
