/*
Copyright Identbase Technologies. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package vault

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrCredentialNotFound signals that no decoded credential in the vault
// carries the requested id. It is raised locally, before any delete request
// is sent.
var ErrCredentialNotFound = errors.New("credential not found in vault")

// RemoteError is the structured failure body returned by the vault service on
// any non-2xx response. It is surfaced to the caller verbatim and never
// retried inside this package.
type RemoteError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("vault responded with status %d, code %s: %s", e.Status, e.Code, e.Message)
}

// DecodeError signals a non-null ciphertext that could not be decoded. It
// fails the whole operation: null means skip, garbage means fail.
type DecodeError struct {
	Pos int
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding record at position %d failed: %v", e.Pos, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func newRemoteError(status int, body []byte) *RemoteError {
	remoteErr := &RemoteError{Status: status}

	if err := json.Unmarshal(body, remoteErr); err != nil || remoteErr.Code == "" && remoteErr.Message == "" {
		remoteErr.Message = string(body)
	}

	return remoteErr
}
