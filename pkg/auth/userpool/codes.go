/*
Copyright Identbase Technologies. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package userpool

import (
	"errors"
	"fmt"
)

// Result classifies the outcome of a user-pool call.
type Result int

// Results of user-pool calls.
const (
	ResultOK Result = iota
	ResultUserNotFound
	ResultUserExists
	ResultNotAuthorized
	ResultCodeMismatch
	ResultCodeExpired
	ResultLimitExceeded
	ResultUnknown
)

// ProviderError is a failure reported by the hosted provider with its own
// error code.
type ProviderError struct {
	Code    string
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider error %s: %s", e.Code, e.Message)
}

// resultByCode is the flat provider-code mapping. Codes outside the table map
// to ResultUnknown.
//
//nolint:gochecknoglobals
var resultByCode = map[string]Result{
	"UserNotFoundException":          ResultUserNotFound,
	"UsernameExistsException":        ResultUserExists,
	"NotAuthorizedException":         ResultNotAuthorized,
	"CodeMismatchException":          ResultCodeMismatch,
	"ExpiredCodeException":           ResultCodeExpired,
	"LimitExceededException":         ResultLimitExceeded,
	"TooManyRequestsException":       ResultLimitExceeded,
	"UserNotConfirmedException":      ResultNotAuthorized,
	"InvalidParameterException":      ResultUnknown,
	"InvalidPasswordException":       ResultNotAuthorized,
	"CodeDeliveryFailureException":   ResultUnknown,
	"PasswordResetRequiredException": ResultNotAuthorized,
}

func classify(err error) Result {
	var providerErr *ProviderError

	if !errors.As(err, &providerErr) {
		return ResultUnknown
	}

	if result, ok := resultByCode[providerErr.Code]; ok {
		return result
	}

	return ResultUnknown
}
