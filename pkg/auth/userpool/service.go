/*
Copyright Identbase Technologies. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package userpool wraps a hosted user-pool identity provider behind a flat
// error-code to result mapping. There is no retry and no state machine here;
// the only state is the pending challenge session store, which is injected
// and TTL bound rather than a process-wide map.
package userpool

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-jose/go-jose/v3"
	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"

	"github.com/identbase/wallet-sdk-go/pkg/common/log"
)

var logger = log.New("wallet-sdk/userpool")

// Tokens issued by the provider on a completed sign-in.
type Tokens struct {
	AccessToken  string
	IDToken      string
	RefreshToken string
}

// Challenge is a pending provider challenge awaiting a confirmation code.
type Challenge struct {
	Session  string
	Username string
}

// Provider is the narrow surface of the hosted identity provider. Failures
// carrying a provider code must return a *ProviderError.
type Provider interface {
	InitiatePasswordlessAuth(username string) (*Challenge, error)
	RespondToChallenge(session, code string) (*Tokens, error)
}

// Client wraps the provider.
type Client struct {
	provider Provider
	sessions SessionStore
}

// Option configures the client.
type Option func(*Client)

// WithSessionStore sets the pending challenge session store.
func WithSessionStore(store SessionStore) Option {
	return func(c *Client) {
		c.sessions = store
	}
}

// New returns a client over the given provider. Without WithSessionStore the
// pending sessions live in a bounded in-memory cache with a 10 minute TTL.
func New(provider Provider, opts ...Option) *Client {
	client := &Client{
		provider: provider,
		sessions: NewSessionStore(defaultSessionCapacity, defaultSessionTTL),
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// StartSignIn begins a passwordless sign-in. On success the returned token
// addresses the pending challenge session for CompleteSignIn.
func (c *Client) StartSignIn(username string) (string, Result, error) {
	challenge, err := c.provider.InitiatePasswordlessAuth(username)
	if err != nil {
		return "", classify(err), err
	}

	token := uuid.NewString()

	session := &ChallengeSession{
		Session:   challenge.Session,
		Username:  challenge.Username,
		CreatedAt: time.Now(),
	}

	if err := c.sessions.Put(hashToken(token), session); err != nil {
		return "", ResultUnknown, fmt.Errorf("store challenge session: %w", err)
	}

	return token, ResultOK, nil
}

// CompleteSignIn answers the pending challenge with the confirmation code.
// An unknown or expired token yields ErrSessionNotFound.
func (c *Client) CompleteSignIn(token, code string) (*Tokens, Result, error) {
	session, err := c.sessions.Get(hashToken(token))
	if err != nil {
		return nil, ResultNotAuthorized, err
	}

	tokens, err := c.provider.RespondToChallenge(session.Session, code)
	if err != nil {
		return nil, classify(err), err
	}

	if err := c.sessions.Delete(hashToken(token)); err != nil {
		logger.Warnf("failed to drop completed challenge session: %v", err)
	}

	return tokens, ResultOK, nil
}

// Claims are the ID token claims this SDK reads.
type Claims struct {
	Subject  string `mapstructure:"sub"`
	Email    string `mapstructure:"email"`
	Username string `mapstructure:"cognito:username"`
}

// ParseIDToken extracts the claims of an ID token without verifying its
// signature. Verification is the provider's concern; callers only use these
// claims for display and routing.
func ParseIDToken(idToken string) (*Claims, error) {
	jws, err := jose.ParseSigned(idToken)
	if err != nil {
		return nil, fmt.Errorf("parse ID token failed: %w", err)
	}

	var rawClaims map[string]interface{}

	if err := json.Unmarshal(jws.UnsafePayloadWithoutVerification(), &rawClaims); err != nil {
		return nil, fmt.Errorf("decode ID token claims failed: %w", err)
	}

	claims := &Claims{}

	if err := mapstructure.Decode(rawClaims, claims); err != nil {
		return nil, fmt.Errorf("map ID token claims failed: %w", err)
	}

	if claims.Subject == "" {
		return nil, errors.New("ID token carries no subject")
	}

	return claims, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))

	return hex.EncodeToString(sum[:])
}
