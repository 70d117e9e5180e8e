/*
Copyright Identbase Technologies. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package userpool

import (
	"errors"
	"fmt"
	"time"

	"github.com/bluele/gcache"
)

const (
	defaultSessionCapacity = 1000
	defaultSessionTTL      = 10 * time.Minute
)

// ErrSessionNotFound signals an unknown or expired challenge session token.
var ErrSessionNotFound = errors.New("challenge session not found")

// ChallengeSession is a pending challenge keyed by the hashed session token.
type ChallengeSession struct {
	Session   string
	Username  string
	CreatedAt time.Time
}

// SessionStore holds pending challenge sessions. Implementations must expire
// entries: pending challenges are abandoned routinely and an unbounded store
// leaks.
type SessionStore interface {
	Put(tokenHash string, session *ChallengeSession) error
	Get(tokenHash string) (*ChallengeSession, error)
	Delete(tokenHash string) error
}

type cacheSessionStore struct {
	cache gcache.Cache
}

// NewSessionStore returns an in-memory session store bounded by capacity and
// TTL.
func NewSessionStore(capacity int, ttl time.Duration) SessionStore {
	return &cacheSessionStore{
		cache: gcache.New(capacity).LRU().Expiration(ttl).Build(),
	}
}

func (s *cacheSessionStore) Put(tokenHash string, session *ChallengeSession) error {
	return s.cache.Set(tokenHash, session)
}

func (s *cacheSessionStore) Get(tokenHash string) (*ChallengeSession, error) {
	value, err := s.cache.Get(tokenHash)
	if err != nil {
		if errors.Is(err, gcache.KeyNotFoundError) {
			return nil, ErrSessionNotFound
		}

		return nil, err
	}

	session, ok := value.(*ChallengeSession)
	if !ok {
		return nil, fmt.Errorf("unexpected session type %T", value)
	}

	return session, nil
}

func (s *cacheSessionStore) Delete(tokenHash string) error {
	s.cache.Remove(tokenHash)

	return nil
}
