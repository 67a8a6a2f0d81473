// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/scc-digitalhub/ddi-cli-sdk/sdk/utils"
)

// Credentials is a concurrency-safe token cell. It implements
// config.TokenSource: the request executor reads the current access token
// and asks for a rotation when the gateway reports it inactive.
type Credentials struct {
	mu     sync.Mutex
	client *tokenClient

	username     string
	accessToken  string
	refreshToken string

	retrievedAt     time.Time
	tokenLifetime   time.Duration
	refreshLifetime time.Duration
}

func (c *Credentials) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessToken
}

// Username reports who the session was opened for.
func (c *Credentials) Username() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.username
}

// RefreshToken returns the current refresh token, e.g. for persisting it.
func (c *Credentials) RefreshToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refreshToken
}

// Refresh rotates the tokens through the refresh grant.
func (c *Credentials) Refresh(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.refreshToken == "" {
		return fmt.Errorf("%w: no refresh token", ErrRefreshFailed)
	}

	g, err := c.client.refreshGrant(ctx, c.refreshToken)
	if err != nil {
		utils.LogErrorf("refresh token probably not valid anymore: %v", err)
		return fmt.Errorf("%w: %v", ErrRefreshFailed, err)
	}
	c.adoptLocked(g)
	utils.LogDebugf("tokens rotated")
	return nil
}

// Check proactively verifies the access token lifetime and rotates it when
// needed. The token expiry is read from the JWT itself when possible, with
// the grant bookkeeping as fallback for opaque tokens.
func (c *Credentials) Check(ctx context.Context) error {
	c.mu.Lock()
	accessExpired := c.expiredLocked(c.accessToken, c.tokenLifetime)
	refreshExpired := c.expiredLocked(c.refreshToken, c.refreshLifetime)
	c.mu.Unlock()

	if !accessExpired {
		return nil
	}
	if refreshExpired {
		return ErrSessionExpired
	}
	return c.Refresh(ctx)
}

// expiredLocked reports whether a token is past its lifetime.
func (c *Credentials) expiredLocked(token string, lifetime time.Duration) bool {
	if token == "" {
		return true
	}
	if exp, err := jwtExpiry(token); err == nil {
		return time.Now().After(exp)
	}
	if lifetime <= 0 {
		// opaque token with no bookkeeping, assume it still works
		return false
	}
	return time.Since(c.retrievedAt) >= lifetime
}

func (c *Credentials) adoptLocked(g *grant) {
	c.accessToken = g.AccessToken
	if g.RefreshToken != "" {
		c.refreshToken = g.RefreshToken
	}
	c.retrievedAt = time.Now()
	c.tokenLifetime = time.Duration(g.ExpiresIn) * time.Second
	c.refreshLifetime = time.Duration(g.RefreshExpiresIn) * time.Second
}

// jwtExpiry extracts the expiry claim without verifying the signature. The
// gateway does the verification, we only need the timestamp.
func jwtExpiry(token string) (time.Time, error) {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	tok, _, err := parser.ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse token: %w", err)
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return time.Time{}, errors.New("invalid token claims")
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return time.Time{}, errors.New("token missing expiration")
	}
	return time.Unix(int64(exp), 0), nil
}
