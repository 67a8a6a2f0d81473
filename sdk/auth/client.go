// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/scc-digitalhub/ddi-cli-sdk/sdk/config"
)

var (
	// ErrLoginFailed means the identity provider rejected the credentials.
	ErrLoginFailed = errors.New("invalid user credentials, cannot be logged in")
	// ErrRefreshFailed means the refresh grant was rejected, usually
	// because the refresh token is not valid anymore.
	ErrRefreshFailed = errors.New("token refresh failed")
	// ErrSessionExpired means both tokens are past their lifetime and a
	// new login is required.
	ErrSessionExpired = errors.New("session expired, log in again")
)

// grant is the part of the token endpoint reply we keep.
type grant struct {
	AccessToken      string `json:"access_token"`
	RefreshToken     string `json:"refresh_token"`
	ExpiresIn        int64  `json:"expires_in"`
	RefreshExpiresIn int64  `json:"refresh_expires_in"`
}

type tokenClient struct {
	httpClient *http.Client
	conf       config.AuthConfig
}

func newTokenClient(httpClient *http.Client, conf config.AuthConfig) *tokenClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &tokenClient{httpClient: httpClient, conf: conf}
}

func (c *tokenClient) passwordGrant(ctx context.Context, username, password string) (*grant, error) {
	form := url.Values{
		"grant_type": {"password"},
		"client_id":  {c.conf.ClientId},
		"scope":      {"openid"},
		"username":   {username},
		"password":   {password},
	}
	if c.conf.ClientSecret != "" {
		form.Set("client_secret", c.conf.ClientSecret)
	}
	return c.post(ctx, form)
}

func (c *tokenClient) refreshGrant(ctx context.Context, refreshToken string) (*grant, error) {
	form := url.Values{
		"grant_type":    {"refresh_token"},
		"client_id":     {c.conf.ClientId},
		"refresh_token": {refreshToken},
	}
	if c.conf.ClientSecret != "" {
		form.Set("client_secret", c.conf.ClientSecret)
	}
	return c.post(ctx, form)
}

func (c *tokenClient) post(ctx context.Context, form url.Values) (*grant, error) {
	if c.conf.TokenEndpoint == "" {
		return nil, errors.New("token endpoint is not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.conf.TokenEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != 200 {
		var m map[string]interface{}
		if json.Unmarshal(b, &m) == nil {
			if desc, ok := m["error_description"].(string); ok && desc != "" {
				return nil, fmt.Errorf("identity provider responded with: %s - %s", resp.Status, desc)
			}
		}
		return nil, fmt.Errorf("identity provider responded with: %s", resp.Status)
	}

	var g grant
	if err := json.Unmarshal(b, &g); err != nil {
		return nil, fmt.Errorf("undecodable token reply: %w", err)
	}
	if g.AccessToken == "" {
		return nil, errors.New("token reply missing access_token")
	}
	return &g, nil
}
