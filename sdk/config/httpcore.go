// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/scc-digitalhub/ddi-cli-sdk/sdk/utils"
)

// TokenSource supplies the bearer token for DDI requests and knows how to
// rotate it when the gateway reports it inactive.
type TokenSource interface {
	Token() string
	Refresh(ctx context.Context) error
	Check(ctx context.Context) error
}

// ErrNoRefresh is returned by token sources that cannot rotate their token.
var ErrNoRefresh = errors.New("token refresh not available")

// StaticToken is a fixed bearer token. An inactive-token reply becomes
// terminal because Refresh always fails.
type StaticToken string

func (t StaticToken) Token() string                   { return string(t) }
func (t StaticToken) Refresh(_ context.Context) error { return ErrNoRefresh }
func (t StaticToken) Check(_ context.Context) error   { return nil }

// Outcome is the classified result of one request attempt.
// Solved=false means the token was rotated and the request must be reissued.
type Outcome struct {
	Status int
	Body   []byte
	JSON   map[string]interface{}
	Solved bool
}

type DdiHTTP interface {
	BuildURL(resource, id string, params map[string]string) string
	Do(ctx context.Context, method, url string, data []byte) (*Outcome, error)
	Stream(ctx context.Context, method, url string) (*http.Response, error)
}

type ddiHTTP struct {
	httpClient *http.Client
	ddiConfig  DdiConfig
	tokens     TokenSource
}

func NewDdiHTTP(httpClient *http.Client, ddiConfig DdiConfig, tokens TokenSource) DdiHTTP {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if tokens == nil {
		tokens = StaticToken("")
	}
	return &ddiHTTP{httpClient: httpClient, ddiConfig: ddiConfig, tokens: tokens}
}

func (ddiHTTP *ddiHTTP) BuildURL(resource, id string, params map[string]string) string {
	base := strings.TrimSuffix(ddiHTTP.ddiConfig.BaseURL, "/") + "/" + resource
	if id != "" {
		base += "/" + id
	}
	first := true
	for k, v := range params {
		if v == "" {
			continue
		}
		if first {
			base += "?"
			first = false
		} else {
			base += "&"
		}
		base += fmt.Sprintf("%s=%s", k, v)
	}
	return base
}

// Do issues the request and keeps reissuing it while the outcome is
// unsolved, i.e. after a successful token rotation.
func (ddiHTTP *ddiHTTP) Do(ctx context.Context, method, url string, data []byte) (*Outcome, error) {
	for {
		out, err := ddiHTTP.execute(ctx, method, url, data)
		if err != nil || out.Solved {
			return out, err
		}
	}
}

func (ddiHTTP *ddiHTTP) execute(ctx context.Context, method, url string, data []byte) (*Outcome, error) {
	var body io.Reader
	if data != nil {
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return &Outcome{Solved: true}, err
	}
	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := ddiHTTP.tokens.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := ddiHTTP.httpClient.Do(req)
	if err != nil {
		return &Outcome{Solved: true}, err
	}
	defer resp.Body.Close()

	b, rerr := io.ReadAll(resp.Body)
	if rerr != nil {
		return &Outcome{Status: resp.StatusCode, Solved: true}, rerr
	}

	utils.LogDebugf("%s %s -> %s", method, url, resp.Status)
	return ddiHTTP.outcome(ctx, resp.StatusCode, resp.Status, b)
}

// outcome applies the DDI response contract, shared by Do and Stream:
// - 2xx                  -> solved, JSON view when the body is an object
// - 404 or 5xx           -> solved with error, raw body kept for the caller
// - other non-2xx        -> decode the error document; an inactive token is
//   rotated through the token source and the outcome marked unsolved, any
//   other document (or an undecodable one) is terminal
func (ddiHTTP *ddiHTTP) outcome(ctx context.Context, status int, statusText string, b []byte) (*Outcome, error) {
	out := &Outcome{Status: status, Body: b, Solved: true}

	if status >= 200 && status < 300 {
		var m map[string]interface{}
		if len(b) > 0 && json.Unmarshal(b, &m) == nil {
			out.JSON = m
		}
		return out, nil
	}

	if status == http.StatusNotFound || status >= 500 {
		return out, fmt.Errorf("ddi responded with: %s", statusText)
	}

	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		return out, fmt.Errorf("ddi responded with: %s (undecodable body)", statusText)
	}
	out.JSON = m

	if detail, ok := utils.StringField(m, "errorString", "message"); ok {
		if detail == "Inactive token" {
			if rerr := ddiHTTP.tokens.Refresh(ctx); rerr != nil {
				return out, fmt.Errorf("token refresh failed: %w", rerr)
			}
			out.Solved = false
			return out, nil
		}
		return out, fmt.Errorf("ddi responded with: %s - %s", statusText, detail)
	}
	return out, fmt.Errorf("ddi responded with: %s", statusText)
}

// Stream issues the request and hands the open response body to the caller
// on success. Error replies go through the same contract as Do, including
// the reissue after a token rotation.
func (ddiHTTP *ddiHTTP) Stream(ctx context.Context, method, url string) (*http.Response, error) {
	for {
		req, err := http.NewRequestWithContext(ctx, method, url, nil)
		if err != nil {
			return nil, err
		}
		if tok := ddiHTTP.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}

		resp, err := ddiHTTP.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			utils.LogDebugf("%s %s -> %s", method, url, resp.Status)
			return resp, nil
		}

		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		utils.LogDebugf("%s %s -> %s", method, url, resp.Status)

		if _, err := ddiHTTP.outcome(ctx, resp.StatusCode, resp.Status, b); err != nil {
			return nil, err
		}
		// token rotated, reissue
	}
}
