// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package tus

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/scc-digitalhub/ddi-cli-sdk/sdk/config"
)

// Version is the protocol version sent with every request.
const Version = "1.0.0"

// ErrNoLocation means the server accepted the creation request but did not
// hand back a resource URL.
var ErrNoLocation = errors.New("no upload resource location in reply")

// UploadError carries the last response seen when a chunk exchange failed.
type UploadError struct {
	Status int
	Body   []byte
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload failed with status %d: %s", e.Status, string(e.Body))
}

// Transport is the wire side of a resumable upload.
type Transport interface {
	// Create allocates an upload resource for a file of the given size and
	// returns its absolute URL.
	Create(ctx context.Context, length int64, meta map[string]string) (string, error)
	// Patch sends one chunk at the given offset and returns the server's
	// new authoritative offset.
	Patch(ctx context.Context, resource string, offset int64, chunk []byte) (int64, error)
	// Offset asks the server where the upload currently stands.
	Offset(ctx context.Context, resource string) (int64, error)
}

type httpTransport struct {
	httpClient *http.Client
	base       *url.URL
	tokens     config.TokenSource
}

// NewTransport builds the HTTP transport rooted at the upload endpoint.
func NewTransport(httpClient *http.Client, baseURL string, tokens config.TokenSource) (Transport, error) {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid upload endpoint: %w", err)
	}
	return &httpTransport{httpClient: httpClient, base: base, tokens: tokens}, nil
}

func (t *httpTransport) authorize(req *http.Request) {
	req.Header.Set("Tus-Resumable", Version)
	if t.tokens != nil {
		if tok := t.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}
}

func (t *httpTransport) Create(ctx context.Context, length int64, meta map[string]string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.base.String(), nil)
	if err != nil {
		return "", err
	}
	t.authorize(req)
	req.Header.Set("Upload-Length", strconv.FormatInt(length, 10))
	if len(meta) > 0 {
		req.Header.Set("Upload-Metadata", EncodeMetadata(meta))
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &UploadError{Status: resp.StatusCode, Body: b}
	}

	loc := resp.Header.Get("Location")
	if loc == "" {
		return "", fmt.Errorf("%w (status %d)", ErrNoLocation, resp.StatusCode)
	}
	ref, err := url.Parse(loc)
	if err != nil {
		return "", fmt.Errorf("unusable resource location %q: %w", loc, err)
	}
	return t.base.ResolveReference(ref).String(), nil
}

func (t *httpTransport) Patch(ctx context.Context, resource string, offset int64, chunk []byte) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, resource, bytes.NewReader(chunk))
	if err != nil {
		return 0, err
	}
	t.authorize(req)
	req.Header.Set("Upload-Offset", strconv.FormatInt(offset, 10))
	req.Header.Set("Content-Type", "application/offset+octet-stream")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, &UploadError{Status: resp.StatusCode, Body: b}
	}
	return parseOffset(resp)
}

func (t *httpTransport) Offset(ctx context.Context, resource string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, resource, nil)
	if err != nil {
		return 0, err
	}
	t.authorize(req)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, &UploadError{Status: resp.StatusCode}
	}
	return parseOffset(resp)
}

func parseOffset(resp *http.Response) (int64, error) {
	v := resp.Header.Get("Upload-Offset")
	if v == "" {
		return 0, errors.New("reply missing Upload-Offset header")
	}
	off, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("unusable Upload-Offset %q: %w", v, err)
	}
	return off, nil
}

// EncodeMetadata renders the creation metadata header as comma-separated
// "key base64(value)" pairs, keys sorted for a stable header.
func EncodeMetadata(meta map[string]string) string {
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+base64.StdEncoding.EncodeToString([]byte(meta[k])))
	}
	return strings.Join(parts, ",")
}
