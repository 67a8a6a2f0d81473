// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package transfer_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scc-digitalhub/ddi-cli-sdk/sdk/config"
	"github.com/scc-digitalhub/ddi-cli-sdk/sdk/services/transfer"
)

// tusBackend accepts one resumable upload and records what the client sent.
type tusBackend struct {
	meta   string
	length string
	acked  []byte
	off    int64
}

func (b *tusBackend) server(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/transfer/upload/", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		b.meta = r.Header.Get("Upload-Metadata")
		b.length = r.Header.Get("Upload-Length")
		w.Header().Set("Location", "/transfer/upload/res-1")
		w.WriteHeader(http.StatusCreated)
	})
	mux.HandleFunc("/transfer/upload/res-1", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodHead:
			w.Header().Set("Upload-Offset", strconv.FormatInt(b.off, 10))
		case http.MethodPatch:
			data, _ := io.ReadAll(r.Body)
			b.acked = append(b.acked, data...)
			b.off += int64(len(data))
			w.Header().Set("Upload-Offset", strconv.FormatInt(b.off, 10))
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func decodeTusMeta(t *testing.T, header string) map[string]string {
	t.Helper()
	out := map[string]string{}
	for _, pair := range strings.Split(header, ",") {
		k, v, ok := strings.Cut(pair, " ")
		require.True(t, ok, "malformed metadata pair %q", pair)
		raw, err := base64.StdEncoding.DecodeString(v)
		require.NoError(t, err)
		out[k] = string(raw)
	}
	return out
}

func uploadService(t *testing.T, baseURL string) *transfer.TransferService {
	t.Helper()
	conf := config.Config{
		Ddi:  config.DdiConfig{BaseURL: baseURL},
		Auth: config.AuthConfig{Username: "alice"},
	}
	s, err := transfer.NewTransferService(context.Background(), conf, nil)
	require.NoError(t, err)
	return s
}

func writeLocal(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	return dir
}

func TestUploadSendsDatasetMetadata(t *testing.T) {
	backend := &tusBackend{}
	srv := backend.server(t)
	s := uploadService(t, srv.URL)

	dir := writeLocal(t, "data.bin", "0123456789")
	err := s.Upload(context.Background(), transfer.UploadRequest{
		DatasetRequest: transfer.DatasetRequest{Access: "project", Project: "demo"},
		Filename:       "data.bin",
		FilePath:       dir,
		Title:          []string{"My DS"},
		ChunkSize:      4,
		RetryDelay:     time.Millisecond,
	})
	require.NoError(t, err)

	assert.Equal(t, "10", backend.length)
	assert.Equal(t, []byte("0123456789"), backend.acked)

	meta := decodeTusMeta(t, backend.meta)
	assert.Equal(t, "data.bin", meta["filename"])
	assert.Equal(t, "alice", meta["user"])
	assert.Equal(t, "demo", meta["project"])
	assert.Equal(t, "project", meta["access"])
	assert.Equal(t, "MainZone", meta["zone"])
	assert.Equal(t, "no", meta["expand"])
	assert.Equal(t, "no", meta["encryption"])
	assert.Equal(t, "", meta["path"])

	var blob map[string][]string
	require.NoError(t, json.Unmarshal([]byte(meta["metadata"]), &blob))
	assert.Equal(t, []string{"My DS"}, blob["title"])
	assert.Equal(t, []string{"UNKNOWN contributor"}, blob["contributor"])
	assert.Equal(t, []string{strconv.Itoa(time.Now().Year())}, blob["publicationYear"])
}

func TestUploadExpandsArchives(t *testing.T) {
	backend := &tusBackend{}
	srv := backend.server(t)
	s := uploadService(t, srv.URL)

	dir := writeLocal(t, "tree.tar.gz", "x")
	err := s.Upload(context.Background(), transfer.UploadRequest{
		DatasetRequest: transfer.DatasetRequest{Access: "project", Project: "demo"},
		Filename:       "tree.tar.gz",
		FilePath:       dir,
	})
	require.NoError(t, err)

	meta := decodeTusMeta(t, backend.meta)
	assert.Equal(t, "yes", meta["expand"])
}

func TestRewriteTargetsExistingDataset(t *testing.T) {
	backend := &tusBackend{}
	srv := backend.server(t)
	s := uploadService(t, srv.URL)

	dir := writeLocal(t, "data.bin", "fresh")
	err := s.Rewrite(context.Background(), transfer.RewriteRequest{
		DatasetRequest: transfer.DatasetRequest{Access: "project", Project: "demo"},
		InternalID:     testInternalID,
		Title:          "T2",
		Filename:       "data.bin",
		FilePath:       dir,
	})
	require.NoError(t, err)

	meta := decodeTusMeta(t, backend.meta)
	assert.Equal(t, testInternalID, meta["internal_id"])

	var blob map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(meta["metadata"]), &blob))
	assert.Equal(t, map[string]interface{}{"title": "T2"}, blob)
}

func TestUploadValidation(t *testing.T) {
	s := uploadService(t, "http://ddi.invalid")

	err := s.Upload(context.Background(), transfer.UploadRequest{
		DatasetRequest: transfer.DatasetRequest{Access: "project", Project: "demo"},
	})
	assert.ErrorContains(t, err, "filename is required")

	err = s.Rewrite(context.Background(), transfer.RewriteRequest{
		DatasetRequest: transfer.DatasetRequest{Access: "project", Project: "demo"},
		Filename:       "f.bin",
	})
	assert.ErrorContains(t, err, "internal id is required")
}
