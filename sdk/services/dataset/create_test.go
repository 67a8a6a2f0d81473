// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package dataset_test

import (
	"context"
	"encoding/json"
	"fmt"
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
	"github.com/scc-digitalhub/ddi-cli-sdk/sdk/services/dataset"
)

const testID = "22222222-3333-4444-5555-666666666666"

func newTestService(t *testing.T, baseURL string) *dataset.DatasetService {
	t.Helper()
	conf := config.Config{Ddi: config.DdiConfig{BaseURL: baseURL}}
	s, err := dataset.NewDatasetService(context.Background(), conf, nil)
	require.NoError(t, err)
	return s
}

func TestCreateSendsDefaults(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/dataset", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		fmt.Fprintf(w, `{"internalID": %q, "title": "Created DS"}`, testID)
	}))
	defer srv.Close()
	s := newTestService(t, srv.URL)

	res, err := s.Create(context.Background(), dataset.CreateRequest{
		ScopeRequest: dataset.ScopeRequest{Access: "project", Project: "demo"},
		Path:         "sub",
	})
	require.NoError(t, err)
	assert.Equal(t, testID, res.InternalID)
	assert.Equal(t, "Created DS", res.Title)

	assert.Equal(t, "empty", got["push_method"])
	assert.Equal(t, "project", got["access"])
	assert.Equal(t, "demo", got["project"])
	assert.Equal(t, "MainZone", got["zone"])
	assert.Equal(t, "sub", got["path"])

	meta, ok := got["metadata"].(map[string]interface{})
	require.True(t, ok)
	title, _ := meta["title"].(string)
	assert.True(t, strings.HasPrefix(title, "UNTITLED_Dataset_"), "title %q", title)
	assert.Equal(t, strconv.Itoa(time.Now().Year()), meta["publicationYear"])
	assert.Equal(t, "UNKNOWN resource type", meta["resourceType"])
	assert.Equal(t, []interface{}{"UNKNOWN contributor"}, meta["contributor"])
	assert.Equal(t, []interface{}{"UNKNOWN owner"}, meta["owner"])
}

func TestCreateFromYAMLFile(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		fmt.Fprintf(w, `{"internalID": %q}`, testID)
	}))
	defer srv.Close()
	s := newTestService(t, srv.URL)

	file := filepath.Join(t.TempDir(), "meta.yaml")
	doc := "title: Sensor sweep\ncreator:\n  - Alice\ncustom:\n  nested: 1\n"
	require.NoError(t, os.WriteFile(file, []byte(doc), 0o600))

	_, err := s.Create(context.Background(), dataset.CreateRequest{
		ScopeRequest: dataset.ScopeRequest{Access: "project", Project: "demo"},
		MetadataFile: file,
	})
	require.NoError(t, err)

	// i campi del file vincono, i default riempiono il resto
	meta, ok := got["metadata"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Sensor sweep", meta["title"])
	assert.Equal(t, []interface{}{"Alice"}, meta["creator"])
	assert.Equal(t, map[string]interface{}{"nested": float64(1)}, meta["custom"])
	assert.Equal(t, strconv.Itoa(time.Now().Year()), meta["publicationYear"])
	assert.Equal(t, []interface{}{"UNKNOWN owner"}, meta["owner"])
}

func TestCreateValidation(t *testing.T) {
	s := newTestService(t, "http://ddi.invalid")

	_, err := s.Create(context.Background(), dataset.CreateRequest{})
	assert.ErrorContains(t, err, "access and project are required")

	_, err = s.Create(context.Background(), dataset.CreateRequest{
		ScopeRequest: dataset.ScopeRequest{Access: "project", Project: "demo"},
		MetadataFile: filepath.Join(t.TempDir(), "missing.yaml"),
	})
	assert.ErrorContains(t, err, "failed to read YAML file")
}
