// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package dataset_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchMapsOverview(t *testing.T) {
	payload := `[
	  {
	    "metadata": {
	      "title": ["DS", "one"],
	      "CreationDate": "2024-01-02",
	      "owner": ["o1", "o2"],
	      "creator": "c1",
	      "contributor": ["k1"],
	      "publisher": ["p1"],
	      "publicationYear": "2024",
	      "resourceType": ["Dataset"],
	      "compression": "no",
	      "encryption": "yes"
	    },
	    "location": {
	      "access": "project",
	      "project": "demo",
	      "zone": "MainZone",
	      "internalID": "` + testID + `"
	    }
	  },
	  {}
	]`

	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/dataset/search/metadata", r.URL.Path)
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		_, _ = w.Write([]byte(payload))
	}))
	defer srv.Close()
	s := newTestService(t, srv.URL)

	got, err := s.Search(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "{}", gotBody)

	full := got[0]
	// list-valued scalars collapse to one space-joined string
	assert.Equal(t, "DS one", full.Title)
	assert.Equal(t, "project", full.Access)
	assert.Equal(t, "demo", full.Project)
	assert.Equal(t, "MainZone", full.Zone)
	assert.Equal(t, testID, full.InternalID)
	assert.Equal(t, "2024-01-02", full.CreationDate)
	assert.Equal(t, []string{"o1", "o2"}, full.Owner)
	// scalar list fields get promoted to a one-element list
	assert.Equal(t, []string{"c1"}, full.Creator)
	assert.Equal(t, "2024", full.PublicationYear)
	assert.Equal(t, "Dataset", full.ResourceType)
	assert.Equal(t, "no", full.Compression)
	assert.Equal(t, "yes", full.Encryption)

	empty := got[1]
	assert.Equal(t, "UNKNOWN title", empty.Title)
	assert.Equal(t, "UNKNOWN access", empty.Access)
	assert.Equal(t, "UNKNOWN internal id", empty.InternalID)
	assert.Equal(t, []string{"UNKNOWN owner"}, empty.Owner)
	assert.Equal(t, []string{"UNKNOWN publisher"}, empty.Publisher)
	assert.Equal(t, "UNKNOWN publication year", empty.PublicationYear)
	assert.Equal(t, "UNKNOWN encryption", empty.Encryption)
}

func TestSearchRejectsNonListReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"unexpected": "object"}`))
	}))
	defer srv.Close()
	s := newTestService(t, srv.URL)

	_, err := s.Search(context.Background())
	assert.ErrorContains(t, err, "json parsing failed")
}
