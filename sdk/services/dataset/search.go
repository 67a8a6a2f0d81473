// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/scc-digitalhub/ddi-cli-sdk/sdk/utils"
)

// Search returns every dataset visible to the token.
func (s *DatasetService) Search(ctx context.Context) ([]Overview, error) {
	url := s.http.BuildURL(utils.RouteDatasetSearch, "", nil)
	out, err := s.http.Do(ctx, http.MethodPost, url, []byte("{}"))
	if err != nil {
		return nil, err
	}

	var entries []map[string]interface{}
	if err := json.Unmarshal(out.Body, &entries); err != nil {
		return nil, fmt.Errorf("json parsing failed: %w", err)
	}

	overviews := make([]Overview, 0, len(entries))
	for _, entry := range entries {
		overviews = append(overviews, decodeOverview(entry))
	}
	return overviews, nil
}

// decodeOverview flattens the metadata/location split of one search entry.
// Scalar fields arrive both as plain strings and as lists, placeholders
// stand in for whatever is missing.
func decodeOverview(entry map[string]interface{}) Overview {
	meta, _ := utils.MapField(entry, "metadata")
	loc, _ := utils.MapField(entry, "location")

	return Overview{
		Title:           scalarOr(meta, utils.Unknown("title"), "title"),
		Access:          stringOr(loc, utils.Unknown("access"), "access"),
		Project:         stringOr(loc, utils.Unknown("project"), "project"),
		Zone:            stringOr(loc, utils.Unknown("zone"), "zone"),
		InternalID:      stringOr(loc, utils.Unknown("internal id"), "internalID", "internal_id"),
		CreationDate:    stringOr(meta, utils.Unknown("creation date"), "CreationDate", "creation_date"),
		Owner:           listOr(meta, utils.Unknown("owner"), "owner"),
		Creator:         listOr(meta, utils.Unknown("creator"), "creator"),
		Contributor:     listOr(meta, utils.Unknown("contributor"), "contributor"),
		Publisher:       listOr(meta, utils.Unknown("publisher"), "publisher"),
		PublicationYear: scalarOr(meta, utils.Unknown("publication year"), "publicationYear"),
		ResourceType:    scalarOr(meta, utils.Unknown("resource type"), "resourceType"),
		Compression:     stringOr(meta, utils.Unknown("compression"), "compression"),
		Encryption:      stringOr(meta, utils.Unknown("encryption"), "encryption"),
		Raw:             entry,
	}
}

func stringOr(m map[string]interface{}, fallback string, keys ...string) string {
	if v, ok := utils.StringField(m, keys...); ok {
		return v
	}
	return fallback
}

// scalarOr joins list values with a space, a one-element list collapses to
// its element.
func scalarOr(m map[string]interface{}, fallback string, keys ...string) string {
	if vals, ok := utils.StringsField(m, keys...); ok {
		return strings.Join(vals, " ")
	}
	return fallback
}

func listOr(m map[string]interface{}, fallback string, keys ...string) []string {
	if vals, ok := utils.StringsField(m, keys...); ok {
		return vals
	}
	return []string{fallback}
}
