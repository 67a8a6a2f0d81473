// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/scc-digitalhub/ddi-cli-sdk/sdk/dirtree"
	"github.com/scc-digitalhub/ddi-cli-sdk/sdk/utils"
)

// Listing fetches the recursive file listing of a dataset as the server
// sends it.
func (s *DatasetService) Listing(ctx context.Context, req ListingRequest) (map[string]interface{}, error) {
	if !utils.IsUUID(req.InternalID) {
		return nil, fmt.Errorf("invalid internal id %q", req.InternalID)
	}
	if req.Access == "" || req.Project == "" {
		return nil, errors.New("access and project are required")
	}

	zone := req.Zone
	if zone == "" {
		zone = s.zone
	}

	body, err := json.Marshal(map[string]interface{}{
		"internalID": req.InternalID,
		"access":     req.Access,
		"project":    req.Project,
		"path":       req.Path,
		"recursive":  true,
		"zone":       zone,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal: %w", err)
	}

	url := s.http.BuildURL(utils.RouteDatasetListing, "", nil)
	out, err := s.http.Do(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, err
	}
	if out.JSON == nil {
		return nil, errors.New("listing reply is not an object")
	}
	return out.JSON, nil
}

// Tree converts the listing into annotated nodes, traversal order.
func (s *DatasetService) Tree(ctx context.Context, req ListingRequest) ([]*dirtree.Node, error) {
	listing, err := s.Listing(ctx, req)
	if err != nil {
		return nil, err
	}
	return dirtree.Build(listing)
}

// Rows flattens the listing into tabular file rows.
func (s *DatasetService) Rows(ctx context.Context, req ListingRequest) ([][]interface{}, error) {
	nodes, err := s.Tree(ctx, req)
	if err != nil {
		return nil, err
	}
	return dirtree.Rows(nodes), nil
}
