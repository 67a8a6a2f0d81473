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

	"github.com/scc-digitalhub/ddi-cli-sdk/sdk/utils"
)

// Delete removes a dataset by its internal id.
func (s *DatasetService) Delete(ctx context.Context, req DeleteRequest) error {
	if !utils.IsUUID(req.InternalID) {
		return fmt.Errorf("invalid internal id %q", req.InternalID)
	}
	if req.Access == "" || req.Project == "" {
		return errors.New("access and project are required")
	}

	body, err := json.Marshal(map[string]interface{}{
		"access":     req.Access,
		"project":    req.Project,
		"internalID": req.InternalID,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal: %w", err)
	}

	url := s.http.BuildURL(utils.RouteDataset, "", nil)
	if _, err := s.http.Do(ctx, http.MethodDelete, url, body); err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}
	utils.LogDebugf("dataset %s deleted", req.InternalID)
	return nil
}
