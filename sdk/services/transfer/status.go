// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package transfer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/scc-digitalhub/ddi-cli-sdk/sdk/utils"
)

// Status lists the upload jobs of the caller's datasets with their current
// staging state.
func (s *TransferService) Status(ctx context.Context) ([]StatusEntry, error) {
	url := s.http.BuildURL(utils.RouteTransferStatus, "", nil)
	out, err := s.http.Do(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("status listing failed: %w", err)
	}

	var raw []map[string]interface{}
	if err := json.Unmarshal(out.Body, &raw); err != nil {
		return nil, fmt.Errorf("undecodable status listing: %w", err)
	}

	entries := make([]StatusEntry, 0, len(raw))
	for _, m := range raw {
		e := StatusEntry{Raw: m}
		e.Filename, _ = utils.StringField(m, "filename")
		e.TaskState, _ = utils.StringField(m, "task_state", "task_status")
		e.TaskResult, _ = utils.StringField(m, "task_result")
		e.DatasetPath, _ = utils.StringField(m, "dataset_path", "path")
		entries = append(entries, e)
	}
	return entries, nil
}
