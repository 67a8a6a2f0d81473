// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/scc-digitalhub/ddi-cli-sdk/sdk/utils"
)

// Execute triggers one manual run of a DAG. The caller's parameters are
// passed through as the run conf, extended with the current access token so
// the workflow can reach the datasets of whoever triggered it.
func (s *WorkflowService) Execute(ctx context.Context, req ExecuteRequest) (*ExecuteResult, error) {
	if err := requireID(req.ID); err != nil {
		return nil, err
	}

	runID := req.RunID
	if runID == "" {
		runID = "ddi_exec_" + time.Now().Format(time.RFC3339) + "_" + utils.UUIDv4NoDash()[:8]
	}

	conf := map[string]interface{}{}
	for k, v := range req.Params {
		conf[k] = v
	}
	conf["access_token"] = s.tokens.Token()

	body, err := json.Marshal(map[string]interface{}{
		"conf":       conf,
		"dag_run_id": runID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal: %w", err)
	}

	url := s.http.BuildURL("dags", req.ID, nil) + "/dagRuns"
	out, err := s.http.Do(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("workflow execution failed: %w", err)
	}

	res := &ExecuteResult{Raw: out.JSON}
	if out.JSON != nil {
		res.WorkflowID, _ = utils.StringField(out.JSON, "dag_id")
		res.RunID, _ = utils.StringField(out.JSON, "dag_run_id")
		res.State, _ = utils.StringField(out.JSON, "state")
	}
	utils.LogDebugf("workflow %s triggered as %s", req.ID, res.RunID)
	return res, nil
}
