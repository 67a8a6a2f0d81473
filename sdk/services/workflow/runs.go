// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package workflow

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/scc-digitalhub/ddi-cli-sdk/sdk/utils"
)

// Runs returns the registered runs of a DAG, newest last as the gateway
// lists them.
func (s *WorkflowService) Runs(ctx context.Context, id string) ([]RunState, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}

	url := s.http.BuildURL("dags", id, nil) + "/dagRuns"
	out, err := s.http.Do(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if out.JSON == nil {
		return nil, errors.New("dagRuns reply is not an object")
	}

	runs, _ := utils.ListField(out.JSON, "dag_runs")
	states := make([]RunState, 0, len(runs))
	for _, r := range runs {
		rm, ok := r.(map[string]interface{})
		if !ok {
			continue
		}
		st := RunState{}
		st.RunID, _ = utils.StringField(rm, "dag_run_id")
		st.State, _ = utils.StringField(rm, "state")
		if raw, ok := utils.StringField(rm, "execution_date"); ok {
			st.ExecutionDate = ctime(raw)
		}
		states = append(states, st)
	}
	return states, nil
}

// ctime reformats an RFC3339 stamp the way the platform consoles show it,
// leaving unparseable values alone.
func ctime(raw string) string {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.Format(time.ANSIC)
	}
	return raw
}
