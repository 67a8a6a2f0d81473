// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package workflow

// Overview is one DAG row of the workflow listing.
type Overview struct {
	ID          string
	Description string
	Paused      bool
	Tags        []string
}

// Request per l'esecuzione manuale di un workflow
type ExecuteRequest struct {
	ID     string
	Params map[string]interface{}

	// RunID overrides the generated dag_run_id.
	RunID string
}

// ExecuteResult carries the run the gateway actually registered.
type ExecuteResult struct {
	WorkflowID string
	RunID      string
	State      string
	Raw        map[string]interface{}
}

// RunState is one registered run of a workflow.
type RunState struct {
	RunID         string
	ExecutionDate string
	State         string
}
