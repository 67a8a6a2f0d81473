// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package workflow

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Info fetches the registration record of one DAG.
func (s *WorkflowService) Info(ctx context.Context, id string) (map[string]interface{}, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	return s.getObject(ctx, s.http.BuildURL("dags", id, nil))
}

// Details fetches the full DAG description, including its params.
func (s *WorkflowService) Details(ctx context.Context, id string) (map[string]interface{}, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	return s.getObject(ctx, s.http.BuildURL("dags", id, nil)+"/details")
}

func (s *WorkflowService) getObject(ctx context.Context, url string) (map[string]interface{}, error) {
	out, err := s.http.Do(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if out.JSON == nil {
		return nil, fmt.Errorf("reply from %s is not an object", url)
	}
	return out.JSON, nil
}

func requireID(id string) error {
	if id == "" {
		return errors.New("workflow id not specified")
	}
	return nil
}
