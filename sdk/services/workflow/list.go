// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package workflow

import (
	"context"
	"errors"
	"net/http"

	"github.com/scc-digitalhub/ddi-cli-sdk/sdk/utils"
)

// List returns the DAGs registered on the gateway.
func (s *WorkflowService) List(ctx context.Context) ([]Overview, error) {
	url := s.http.BuildURL("dags", "", nil)
	out, err := s.http.Do(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if out.JSON == nil {
		return nil, errors.New("dags reply is not an object")
	}

	dags, _ := utils.ListField(out.JSON, "dags")
	overviews := make([]Overview, 0, len(dags))
	for _, d := range dags {
		dm, ok := d.(map[string]interface{})
		if !ok {
			continue
		}
		o := Overview{}
		o.ID, _ = utils.StringField(dm, "dag_id")
		o.Description, _ = utils.StringField(dm, "description")
		if paused, ok := dm["is_paused"].(bool); ok {
			o.Paused = paused
		}
		// i tag arrivano come lista di oggetti {name}
		if tags, ok := utils.ListField(dm, "tags"); ok {
			for _, t := range tags {
				if tm, ok := t.(map[string]interface{}); ok {
					if name, ok := utils.StringField(tm, "name"); ok {
						o.Tags = append(o.Tags, name)
					}
				}
			}
		}
		overviews = append(overviews, o)
	}
	return overviews, nil
}
