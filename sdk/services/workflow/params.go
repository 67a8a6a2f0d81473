// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package workflow

import (
	"context"

	"github.com/scc-digitalhub/ddi-cli-sdk/sdk/utils"
)

// Params extracts the default parameters of a DAG from its details. Each
// entry of the params block wraps its default in a {value} object.
func (s *WorkflowService) Params(ctx context.Context, id string) (map[string]interface{}, error) {
	details, err := s.Details(ctx, id)
	if err != nil {
		return nil, err
	}

	defaults := map[string]interface{}{}
	if params, ok := utils.MapField(details, "params"); ok {
		for key, raw := range params {
			if pm, ok := raw.(map[string]interface{}); ok {
				defaults[key] = pm["value"]
			} else {
				defaults[key] = raw
			}
		}
	}
	return defaults, nil
}
