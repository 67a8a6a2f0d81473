// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package workflow

import (
	"context"
	"errors"

	"github.com/scc-digitalhub/ddi-cli-sdk/sdk/config"
)

type WorkflowService struct {
	http   config.DdiHTTP
	tokens config.TokenSource
}

// NewWorkflowService wires the service to the Airflow gateway that runs the
// platform workflows. Requests go through the same response contract as the
// DDI ones, so an inactive token is rotated here too.
func NewWorkflowService(_ context.Context, conf config.Config, tokens config.TokenSource) (*WorkflowService, error) {
	if conf.Ddi.AirflowBaseURL == "" {
		return nil, errors.New("invalid airflow config")
	}
	if tokens == nil {
		tokens = config.StaticToken(conf.Auth.AccessToken)
	}

	return &WorkflowService{
		http:   config.NewDdiHTTP(nil, config.DdiConfig{BaseURL: conf.Ddi.AirflowBaseURL}, tokens),
		tokens: tokens,
	}, nil
}
