// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"context"
	"errors"

	"github.com/scc-digitalhub/ddi-cli-sdk/sdk/config"
	"github.com/scc-digitalhub/ddi-cli-sdk/sdk/utils"
)

type DatasetService struct {
	http config.DdiHTTP
	zone string
}

// NewDatasetService wires the service to the DDI gateway. The token source
// is shared with the other services, a nil one falls back to the configured
// static token.
func NewDatasetService(_ context.Context, conf config.Config, tokens config.TokenSource) (*DatasetService, error) {
	if conf.Ddi.BaseURL == "" {
		return nil, errors.New("invalid ddi config")
	}
	if tokens == nil {
		tokens = config.StaticToken(conf.Auth.AccessToken)
	}

	zone := conf.Ddi.Zone
	if zone == "" {
		zone = utils.DefaultZone
	}

	return &DatasetService{
		http: config.NewDdiHTTP(nil, conf.Ddi, tokens),
		zone: zone,
	}, nil
}
