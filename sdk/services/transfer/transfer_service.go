// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package transfer

import (
	"context"
	"errors"
	"fmt"

	"github.com/scc-digitalhub/ddi-cli-sdk/sdk/config"
	"github.com/scc-digitalhub/ddi-cli-sdk/sdk/staging"
	"github.com/scc-digitalhub/ddi-cli-sdk/sdk/utils"
)

type TransferService struct {
	http    config.DdiHTTP
	tokens  config.TokenSource
	zone    string
	user    string
	staging *staging.Client
}

// NewTransferService wires the service to the DDI gateway. The token source
// is shared with the other services so a refresh triggered here is observed
// everywhere. A nil source falls back to the configured static token.
func NewTransferService(ctx context.Context, conf config.Config, tokens config.TokenSource) (*TransferService, error) {
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

	s := &TransferService{
		http:   config.NewDdiHTTP(nil, conf.Ddi, tokens),
		tokens: tokens,
		zone:   zone,
		user:   conf.Auth.Username,
	}

	if conf.Staging.EndpointURL != "" {
		sc, err := staging.NewClient(ctx, conf.Staging)
		if err != nil {
			return nil, fmt.Errorf("staging init failed: %w", err)
		}
		s.staging = sc
	}
	return s, nil
}

// username prefers the identity the session logged in with over the
// configured one.
func (s *TransferService) username() string {
	if named, ok := s.tokens.(interface{ Username() string }); ok {
		if u := named.Username(); u != "" {
			return u
		}
	}
	return s.user
}
