// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package transfer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/scc-digitalhub/ddi-cli-sdk/sdk/staging"
)

// ErrStagingUnavailable means the service was built without a staging
// endpoint and the direct bucket operations cannot run.
var ErrStagingUnavailable = errors.New("staging is not configured")

// StagePut copies a local file straight into the staging bucket, bypassing
// the tus flow. Useful for data that is already packaged.
func (s *TransferService) StagePut(ctx context.Context, req *StagePutRequest) error {
	if s.staging == nil {
		return ErrStagingUnavailable
	}
	if req.Key == "" || req.LocalPath == "" {
		return errors.New("key and local path are required")
	}

	f, err := os.Open(req.LocalPath)
	if err != nil {
		return fmt.Errorf("cannot open %s: %w", req.LocalPath, err)
	}
	defer f.Close()

	return s.staging.Put(ctx, req.Key, f, req.Hook)
}

// StageGet downloads one staged object to a local file.
func (s *TransferService) StageGet(ctx context.Context, req *StageGetRequest) error {
	if s.staging == nil {
		return ErrStagingUnavailable
	}
	if req.Key == "" {
		return errors.New("key is required")
	}

	dest := req.Destination
	if dest == "" {
		dest = filepath.Base(req.Key)
	}
	return s.staging.Get(ctx, req.Key, dest, req.Hook)
}

// StageList lists the staged objects under a prefix.
func (s *TransferService) StageList(ctx context.Context, prefix string) ([]staging.Object, error) {
	if s.staging == nil {
		return nil, ErrStagingUnavailable
	}
	return s.staging.List(ctx, prefix)
}
