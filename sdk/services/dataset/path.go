// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"github.com/scc-digitalhub/ddi-cli-sdk/sdk/staging"
	"github.com/scc-digitalhub/ddi-cli-sdk/sdk/utils"
)

// CheckUUID reports whether the internal id has the canonical UUID form.
func CheckUUID(internalID string) bool {
	return utils.IsUUID(internalID)
}

// StagingPath assembles the staged path of an existing dataset. The
// username only matters for user access.
func StagingPath(access, project, internalID, username string) (string, error) {
	return staging.DatasetRef{
		Access:     access,
		Project:    project,
		InternalID: internalID,
		User:       username,
	}.Prefix()
}
