// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package staging_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scc-digitalhub/ddi-cli-sdk/sdk/staging"
)

const stagedID = "33333333-4444-5555-6666-777777777777"

func TestDatasetRefPrefix(t *testing.T) {
	cases := []struct {
		name string
		ref  staging.DatasetRef
		want string
		err  string
	}{
		{
			name: "user dataset",
			ref:  staging.DatasetRef{Access: "user", InternalID: stagedID, User: "alice"},
			want: "user/alice/" + stagedID,
		},
		{
			name: "project dataset",
			ref:  staging.DatasetRef{Access: "project", Project: "demo", InternalID: stagedID},
			want: "project/demo/" + stagedID,
		},
		{
			name: "public dataset",
			ref:  staging.DatasetRef{Access: "public", InternalID: stagedID},
			want: "public/" + stagedID,
		},
		{
			name: "bad internal id",
			ref:  staging.DatasetRef{Access: "public", InternalID: "nope"},
			err:  "invalid internal id",
		},
		{
			name: "user access without username",
			ref:  staging.DatasetRef{Access: "user", InternalID: stagedID},
			err:  "user access needs a username",
		},
		{
			name: "project access without project",
			ref:  staging.DatasetRef{Access: "project", InternalID: stagedID},
			err:  "project access needs a project",
		},
		{
			name: "unknown access",
			ref:  staging.DatasetRef{Access: "shared", InternalID: stagedID},
			err:  "unknown access",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.ref.Prefix()
			if tc.err != "" {
				assert.ErrorContains(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
