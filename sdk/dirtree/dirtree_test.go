// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package dirtree_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scc-digitalhub/ddi-cli-sdk/sdk/dirtree"
)

func decode(t *testing.T, raw string) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(raw), &m))
	return m
}

func TestBuildRowsAndRender(t *testing.T) {
	listing := decode(t, `{
		"name": "root",
		"type": "directory",
		"contents": [
			{"name": "a.txt", "type": "file", "size": 10, "create_time": "T", "checksum": "c"},
			{"name": "sub", "type": "directory", "contents": [
				{"name": "b.txt", "type": "file", "size": 5, "create_time": "T2", "checksum": "c2"}
			]}
		]
	}`)

	nodes, err := dirtree.Build(listing)
	require.NoError(t, err)
	require.Len(t, nodes, 4)

	rows := dirtree.Rows(nodes)
	require.Len(t, rows, 2)
	assert.Equal(t, []interface{}{"a.txt", "root/", int64(10), "T", "c"}, rows[0])
	assert.Equal(t, []interface{}{"b.txt", "root/sub/", int64(5), "T2", "c2"}, rows[1])

	assert.Equal(t, "root/", nodes[0].Render())
	assert.Equal(t, "├── a.txt", nodes[1].Render())
	assert.Equal(t, "└── sub/", nodes[2].Render())
	assert.Equal(t, "    └── b.txt", nodes[3].Render())

	assert.Equal(t, "root/\n├── a.txt\n└── sub/\n    └── b.txt", dirtree.Sprint(nodes))
}

func TestRenderDeepPrefixes(t *testing.T) {
	listing := decode(t, `{
		"name": "root",
		"type": "directory",
		"contents": [
			{"name": "d1", "type": "directory", "contents": [
				{"name": "inner", "type": "directory", "contents": [
					{"name": "deep.txt", "type": "file", "size": 1, "create_time": "T", "checksum": "x"}
				]}
			]},
			{"name": "tail.txt", "type": "file", "size": 2, "create_time": "T", "checksum": "y"}
		]
	}`)

	nodes, err := dirtree.Build(listing)
	require.NoError(t, err)
	require.Len(t, nodes, 5)

	// d1 has a sibling after it, so its subtree is drawn with a pipe.
	assert.Equal(t, "├── d1/", nodes[1].Render())
	assert.Equal(t, "│   └── inner/", nodes[2].Render())
	assert.Equal(t, "│       └── deep.txt", nodes[3].Render())
	assert.Equal(t, "└── tail.txt", nodes[4].Render())

	rows := dirtree.Rows(nodes)
	require.Len(t, rows, 2)
	assert.Equal(t, "root/d1/inner/", rows[0][1])
	assert.Equal(t, "root/", rows[1][1])
}

func TestPlaceholdersAndNullChecksum(t *testing.T) {
	listing := decode(t, `{
		"type": "directory",
		"contents": [
			{"type": "file"},
			{"name": "c.txt", "type": "file", "size": 3, "create_time": "T", "checksum": null}
		]
	}`)

	nodes, err := dirtree.Build(listing)
	require.NoError(t, err)
	assert.Equal(t, "UNKNOWN_dir/", nodes[0].Name)

	rows := dirtree.Rows(nodes)
	require.Len(t, rows, 2)
	assert.Equal(t, []interface{}{
		"UNKNOWN name", "UNKNOWN_dir/", "UNKNOWN size", "UNKNOWN create_time", "UNKNOWN checksum",
	}, rows[0])
	// checksum present but null renders as the literal None
	assert.Equal(t, "None", rows[1][4])
}

func TestMalformedListing(t *testing.T) {
	_, err := dirtree.Build(map[string]interface{}{"name": "root", "type": "directory"})
	assert.ErrorIs(t, err, dirtree.ErrMalformedListing)

	bad := decode(t, `{"name": "root", "type": "directory", "contents": ["nope"]}`)
	_, err = dirtree.Build(bad)
	assert.ErrorIs(t, err, dirtree.ErrMalformedListing)
}
