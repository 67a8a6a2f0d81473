// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package dirtree

import (
	"errors"
	"fmt"
	"strings"

	"github.com/scc-digitalhub/ddi-cli-sdk/sdk/utils"
)

// ErrMalformedListing means the listing carries a structurally wrong
// contents field. Missing metadata on a single entry never causes this,
// placeholders are substituted instead.
var ErrMalformedListing = errors.New("malformed listing: contents is not a list")

const (
	branchMiddle = "├──"
	branchLast   = "└──"
	indentLast   = "    "
	indentMore   = "│   "
)

// Node is one entry of a dataset listing, annotated with its position so a
// caller can draw tree lines or flatten the files into rows.
type Node struct {
	Name   string // directory names carry a "/" suffix
	IsDir  bool
	Parent *Node
	IsLast bool
	Depth  int

	Size       interface{} // int64 when known, a placeholder string otherwise
	CreateTime string
	Checksum   string
}

// Build walks one recursive listing depth-first, root first, children in
// listing order. Directories yield before their subtree.
func Build(listing map[string]interface{}) ([]*Node, error) {
	var nodes []*Node
	if err := walk(listing, nil, false, &nodes); err != nil {
		return nil, err
	}
	return nodes, nil
}

func walk(dir map[string]interface{}, parent *Node, isLast bool, out *[]*Node) error {
	node := dirNode(dir, parent, isLast)
	*out = append(*out, node)

	children, ok := dir["contents"].([]interface{})
	if !ok {
		return ErrMalformedListing
	}

	for i, c := range children {
		item, ok := c.(map[string]interface{})
		if !ok {
			return ErrMalformedListing
		}
		last := i == len(children)-1
		if typ, _ := utils.StringField(item, "type"); typ == "directory" {
			if err := walk(item, node, last, out); err != nil {
				return err
			}
		} else {
			*out = append(*out, fileNode(item, node, last))
		}
	}
	return nil
}

func dirNode(dir map[string]interface{}, parent *Node, isLast bool) *Node {
	node := &Node{IsDir: true, Parent: parent, IsLast: isLast}
	if parent != nil {
		node.Depth = parent.Depth + 1
	}
	if name, ok := utils.StringField(dir, "name"); ok {
		node.Name = name + "/"
	} else {
		node.Name = "UNKNOWN_dir/"
	}
	return node
}

func fileNode(file map[string]interface{}, parent *Node, isLast bool) *Node {
	node := &Node{Parent: parent, IsLast: isLast, Depth: parent.Depth + 1}

	if name, ok := utils.StringField(file, "name"); ok {
		node.Name = name
	} else {
		node.Name = utils.Unknown("name")
	}

	if _, ok := file["size"]; ok {
		if size, ok := utils.IntField(file, "size"); ok {
			node.Size = size
		} else {
			node.Size = file["size"]
		}
	} else {
		node.Size = utils.Unknown("size")
	}

	if v, ok := file["create_time"]; ok {
		if s, ok := v.(string); ok {
			node.CreateTime = s
		} else {
			node.CreateTime = fmt.Sprint(v)
		}
	} else {
		node.CreateTime = utils.Unknown("create_time")
	}

	if v, ok := file["checksum"]; ok {
		switch cs := v.(type) {
		case nil:
			node.Checksum = "None"
		case string:
			node.Checksum = cs
		default:
			node.Checksum = fmt.Sprint(cs)
		}
	} else {
		node.Checksum = utils.Unknown("checksum")
	}

	return node
}

// Render draws one tree line. The root renders as its bare name, every
// other node as its branch glyph plus one indent segment per ancestor.
func (n *Node) Render() string {
	if n.Parent == nil {
		return n.Name
	}

	glyph := branchMiddle
	if n.IsLast {
		glyph = branchLast
	}
	parts := []string{fmt.Sprintf("%s %s", glyph, n.Name)}

	for p := n.Parent; p != nil && p.Parent != nil; p = p.Parent {
		if p.IsLast {
			parts = append(parts, indentLast)
		} else {
			parts = append(parts, indentMore)
		}
	}

	var sb strings.Builder
	for i := len(parts) - 1; i >= 0; i-- {
		sb.WriteString(parts[i])
	}
	return sb.String()
}

// Row flattens a file node into [name, path, size, create_time, checksum]
// where path concatenates the directory names from the root down to the
// file's parent. Directory nodes produce no row.
func (n *Node) Row() []interface{} {
	if n.IsDir {
		return nil
	}

	var dirs []string
	for p := n.Parent; p != nil; p = p.Parent {
		dirs = append(dirs, p.Name)
	}
	var path strings.Builder
	for i := len(dirs) - 1; i >= 0; i-- {
		path.WriteString(dirs[i])
	}

	return []interface{}{n.Name, path.String(), n.Size, n.CreateTime, n.Checksum}
}

// Rows returns the file rows of the whole tree in traversal order.
func Rows(nodes []*Node) [][]interface{} {
	rows := make([][]interface{}, 0, len(nodes))
	for _, n := range nodes {
		if r := n.Row(); r != nil {
			rows = append(rows, r)
		}
	}
	return rows
}

// Sprint renders the whole tree as indented text, one node per line.
func Sprint(nodes []*Node) string {
	lines := make([]string, 0, len(nodes))
	for _, n := range nodes {
		lines = append(lines, n.Render())
	}
	return strings.Join(lines, "\n")
}
