// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package staging

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"

	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/scc-digitalhub/ddi-cli-sdk/sdk/utils"
)

// DatasetRef locates one dataset inside the staging area.
type DatasetRef struct {
	Access     string // public | project | user
	Project    string
	InternalID string
	User       string // obbligatorio per access "user"
}

// Prefix assembles the staged path of the dataset. User datasets live under
// the username, project datasets under the project shortname.
func (r DatasetRef) Prefix() (string, error) {
	if !utils.IsUUID(r.InternalID) {
		return "", fmt.Errorf("invalid internal id %q", r.InternalID)
	}

	switch r.Access {
	case utils.AccessUser:
		if r.User == "" {
			return "", errors.New("user access needs a username")
		}
		return "user/" + r.User + "/" + r.InternalID, nil
	case utils.AccessProject:
		if r.Project == "" {
			return "", errors.New("project access needs a project")
		}
		return "project/" + r.Project + "/" + r.InternalID, nil
	case utils.AccessPublic:
		return "public/" + r.InternalID, nil
	}
	return "", fmt.Errorf("unknown access %q", r.Access)
}

// ListDataset lists the staged objects of one dataset.
func (c *Client) ListDataset(ctx context.Context, ref DatasetRef) ([]Object, error) {
	prefix, err := ref.Prefix()
	if err != nil {
		return nil, err
	}
	return c.List(ctx, prefix+"/")
}

// WalkDataset pages over the staged objects of one dataset.
func (c *Client) WalkDataset(ctx context.Context, ref DatasetRef, pageSize int32, fn func(obj s3types.Object) error) error {
	prefix, err := ref.Prefix()
	if err != nil {
		return err
	}
	return c.Walk(ctx, prefix+"/", pageSize, fn)
}

// Download copies one file of the dataset to a local path.
func (c *Client) Download(ctx context.Context, ref DatasetRef, rel, dest string, hook *ProgressHook) error {
	prefix, err := ref.Prefix()
	if err != nil {
		return err
	}
	return c.Get(ctx, path.Join(prefix, rel), dest, hook)
}

// Upload stages a local file into the dataset under the relative path.
func (c *Client) Upload(ctx context.Context, ref DatasetRef, local, rel string, hook *ProgressHook) error {
	prefix, err := ref.Prefix()
	if err != nil {
		return err
	}

	f, err := os.Open(local)
	if err != nil {
		return fmt.Errorf("cannot open %s: %w", local, err)
	}
	defer f.Close()

	return c.Put(ctx, path.Join(prefix, rel), f, hook)
}
