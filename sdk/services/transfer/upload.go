// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package transfer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/scc-digitalhub/ddi-cli-sdk/sdk/tus"
	"github.com/scc-digitalhub/ddi-cli-sdk/sdk/utils"
)

// Upload creates a new dataset and streams a local file (or a .tar.gz tree,
// expanded server side) into it.
func (s *TransferService) Upload(ctx context.Context, req UploadRequest) error {
	if req.Filename == "" {
		return errors.New("filename is required")
	}
	if req.Access == "" || req.Project == "" {
		return errors.New("access and project are required")
	}

	zone := req.Zone
	if zone == "" {
		zone = s.zone
	}
	local := filepath.Join(orDefault(req.FilePath, "./"), req.Filename)

	blob, err := json.Marshal(map[string]interface{}{
		"contributor":     orList(req.Contributor, utils.Unknown("contributor")),
		"creator":         orList(req.Creator, utils.Unknown("creator")),
		"owner":           orList(req.Owner, utils.Unknown("owner")),
		"publicationYear": orList(req.PublicationYear, strconv.Itoa(time.Now().Year())),
		"publisher":       orList(req.Publisher, utils.Unknown("publisher")),
		"resourceType":    orList(req.ResourceType, utils.Unknown("resource type")),
		"title":           orList(req.Title, "UNTITLED_TUS_Dataset_"+time.Now().Format("02-01-2006_15:04:05")),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal dataset metadata: %w", err)
	}

	meta := map[string]string{
		"path":       req.Path,
		"zone":       zone,
		"filename":   req.Filename,
		"user":       s.username(),
		"project":    req.Project,
		"access":     req.Access,
		"expand":     expandFlag(local),
		"encryption": orDefault(req.Encryption, "no"),
		"metadata":   string(blob),
	}

	return s.tusUpload(ctx, local, meta, req.ChunkSize, req.Retries, req.RetryDelay, req.Progress)
}

// Rewrite streams a file into an existing dataset, overwriting whatever is
// already stored under the same path.
func (s *TransferService) Rewrite(ctx context.Context, req RewriteRequest) error {
	if req.InternalID == "" {
		return errors.New("internal id is required")
	}
	if req.Filename == "" {
		return errors.New("filename is required")
	}
	if req.Access == "" || req.Project == "" {
		return errors.New("access and project are required")
	}

	zone := req.Zone
	if zone == "" {
		zone = s.zone
	}
	local := filepath.Join(orDefault(req.FilePath, "./"), req.Filename)

	blob, err := json.Marshal(map[string]interface{}{
		"title": req.Title,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal dataset metadata: %w", err)
	}

	meta := map[string]string{
		"filename":    req.Filename,
		"project":     req.Project,
		"access":      req.Access,
		"zone":        zone,
		"metadata":    string(blob),
		"encryption":  orDefault(req.Encryption, "no"),
		"expand":      expandFlag(local),
		"path":        req.Path,
		"internal_id": req.InternalID,
	}

	return s.tusUpload(ctx, local, meta, req.ChunkSize, req.Retries, req.RetryDelay, req.Progress)
}

func (s *TransferService) tusUpload(ctx context.Context, local string, meta map[string]string, chunkSize int64, retries int, delay time.Duration, progress func(done, total int64)) error {
	utils.LogDebugf("initialising upload of %s", local)

	// make sure the token is alive before the first chunk goes out
	if err := s.tokens.Check(ctx); err != nil {
		return fmt.Errorf("credential check failed: %w", err)
	}

	transport, err := tus.NewTransport(nil, s.http.BuildURL(utils.RouteTransferUpload, "", nil), s.tokens)
	if err != nil {
		return err
	}

	up, err := tus.NewUploader(transport, local, tus.Options{
		ChunkSize:  chunkSize,
		Retries:    retries,
		RetryDelay: delay,
		Metadata:   meta,
		Progress:   progress,
	})
	if err != nil {
		return err
	}
	defer up.Close()

	if err := up.Upload(ctx, 0); err != nil {
		return fmt.Errorf("upload of %s failed: %w", meta["filename"], err)
	}
	utils.LogInfof("upload of %s complete", meta["filename"])
	return nil
}

/* ---- helpers ---- */

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func orList(v []string, def string) []string {
	if len(v) == 0 {
		return []string{def}
	}
	return v
}

// an archive gets expanded into a directory tree server side
func expandFlag(path string) string {
	if strings.Contains(path, ".tar.gz") {
		return "yes"
	}
	return "no"
}
