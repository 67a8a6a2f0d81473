// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package transfer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/scc-digitalhub/ddi-cli-sdk/sdk/utils"
)

// ErrPollTimeout means the download request never reached a terminal state
// within the poll budget. It is distinct from a server-reported failure and
// carries no server reason.
var ErrPollTimeout = errors.New("download request not ready after maximum retries")

// Download asks the platform to stage a dataset (or a path inside it) into
// an archive, waits for the archive to become ready and streams it to the
// local destination.
func (s *TransferService) Download(ctx context.Context, req DownloadRequest) error {
	if !utils.IsUUID(req.InternalID) {
		return fmt.Errorf("invalid internal id %q", req.InternalID)
	}
	if req.Access == "" || req.Project == "" {
		return errors.New("access and project are required")
	}

	zone := req.Zone
	if zone == "" {
		zone = s.zone
	}

	requestID, err := s.submitDownload(ctx, req, zone)
	if err != nil {
		return err
	}
	utils.LogInfof("download submitted, request %s", requestID)

	if err := s.waitReady(ctx, requestID, req.PollRetries, req.PollDelay); err != nil {
		return err
	}

	dest := orDefault(req.Destination, "./download.tar.gz")
	return s.fetch(ctx, requestID, dest, req.Progress)
}

func (s *TransferService) submitDownload(ctx context.Context, req DownloadRequest, zone string) (string, error) {
	body, err := json.Marshal(map[string]interface{}{
		"zone":        zone,
		"access":      req.Access,
		"project":     req.Project,
		"internal_id": req.InternalID,
		"path":        req.Path,
	})
	if err != nil {
		return "", err
	}

	url := s.http.BuildURL(utils.RouteTransferDown, "", nil)
	out, err := s.http.Do(ctx, http.MethodPost, url, body)
	if err != nil {
		return "", fmt.Errorf("download submit failed: %w", err)
	}

	// the field name depends on the server revision
	id, ok := utils.StringField(out.JSON, "requestId", "request_id")
	if !ok {
		return "", errors.New("download submit reply missing request id")
	}
	return id, nil
}

// waitReady polls the request state until SUCCESS, a server-reported
// failure, or the poll budget runs out. The credential is checked between
// polls so a long wait does not outlive the token.
func (s *TransferService) waitReady(ctx context.Context, requestID string, retries int, delay time.Duration) error {
	if retries <= 0 {
		retries = utils.DefaultPollRetries
	}
	if delay <= 0 {
		delay = utils.DefaultPollDelay
	}

	url := s.http.BuildURL(utils.RouteTransferStatus, requestID, nil)
	for attempt := 0; attempt < retries; attempt++ {
		out, err := s.http.Do(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("download status poll failed: %w", err)
		}

		state, _ := utils.StringField(out.JSON, "task_state")
		switch state {
		case "SUCCESS":
			return nil
		case "ERROR", "FAILURE":
			detail := ""
			if v, ok := out.JSON["task_result"]; ok {
				detail = fmt.Sprint(v)
			}
			return fmt.Errorf("download request %s failed: %s", requestID, detail)
		}

		utils.LogDebugf("download %s not ready yet (attempt %d/%d)", requestID, attempt+1, retries)

		if err := s.tokens.Check(ctx); err != nil {
			return fmt.Errorf("credential check failed: %w", err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return fmt.Errorf("%w (%s)", ErrPollTimeout, requestID)
}

// fetch streams the staged archive to dest. A partially written file is
// left in place when a local write fails.
func (s *TransferService) fetch(ctx context.Context, requestID, dest string, progress func(done, total int64)) error {
	url := s.http.BuildURL(utils.RouteTransferDown, requestID, nil)
	resp, err := s.http.Stream(ctx, http.MethodGet, url)
	if err != nil {
		return fmt.Errorf("download fetch failed: %w", err)
	}
	defer resp.Body.Close()

	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", dest, err)
	}
	defer f.Close()

	// without a length the body goes down in one write and there is no
	// progress to report
	if resp.ContentLength < 0 {
		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("download fetch failed: %w", err)
		}
		if _, err := f.Write(b); err != nil {
			return fmt.Errorf("write to %s failed: %w", dest, err)
		}
		utils.LogInfof("download %s written to %s", requestID, dest)
		return nil
	}

	total := resp.ContentLength
	var written int64
	buf := make([]byte, utils.DownloadChunkSize)
	for {
		n, rerr := resp.Body.Read(buf)
		if n > 0 {
			if _, werr := f.Write(buf[:n]); werr != nil {
				return fmt.Errorf("write to %s failed: %w", dest, werr)
			}
			written += int64(n)
			if progress != nil {
				progress(written, total)
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return fmt.Errorf("download fetch failed: %w", rerr)
		}
	}

	utils.LogInfof("download %s written to %s (%s)", requestID, dest, utils.HumanBytes(written))
	return nil
}
