// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package tus_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scc-digitalhub/ddi-cli-sdk/sdk/tus"
)

// scriptedTransport plays the server side in memory. Patch only accepts a
// chunk whose offset matches the acknowledged byte count, exactly like a
// real resource would.
type scriptedTransport struct {
	created int
	acked   []byte

	// patchFails makes that many Patch calls fail outright.
	patchFails int
	// partialAck makes the next Patch ingest only that many bytes before
	// failing, simulating a lost acknowledgement.
	partialAck int

	patchOffsets []int64
}

func (f *scriptedTransport) Create(_ context.Context, _ int64, _ map[string]string) (string, error) {
	f.created++
	return "fake://upload/1", nil
}

func (f *scriptedTransport) Patch(_ context.Context, _ string, offset int64, chunk []byte) (int64, error) {
	f.patchOffsets = append(f.patchOffsets, offset)
	if offset != int64(len(f.acked)) {
		return 0, fmt.Errorf("offset %d does not match server state %d", offset, len(f.acked))
	}
	if f.partialAck > 0 {
		n := f.partialAck
		if n > len(chunk) {
			n = len(chunk)
		}
		f.acked = append(f.acked, chunk[:n]...)
		f.partialAck = 0
		return 0, errors.New("connection reset")
	}
	if f.patchFails > 0 {
		f.patchFails--
		return 0, errors.New("patch refused")
	}
	f.acked = append(f.acked, chunk...)
	return int64(len(f.acked)), nil
}

func (f *scriptedTransport) Offset(_ context.Context, _ string) (int64, error) {
	return int64(len(f.acked)), nil
}

func tempFile(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "payload.bin")
	require.NoError(t, os.WriteFile(path, content, 0o600))
	return path
}

func TestUploadWholeFile(t *testing.T) {
	content := []byte("0123456789")
	srv := &scriptedTransport{}

	var progress []int64
	up, err := tus.NewUploader(srv, tempFile(t, content), tus.Options{
		ChunkSize:  4,
		RetryDelay: time.Millisecond,
		Progress:   func(done, total int64) { progress = append(progress, done) },
	})
	require.NoError(t, err)
	defer up.Close()

	require.NoError(t, up.Upload(context.Background(), 0))

	assert.Equal(t, tus.StateComplete, up.State())
	assert.Equal(t, 1, srv.created)
	assert.Equal(t, content, srv.acked)
	assert.Equal(t, []int64{0, 4, 8}, srv.patchOffsets)
	assert.Equal(t, []int64{0, 4, 8, 10}, progress)
	assert.EqualValues(t, 10, up.Offset())
}

func TestUploadStopsAtCutoffAndResumes(t *testing.T) {
	content := []byte("0123456789")
	srv := &scriptedTransport{}

	up, err := tus.NewUploader(srv, tempFile(t, content), tus.Options{
		ChunkSize:  4,
		RetryDelay: time.Millisecond,
	})
	require.NoError(t, err)
	defer up.Close()

	// the cutoff lands mid-chunk, so the session stops at the first
	// acknowledged offset past it
	require.NoError(t, up.Upload(context.Background(), 5))
	assert.Equal(t, tus.StateComplete, up.State())
	assert.EqualValues(t, 8, up.Offset())
	assert.Equal(t, content[:8], srv.acked)

	// a second call picks the session up where it stopped
	require.NoError(t, up.Upload(context.Background(), 0))
	assert.Equal(t, tus.StateComplete, up.State())
	assert.EqualValues(t, 10, up.Offset())
	assert.Equal(t, content, srv.acked)
	assert.Equal(t, 1, srv.created)
	assert.Equal(t, []int64{0, 4, 8}, srv.patchOffsets)
}

func TestRetryResumesFromServerOffset(t *testing.T) {
	content := []byte("abcdefgh")
	srv := &scriptedTransport{partialAck: 2}

	up, err := tus.NewUploader(srv, tempFile(t, content), tus.Options{
		ChunkSize:  4,
		Retries:    3,
		RetryDelay: time.Millisecond,
	})
	require.NoError(t, err)
	defer up.Close()

	require.NoError(t, up.Upload(context.Background(), 0))

	// The first chunk lost its ack after 2 ingested bytes. The retry asked
	// the server where it stands and continued from there, so no byte is
	// duplicated or skipped.
	assert.Equal(t, content, srv.acked)
	assert.Equal(t, []int64{0, 2, 6}, srv.patchOffsets)
	assert.Equal(t, 1, srv.created)
	assert.Equal(t, tus.StateComplete, up.State())
}

func TestRetryBudgetExhausted(t *testing.T) {
	srv := &scriptedTransport{patchFails: 10}

	up, err := tus.NewUploader(srv, tempFile(t, []byte("abcd")), tus.Options{
		ChunkSize:  4,
		Retries:    2,
		RetryDelay: time.Millisecond,
	})
	require.NoError(t, err)
	defer up.Close()

	err = up.Upload(context.Background(), 0)
	require.Error(t, err)
	assert.Equal(t, tus.StateFailed, up.State())
	assert.Equal(t, 1, srv.created)
	// first attempt plus two retries
	assert.Len(t, srv.patchOffsets, 3)
}

func TestFileShrankMidUpload(t *testing.T) {
	path := tempFile(t, []byte("abcdef"))
	srv := &scriptedTransport{}

	up, err := tus.NewUploader(srv, path, tus.Options{
		ChunkSize:  4,
		RetryDelay: time.Millisecond,
	})
	require.NoError(t, err)
	defer up.Close()

	// shrink below the declared length after the session was sized
	require.NoError(t, os.Truncate(path, 2))

	err = up.Upload(context.Background(), 0)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Equal(t, tus.StateFailed, up.State())
}

func TestCreateFailureIsTerminal(t *testing.T) {
	up, err := tus.NewUploader(failingCreate{}, tempFile(t, []byte("abcd")), tus.Options{})
	require.NoError(t, err)
	defer up.Close()

	err = up.Upload(context.Background(), 0)
	require.Error(t, err)
	assert.Equal(t, tus.StateFailed, up.State())
}

type failingCreate struct{}

func (failingCreate) Create(context.Context, int64, map[string]string) (string, error) {
	return "", errors.New("no resource for you")
}
func (failingCreate) Patch(context.Context, string, int64, []byte) (int64, error) {
	return 0, errors.New("unreachable")
}
func (failingCreate) Offset(context.Context, string) (int64, error) {
	return 0, errors.New("unreachable")
}
