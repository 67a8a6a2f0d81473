// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package tus

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/scc-digitalhub/ddi-cli-sdk/sdk/utils"
)

type State int

const (
	StateNotStarted State = iota
	StateResourceCreated
	StateUploading
	StateComplete
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not started"
	case StateResourceCreated:
		return "resource created"
	case StateUploading:
		return "uploading"
	case StateComplete:
		return "complete"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

type Options struct {
	// ChunkSize in bytes, defaults to utils.DefaultChunkSize.
	ChunkSize int64
	// Retries per chunk, defaults to utils.DefaultUploadRetries.
	Retries int
	// RetryDelay between attempts, defaults to utils.DefaultUploadDelay.
	RetryDelay time.Duration
	// Metadata travels with the creation request.
	Metadata map[string]string
	// Progress, when set, is called with (done, total) after every
	// acknowledged chunk.
	Progress func(done, total int64)
}

// Uploader drives one resumable upload session. The offset always reflects
// the last server-acknowledged byte count, never a locally-summed one.
type Uploader struct {
	transport Transport
	file      *os.File
	size      int64
	opts      Options

	state    State
	resource string
	offset   int64
}

func NewUploader(transport Transport, path string, opts Options) (*Uploader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	if opts.ChunkSize <= 0 {
		opts.ChunkSize = utils.DefaultChunkSize
	}
	if opts.Retries <= 0 {
		opts.Retries = utils.DefaultUploadRetries
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = utils.DefaultUploadDelay
	}

	return &Uploader{
		transport: transport,
		file:      f,
		size:      fi.Size(),
		opts:      opts,
		state:     StateNotStarted,
	}, nil
}

func (u *Uploader) State() State     { return u.state }
func (u *Uploader) Offset() int64    { return u.offset }
func (u *Uploader) Size() int64      { return u.size }
func (u *Uploader) Resource() string { return u.resource }

// Close releases the local file.
func (u *Uploader) Close() error { return u.file.Close() }

// Upload drives the session until the server has acknowledged stopAt
// bytes. stopAt <= 0, or beyond the file, means the whole file. A session
// stopped at a cutoff can be driven further by calling Upload again with a
// higher target, the offset carries over.
func (u *Uploader) Upload(ctx context.Context, stopAt int64) error {
	target := u.size
	if stopAt > 0 && stopAt < u.size {
		target = stopAt
	}

	if u.state == StateNotStarted {
		resource, err := u.transport.Create(ctx, u.size, u.opts.Metadata)
		if err != nil {
			u.state = StateFailed
			return err
		}
		u.resource = resource
		u.offset = 0
		u.state = StateResourceCreated
		utils.LogDebugf("upload resource created at %s", resource)
	}

	u.report()
	for u.offset < target {
		u.state = StateUploading
		if err := u.chunk(ctx); err != nil {
			u.state = StateFailed
			return err
		}
		u.report()
	}

	u.state = StateComplete
	return nil
}

// chunk sends the bytes at the current offset and adopts the server's new
// offset. On failure it waits, asks the server where the upload stands and
// tries again until the per-chunk retry budget runs out.
func (u *Uploader) chunk(ctx context.Context) error {
	buf := make([]byte, u.opts.ChunkSize)
	retried := 0
	resync := false

	for {
		if resync {
			off, err := u.transport.Offset(ctx, u.resource)
			if err != nil {
				if retried >= u.opts.Retries {
					return err
				}
				retried++
				if serr := u.sleep(ctx); serr != nil {
					return serr
				}
				continue
			}
			u.offset = off
			resync = false
		}

		n, err := u.file.ReadAt(buf, u.offset)
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		if n == 0 {
			// offset below size but nothing to read, the file shrank
			return io.ErrUnexpectedEOF
		}

		off, err := u.transport.Patch(ctx, u.resource, u.offset, buf[:n])
		if err == nil {
			u.offset = off
			return nil
		}
		if retried >= u.opts.Retries {
			return err
		}
		retried++
		utils.LogWarnf("chunk at offset %d failed (attempt %d/%d): %v", u.offset, retried, u.opts.Retries, err)
		if serr := u.sleep(ctx); serr != nil {
			return serr
		}
		resync = true
	}
}

func (u *Uploader) sleep(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(u.opts.RetryDelay):
		return nil
	}
}

func (u *Uploader) report() {
	if u.opts.Progress != nil {
		u.opts.Progress(u.offset, u.size)
	}
}
