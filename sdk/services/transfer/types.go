// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package transfer

import (
	"time"

	"github.com/scc-digitalhub/ddi-cli-sdk/sdk/staging"
)

// usata embedded nelle altre request
type DatasetRequest struct {
	Access  string // public | project | user
	Project string
	Zone    string // vuota -> zona configurata
}

type UploadRequest struct {
	DatasetRequest

	Filename string
	FilePath string // local directory holding the file, default "./"
	Path     string // remote path inside the dataset

	Contributor     []string
	Creator         []string
	Owner           []string
	PublicationYear []string
	Publisher       []string
	ResourceType    []string
	Title           []string

	Encryption string // "yes" | "no", default "no"

	ChunkSize  int64
	Retries    int
	RetryDelay time.Duration
	Progress   func(done, total int64)
}

// RewriteRequest uploads into an existing dataset, overwriting files that
// already exist.
type RewriteRequest struct {
	DatasetRequest

	InternalID string
	Title      string
	Filename   string
	FilePath   string
	Path       string
	Encryption string

	ChunkSize  int64
	Retries    int
	RetryDelay time.Duration
	Progress   func(done, total int64)
}

type DownloadRequest struct {
	DatasetRequest

	InternalID  string
	Path        string
	Destination string // default "./download.tar.gz"

	PollRetries int
	PollDelay   time.Duration
	Progress    func(done, total int64)
}

// StatusEntry is one row of the upload status listing.
type StatusEntry struct {
	Filename    string
	TaskState   string
	TaskResult  string
	DatasetPath string
	Raw         map[string]interface{}
}

type StagePutRequest struct {
	Key       string // destination key inside the staging bucket
	LocalPath string
	Hook      *staging.ProgressHook
}

type StageGetRequest struct {
	Key         string
	Destination string // vuota -> basename della key
	Hook        *staging.ProgressHook
}
