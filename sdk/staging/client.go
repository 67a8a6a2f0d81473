// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package staging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/scc-digitalhub/ddi-cli-sdk/sdk/config"
	"github.com/scc-digitalhub/ddi-cli-sdk/sdk/utils"
)

// Client talks to the staging area bucket that backs the datasets.
type Client struct {
	s3     *s3.Client
	bucket string
}

func NewClient(ctx context.Context, conf config.StagingConfig) (*Client, error) {
	if conf.Bucket == "" {
		return nil, errors.New("staging bucket is required")
	}

	creds := aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider(
		conf.AccessKey,
		conf.SecretKey,
		conf.AccessToken,
	))

	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(creds),
		awsconfig.WithRegion(conf.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Options := func(o *s3.Options) {
		if conf.EndpointURL != "" {
			o.BaseEndpoint = aws.String(conf.EndpointURL)
			o.UsePathStyle = true // necessario per molti S3-compat
		}
	}

	return &Client{
		s3:     s3.NewFromConfig(cfg, s3Options),
		bucket: conf.Bucket,
	}, nil
}

// Object is one staged entry under a dataset prefix.
type Object struct {
	Key          string
	Name         string
	Size         int64
	LastModified string
}

/* -------------------- LIST -------------------- */

// List returns every object under the prefix, following pagination.
func (c *Client) List(ctx context.Context, prefix string) ([]Object, error) {
	var all []Object
	var token *string
	max := int32(1000)

	for {
		resp, err := c.s3.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(c.bucket),
			Prefix:            aws.String(prefix),
			MaxKeys:           &max,
			ContinuationToken: token,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list staged objects: %w", err)
		}

		for _, obj := range resp.Contents {
			name := aws.ToString(obj.Key)
			if prefix != "" {
				name = strings.TrimPrefix(name, prefix)
			}
			all = append(all, Object{
				Key:          aws.ToString(obj.Key),
				Name:         name,
				Size:         aws.ToInt64(obj.Size),
				LastModified: obj.LastModified.Format("2006-01-02T15:04:05Z07:00"),
			})
		}

		if resp.NextContinuationToken == nil || *resp.NextContinuationToken == "" {
			break
		}
		token = resp.NextContinuationToken
	}
	return all, nil
}

// Walk visits every non-placeholder object under the prefix, one page at a
// time, stopping on the first callback error.
func (c *Client) Walk(ctx context.Context, prefix string, pageSize int32, fn func(obj s3types.Object) error) error {
	var token *string

	for {
		resp, err := c.s3.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(c.bucket),
			Prefix:            aws.String(prefix),
			MaxKeys:           aws.Int32(pageSize),
			ContinuationToken: token,
		})
		if err != nil {
			return fmt.Errorf("list error: %w", err)
		}

		for _, obj := range resp.Contents {
			// escludi placeholder "cartella"
			if obj.Key != nil && !(strings.HasSuffix(aws.ToString(obj.Key), "/") && aws.ToInt64(obj.Size) == 0) {
				if err := fn(obj); err != nil {
					return err
				}
			}
		}

		if resp.NextContinuationToken == nil || *resp.NextContinuationToken == "" {
			break
		}
		token = resp.NextContinuationToken
	}
	return nil
}

/* -------------------- PROGRESS HOOK -------------------- */

type ProgressHook struct {
	OnStart    func(key string, totalBytes int64)
	OnProgress func(key string, written, totalBytes int64)
	OnDone     func(key string, totalBytes int64, took time.Duration)
}

// ConsoleHook draws the transfer on stderr-friendly progress bars.
func ConsoleHook(prefix string) *ProgressHook {
	return &ProgressHook{
		OnProgress: func(_ string, written, total int64) {
			utils.PrintProgressBar(written, total, prefix, utils.HumanBytes(written))
		},
		OnDone: func(key string, total int64, took time.Duration) {
			utils.PrintProgressBar(total, total, prefix, utils.HumanBytes(total))
			utils.LogInfof("%s transferred in %s", key, took.Round(time.Millisecond))
		},
	}
}

type progressWriter struct {
	key        string
	total      int64
	written    int64
	lastEmit   time.Time
	interval   time.Duration
	onProgress func(key string, written, total int64)
}

func (pw *progressWriter) Write(p []byte) (int, error) {
	n := len(p)
	pw.written += int64(n)
	now := time.Now()
	if pw.onProgress != nil && (pw.written == pw.total || now.Sub(pw.lastEmit) >= pw.interval) {
		pw.onProgress(pw.key, pw.written, pw.total)
		pw.lastEmit = now
	}
	return n, nil
}

/* -------------------- GET -------------------- */

func (c *Client) Get(ctx context.Context, key, localPath string, hook *ProgressHook) error {
	out, err := c.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to get staged object: %w", err)
	}
	defer out.Body.Close()

	total := aws.ToInt64(out.ContentLength)
	if hook != nil && hook.OnStart != nil {
		hook.OnStart(key, total)
	}

	f, err := os.Create(localPath)
	if err != nil {
		return fmt.Errorf("failed to create local file: %w", err)
	}
	defer f.Close()

	pw := &progressWriter{
		key:      key,
		total:    total,
		interval: 250 * time.Millisecond,
	}
	if hook != nil {
		pw.onProgress = hook.OnProgress
	}

	start := time.Now()
	if _, err := io.Copy(f, io.TeeReader(out.Body, pw)); err != nil {
		return fmt.Errorf("failed to write to local file: %w", err)
	}

	if hook != nil && hook.OnDone != nil {
		hook.OnDone(key, total, time.Since(start))
	}
	return nil
}

/* -------------------- PUT -------------------- */

// Put stages a local file under the key. Large files go through the
// multipart manager.
func (c *Client) Put(ctx context.Context, key string, file *os.File, hook *ProgressHook) error {
	const threshold = 100 * 1024 * 1024

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("stat error: %w", err)
	}
	size := info.Size()
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("seek error: %w", err)
	}

	// Detect MIME TYPE
	header := make([]byte, 512)
	n, _ := file.Read(header)
	mime := http.DetectContentType(header[:n])
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewind error: %w", err)
	}

	if hook != nil && hook.OnStart != nil {
		hook.OnStart(key, size)
	}

	pw := &progressWriter{
		key:      key,
		total:    size,
		interval: 250 * time.Millisecond,
	}
	if hook != nil {
		pw.onProgress = hook.OnProgress
	}

	start := time.Now()
	reader := io.TeeReader(file, pw)

	if size > threshold {
		_, err = manager.NewUploader(c.s3).Upload(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(c.bucket),
			Key:         aws.String(key),
			Body:        reader,
			ContentType: aws.String(mime),
		})
	} else {
		_, err = c.s3.PutObject(ctx, &s3.PutObjectInput{
			Bucket:        aws.String(c.bucket),
			Key:           aws.String(key),
			Body:          reader,
			ContentLength: aws.Int64(size),
			ContentType:   aws.String(mime),
		})
	}
	if err != nil {
		return fmt.Errorf("failed to stage %s: %w", key, err)
	}

	if hook != nil && hook.OnDone != nil {
		hook.OnDone(key, size, time.Since(start))
	}
	return nil
}
