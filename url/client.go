// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package url

import (
	"context"
	"fmt"
	"time"

	"github.com/cavaliergopher/grab/v3"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const progressInterval = time.Second

var _ Client = &client{}

// Client downloads remote files.
type Client interface {
	// Download writes the body of url to path.
	Download(ctx context.Context, url string, path string) error
}

type ClientConfig struct {
	// Fs receives the downloads, the OS filesystem when nil.
	Fs     afero.Fs
	Logger *zap.Logger
	// UserAgent is sent with every request, grab's default when empty.
	UserAgent string
}

func NewClient(config ClientConfig) Client {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	c := grab.NewClient()
	if config.UserAgent != "" {
		c.UserAgent = config.UserAgent
	}
	fs := config.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &client{
		client: c,
		fs:     fs,
		logger: logger,
	}
}

type client struct {
	client *grab.Client
	fs     afero.Fs
	logger *zap.Logger
}

func (h client) Download(ctx context.Context, url string, path string) error {
	req, err := grab.NewRequest(path, url)
	if err != nil {
		return err
	}
	// grab keeps the body in memory, it is written through fs below
	req.NoStore = true
	req = req.WithContext(ctx)

	h.logger.Debug("downloading", zap.Stringer("url", req.URL()), zap.String("path", path))
	resp := h.client.Do(req)

	t := time.NewTicker(progressInterval)
	defer t.Stop()

Loop:
	for {
		select {
		case <-t.C:
			h.logger.Debug("download progress",
				zap.Stringer("url", req.URL()),
				zap.Int64("transferred", resp.BytesComplete()),
				zap.Int64("size", resp.Size()),
			)
		case <-resp.Done:
			break Loop
		}
	}

	body, err := resp.Open()
	if err != nil {
		return fmt.Errorf("download of %s failed: %w", url, err)
	}
	defer body.Close()

	if err := afero.WriteReader(h.fs, path, body); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	h.logger.Debug("downloaded",
		zap.Stringer("url", req.URL()),
		zap.String("status", resp.HTTPResponse.Status),
		zap.Int64("bytes", resp.BytesComplete()),
	)
	return nil
}
