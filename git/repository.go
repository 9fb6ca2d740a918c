// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package git

import (
	"context"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/storage/memory"
)

var _ Repository = &Remote{}

// Repository resolves refs of a remote repository without cloning it.
type Repository interface {
	Head(ctx context.Context, url string, branch string) (plumbing.Hash, error)
}

type RemoteConfig struct {
	// Auth is optional. Public repositories resolve anonymously.
	Auth *http.BasicAuth
}

func NewRemote(config RemoteConfig) *Remote {
	return &Remote{auth: config.Auth}
}

type Remote struct {
	auth *http.BasicAuth
}

// Head lists the remote refs and returns the commit the branch points at.
func (r Remote) Head(ctx context.Context, url string, branch string) (plumbing.Hash, error) {
	remote := git.NewRemote(memory.NewStorage(), &config.RemoteConfig{
		Name: "origin",
		URLs: []string{url},
	})

	var auth transport.AuthMethod
	if r.auth != nil && r.auth.Password != "" {
		auth = r.auth
	}

	refs, err := remote.ListContext(ctx, &git.ListOptions{Auth: auth})
	if err != nil {
		return plumbing.ZeroHash, err
	}

	want := plumbing.NewBranchReferenceName(branch)
	for _, ref := range refs {
		if ref.Name() == want {
			return ref.Hash(), nil
		}
	}

	return plumbing.ZeroHash, fmt.Errorf("branch %s not found on %s", branch, url)
}
