// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package workflow

import (
	"context"
	"fmt"
	"testing"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/hacs/hacs/category"
	"github.com/hacs/hacs/check"
	"github.com/hacs/hacs/client"
	"github.com/hacs/hacs/constant"
	"github.com/hacs/hacs/event"
	"github.com/hacs/hacs/registry"
	"github.com/hacs/hacs/storage"
	"github.com/hacs/hacs/types"
)

var exampleMetadata = types.Metadata{
	ID:            42,
	FullName:      "owner/example",
	Description:   "An example integration",
	Topics:        []string{"hacs"},
	DefaultBranch: "main",
}

func TestRegisterRun(t *testing.T) {
	errWrong := fmt.Errorf("something went wrong")
	validTree := []types.TreeFile{
		{Filename: "custom_components/example", Type: types.TreeTypeTree},
		{Filename: "custom_components/example/manifest.json", Type: types.TreeTypeBlob},
	}
	registered := map[string]any{
		"action":     event.ActionRegister,
		"repository": "owner/example",
	}

	type mocks struct {
		client  *client.MockClient
		handler *category.MockHandler
		bus     *event.MockBus
	}
	tests := []struct {
		name           string
		ref            string
		setup          func(mocks)
		want           bool
		wantErr        assert.ErrorAssertionFunc
		wantState      State
		wantRegistered bool
		wantReasons    []string
	}{
		{
			name: "validation fails",
			setup: func(mocks mocks) {
				mocks.handler.EXPECT().PreRegistration(gomock.Any(), gomock.Any()).Return(nil)
				mocks.client.EXPECT().FetchMetadata(gomock.Any(), "owner/example").Return(exampleMetadata, nil).Times(1)
				mocks.client.EXPECT().FetchReleases(gomock.Any(), "owner/example").Return(nil, nil)
				mocks.client.EXPECT().FetchTree(gomock.Any(), "owner/example", "main").
					Return([]types.TreeFile{{Filename: "manifest.json", Type: types.TreeTypeBlob}}, nil)
				mocks.client.EXPECT().LastCommit(gomock.Any(), "owner/example", "main").Return("abc1234", nil)
				mocks.handler.EXPECT().Refresh(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

				// neither commonRegistration nor postRegistration may run
				mocks.bus.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
				mocks.handler.EXPECT().PostRegistration(gomock.Any(), gomock.Any()).Times(0)
			},
			want:        false,
			wantErr:     assert.NoError,
			wantState:   StateAborted,
			wantReasons: []string{"The repository has no integration directory in 'custom_components'"},
		},
		{
			name: "success",
			setup: func(mocks mocks) {
				gomock.InOrder(
					mocks.handler.EXPECT().PreRegistration(gomock.Any(), gomock.Any()).Return(nil),
					mocks.client.EXPECT().FetchMetadata(gomock.Any(), "owner/example").Return(exampleMetadata, nil),
					mocks.client.EXPECT().FetchReleases(gomock.Any(), "owner/example").Return(nil, client.ErrNotFound),
					mocks.client.EXPECT().FetchTree(gomock.Any(), "owner/example", "main").Return(validTree, nil),
					mocks.client.EXPECT().LastCommit(gomock.Any(), "owner/example", "main").Return("abc1234", nil),
					mocks.handler.EXPECT().Refresh(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil),
					mocks.client.EXPECT().FetchMetadata(gomock.Any(), "owner/example").Return(exampleMetadata, nil),
					mocks.bus.EXPECT().Publish(gomock.Any(), constant.RepositoryTopic, registered),
					mocks.handler.EXPECT().PostRegistration(gomock.Any(), gomock.Any()).Return(nil),
				)
			},
			want:           true,
			wantErr:        assert.NoError,
			wantState:      StateDone,
			wantRegistered: true,
		},
		{
			name: "explicit ref",
			ref:  "dev",
			setup: func(mocks mocks) {
				mocks.handler.EXPECT().PreRegistration(gomock.Any(), gomock.Any()).Return(nil)
				mocks.client.EXPECT().FetchMetadata(gomock.Any(), "owner/example").Return(exampleMetadata, nil).Times(2)
				mocks.client.EXPECT().FetchReleases(gomock.Any(), "owner/example").Return(nil, nil)
				mocks.client.EXPECT().FetchTree(gomock.Any(), "owner/example", "dev").Return(validTree, nil)
				mocks.client.EXPECT().LastCommit(gomock.Any(), "owner/example", "main").Return("abc1234", nil)
				mocks.handler.EXPECT().Refresh(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				mocks.bus.EXPECT().Publish(gomock.Any(), constant.RepositoryTopic, registered)
				mocks.handler.EXPECT().PostRegistration(gomock.Any(), gomock.Any()).Return(nil)
			},
			want:           true,
			wantErr:        assert.NoError,
			wantState:      StateDone,
			wantRegistered: true,
		},
		{
			name: "fetch fails",
			setup: func(mocks mocks) {
				mocks.handler.EXPECT().PreRegistration(gomock.Any(), gomock.Any()).Return(nil)
				mocks.client.EXPECT().FetchMetadata(gomock.Any(), "owner/example").Return(types.Metadata{}, errWrong)
			},
			want: false,
			wantErr: func(t assert.TestingT, err error, i ...interface{}) bool {
				return assert.ErrorIs(t, err, errWrong)
			},
			wantState: StateAborted,
		},
		{
			name: "post registration fails",
			setup: func(mocks mocks) {
				mocks.handler.EXPECT().PreRegistration(gomock.Any(), gomock.Any()).Return(nil)
				mocks.client.EXPECT().FetchMetadata(gomock.Any(), "owner/example").Return(exampleMetadata, nil).Times(2)
				mocks.client.EXPECT().FetchReleases(gomock.Any(), "owner/example").Return(nil, nil)
				mocks.client.EXPECT().FetchTree(gomock.Any(), "owner/example", "main").Return(validTree, nil)
				mocks.client.EXPECT().LastCommit(gomock.Any(), "owner/example", "main").Return("abc1234", nil)
				mocks.handler.EXPECT().Refresh(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				mocks.bus.EXPECT().Publish(gomock.Any(), constant.RepositoryTopic, registered)
				mocks.handler.EXPECT().PostRegistration(gomock.Any(), gomock.Any()).Return(errWrong)
			},
			want: false,
			wantErr: func(t assert.TestingT, err error, i ...interface{}) bool {
				return assert.ErrorIs(t, err, errWrong)
			},
			wantState:      StateAborted,
			wantRegistered: true,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mocks := mocks{
				client:  client.NewMockClient(ctrl),
				handler: category.NewMockHandler(ctrl),
				bus:     event.NewMockBus(ctrl),
			}
			test.setup(mocks)

			repositories := registry.New(registry.Config{Storage: storage.NewRepositories(memdb.New())})
			repository := types.NewRepository("owner/example", types.Integration)

			register := NewRegister(RegisterConfig{
				Repository: repository,
				Ref:        test.ref,
				Client:     mocks.client,
				Handler:    mocks.handler,
				Runner:     check.NewRunner(check.RunnerConfig{}),
				Registry:   repositories,
				Bus:        mocks.bus,
			})

			got, err := register.Run(context.Background())
			test.wantErr(t, err)
			assert.Equal(t, test.want, got)
			assert.Equal(t, test.wantState, register.State())
			assert.Equal(t, test.wantRegistered, repositories.IsRegistered("owner/example"))
			if test.wantReasons != nil {
				assert.Equal(t, test.wantReasons, register.Result().Reasons())
			}
			if test.ref != "" {
				assert.Equal(t, test.ref, repository.SelectedTag)
				assert.True(t, repository.ForceBranch)
			}
		})
	}
}

func TestRegisterExecute_ValidationFailed(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := client.NewMockClient(ctrl)
	handler := category.NewMockHandler(ctrl)

	handler.EXPECT().PreRegistration(gomock.Any(), gomock.Any()).Return(nil)
	c.EXPECT().FetchMetadata(gomock.Any(), "owner/example").Return(types.Metadata{ID: 42, FullName: "owner/example", DefaultBranch: "main"}, nil)
	c.EXPECT().FetchReleases(gomock.Any(), "owner/example").Return(nil, nil)
	c.EXPECT().FetchTree(gomock.Any(), "owner/example", "main").Return(nil, nil)
	c.EXPECT().LastCommit(gomock.Any(), "owner/example", "main").Return("abc1234", nil)
	handler.EXPECT().Refresh(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	register := NewRegister(RegisterConfig{
		Repository: types.NewRepository("owner/example", types.Integration),
		Client:     c,
		Handler:    handler,
		Runner:     check.NewRunner(check.RunnerConfig{}),
		Registry:   registry.New(registry.Config{}),
		Bus:        event.NewMockBus(ctrl),
	})

	err := register.Execute(context.Background())
	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.Len(t, register.Result().Reasons(), 3)
}
