// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package workflow

import "context"

type Executor interface {
	Execute(ctx context.Context, workflow Workflow) error
}
