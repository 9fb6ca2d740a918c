// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package types

// Stage is a lifecycle phase of the host application.
type Stage string

const (
	StageSetup      Stage = "setup"
	StageStartup    Stage = "startup"
	StageWaiting    Stage = "waiting"
	StageRunning    Stage = "running"
	StageBackground Stage = "background"
)
