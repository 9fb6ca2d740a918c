// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package event

import "context"

type contextKey struct{}

// NewContext returns a copy of ctx carrying the event being handled.
func NewContext(ctx context.Context, e Event) context.Context {
	return context.WithValue(ctx, contextKey{}, e)
}

// FromContext returns the event ctx was derived for, if any.
func FromContext(ctx context.Context) (Event, bool) {
	e, ok := ctx.Value(contextKey{}).(Event)
	return e, ok
}

// Repository returns the full name an event refers to.
func (e Event) Repository() string {
	fullName, _ := e.Data["repository"].(string)
	return fullName
}
