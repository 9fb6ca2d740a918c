// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

func TestHandler(t *testing.T) {
	TasksTotal.WithLabelValues("handler_test", OutcomeSuccess).Inc()

	recorder := httptest.NewRecorder()
	Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, Path, nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `hacs_task_executions_total{outcome="success",task="handler_test"} 1`)
	assert.Contains(t, recorder.Body.String(), "hacs_batch_in_flight")
}

func TestServe(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	assert.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, listener, zaptest.NewLogger(t))
	}()

	resp, err := http.Get("http://" + listener.Addr().String() + Path)
	assert.NoError(t, err)
	if err == nil {
		body, err := io.ReadAll(resp.Body)
		assert.NoError(t, err)
		_ = resp.Body.Close()
		assert.Contains(t, string(body), "hacs_batch_in_flight")
	}

	cancel()
	assert.NoError(t, <-done)
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, OutcomeSuccess, Outcome(nil))
	assert.Equal(t, OutcomeFailure, Outcome(io.EOF))
	assert.Equal(t, 1, testutil.CollectAndCount(BatchInFlight))
}
