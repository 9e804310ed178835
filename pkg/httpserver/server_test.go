package httpserver_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/uval/pkg/httpserver"
	"github.com/dmitrymomot/uval/pkg/logger"
)

func TestServer_Run(t *testing.T) {
	t.Parallel()

	t.Run("serves until context is cancelled", func(t *testing.T) {
		t.Parallel()
		started := make(chan string, 1)
		srv := httpserver.New(
			httpserver.WithAddr("127.0.0.1:0"),
			httpserver.WithShutdownTimeout(time.Second),
			httpserver.WithStartHook(func(addr string) { started <- addr }),
		)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		done := make(chan error, 1)
		go func() {
			done <- srv.Run(ctx, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("ok"))
			}))
		}()

		var addr string
		select {
		case addr = <-started:
		case <-time.After(2 * time.Second):
			require.Fail(t, "server did not start")
		}

		resp, err := http.Get("http://" + addr)
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.NoError(t, resp.Body.Close())
		assert.Equal(t, "ok", string(body))

		assert.ErrorIs(t, srv.Run(ctx, nil), httpserver.ErrAlreadyRunning)

		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			require.Fail(t, "run did not finish")
		}
	})

	t.Run("fails on invalid address", func(t *testing.T) {
		t.Parallel()
		srv := httpserver.NewFromConfig(httpserver.Config{Addr: "256.0.0.1:-1"})

		err := srv.Run(context.Background(), nil)
		assert.ErrorIs(t, err, httpserver.ErrStart)
	})
}

func TestHealthCheckHandler(t *testing.T) {
	t.Parallel()

	probe := func(h http.Handler) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		return rec
	}

	live := probe(httpserver.HealthCheckHandler(logger.Discard()))
	assert.Equal(t, http.StatusOK, live.Code)
	assert.Equal(t, "ALIVE", live.Body.String())

	ready := probe(httpserver.HealthCheckHandler(logger.Discard(), func(context.Context) error { return nil }))
	assert.Equal(t, "READY", ready.Body.String())

	notReady := probe(httpserver.HealthCheckHandler(logger.Discard(), func(context.Context) error { return errors.New("down") }))
	assert.Equal(t, http.StatusServiceUnavailable, notReady.Code)
	assert.Equal(t, "NOT_READY", notReady.Body.String())
}
