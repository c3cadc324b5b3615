package server

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func TestRunStopsWithContext(t *testing.T) {
	addr := freeAddr(t)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	taskDone := make(chan struct{})
	task := func(ctx context.Context) {
		<-ctx.Done()
		close(taskDone)
	}

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- Run(ctx, addr, handler, task) }()

	require.Eventually(t, func() bool {
		res, err := http.Get("http://" + addr)
		if err != nil {
			return false
		}
		res.Body.Close()
		return res.StatusCode == http.StatusNoContent
	}, 2*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(ShutdownTimeout):
		t.Fatal("server did not stop")
	}
	<-taskDone
}

func TestRunCancelsStreamingRequests(t *testing.T) {
	addr := freeAddr(t)
	entered := make(chan struct{}, 1)
	released := make(chan struct{})
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/stream" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.(http.Flusher).Flush()
		entered <- struct{}{}
		<-r.Context().Done()
		close(released)
	})

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- Run(ctx, addr, handler) }()

	require.Eventually(t, func() bool {
		res, err := http.Get("http://" + addr)
		if err != nil {
			return false
		}
		res.Body.Close()
		return res.StatusCode == http.StatusNoContent
	}, 2*time.Second, 20*time.Millisecond)

	res, err := http.Get("http://" + addr + "/stream")
	require.NoError(t, err)
	defer res.Body.Close()
	<-entered

	start := time.Now()
	cancel()

	select {
	case err := <-errc:
		assert.NoError(t, err)
		assert.Less(t, time.Since(start), ShutdownTimeout/2)
	case <-time.After(ShutdownTimeout):
		t.Fatal("server waited on the open stream")
	}
	<-released
}

func TestRunReportsListenError(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	err = Run(context.Background(), l.Addr().String(), http.NotFoundHandler())
	assert.Error(t, err)
}
