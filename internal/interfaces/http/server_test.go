package http

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flarelab/combust/internal/config"
)

func TestNewServer_AppliesConfig(t *testing.T) {
	cfg := config.ServerConfig{
		Port:         9090,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 20 * time.Second,
	}
	s := NewServer(cfg, http.NewServeMux(), nil)

	assert.Equal(t, ":9090", s.srv.Addr)
	assert.Equal(t, 15*time.Second, s.srv.ReadTimeout)
	assert.Equal(t, 20*time.Second, s.srv.WriteTimeout)
}

func TestServer_StartAndShutdown(t *testing.T) {
	cfg := config.ServerConfig{
		Port:            0, // any free port
		ShutdownTimeout: 2 * time.Second,
	}
	s := NewServer(cfg, http.NewServeMux(), nil)

	done := make(chan error, 1)
	go func() { done <- s.Start() }()

	// Give the listener a moment to bind before draining it.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, s.Shutdown(context.Background()))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop after shutdown")
	}
}
