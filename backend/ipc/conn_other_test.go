//go:build !windows

package ipc

import (
	"io"
	"net"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useTempSocket(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "tp")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	old := socketPath
	socketPath = filepath.Join(dir, "s.sock")
	t.Cleanup(func() { socketPath = old })
	return socketPath
}

func TestListenWhileAnotherInstanceServes(t *testing.T) {
	useTempSocket(t)
	running, err := Listen()
	require.NoError(t, err)
	defer running.Close()

	accepted := make(chan net.Conn, 1)
	go func() {
		if c, err := running.Accept(); err == nil {
			accepted <- c
		}
	}()

	_, err = Listen()
	assert.ErrorIs(t, err, syscall.EADDRINUSE)

	// the connection used to detect the running instance is not leaked
	select {
	case c := <-accepted:
		defer c.Close()
		c.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, err := c.Read(make([]byte, 1))
		assert.ErrorIs(t, err, io.EOF)
	case <-time.After(2 * time.Second):
		t.Fatal("running instance was never dialed")
	}
}

func TestListenReplacesStaleSocket(t *testing.T) {
	path := useTempSocket(t)
	crashed, err := net.Listen("unix", path)
	require.NoError(t, err)
	crashed.(*net.UnixListener).SetUnlinkOnClose(false)
	crashed.Close()
	require.FileExists(t, path)

	l, err := Listen()
	require.NoError(t, err)
	defer l.Close()
	assert.Equal(t, path, l.Addr().String())
}
