//go:build !windows

package ipc

import (
	"errors"
	"fmt"
	"net"
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"syscall"
)

// socketPath is initialized based on platform conventions:
//   - $TORRIPLAYER_SOCKET, if set
//   - macOS: ~/Library/Caches/torriplayer/torriplayer.sock
//   - Linux/Unix: $XDG_RUNTIME_DIR/torriplayer.sock
//
// falling back to /tmp/torriplayer-{uid}.sock.
var socketPath = "/tmp/torriplayer.sock"

func init() {
	if p := os.Getenv("TORRIPLAYER_SOCKET"); p != "" {
		socketPath = p
		return
	}
	if runtime.GOOS == "darwin" {
		if home, err := os.UserHomeDir(); err == nil {
			socketPath = filepath.Join(home, "Library", "Caches", "torriplayer", "torriplayer.sock")
			return
		}
	} else if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		socketPath = filepath.Join(dir, "torriplayer.sock")
		return
	}
	if u, err := user.Current(); err == nil {
		socketPath = fmt.Sprintf("/tmp/torriplayer-%s.sock", u.Uid)
	}
}

// Dial establishes a connection to the IPC socket.
// Returns an error if the socket doesn't exist or connection fails.
func Dial() (net.Conn, error) {
	return net.Dial("unix", socketPath)
}

// Listen creates a Unix domain socket listener at the configured path.
// A socket file left behind by a crashed instance is replaced.
// The socket file should be cleaned up with DestroyConn() when done.
func Listen() (net.Listener, error) {
	_ = os.MkdirAll(filepath.Dir(socketPath), 0700)
	l, err := net.Listen("unix", socketPath)
	if errors.Is(err, syscall.EADDRINUSE) {
		conn, dialErr := Dial()
		if dialErr != nil {
			os.Remove(socketPath)
			return net.Listen("unix", socketPath)
		}
		conn.Close()
	}
	return l, err
}

// DestroyConn removes the Unix socket file from the filesystem.
// Should be called during application shutdown.
func DestroyConn() error {
	return os.Remove(socketPath)
}
