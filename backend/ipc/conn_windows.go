//go:build windows

package ipc

import (
	"net"
	"os"
	"os/user"
	"regexp"
	"time"

	"github.com/Microsoft/go-winio"
)

var pipeName = `\\.\pipe\torriplayer`

func init() {
	if p := os.Getenv("TORRIPLAYER_SOCKET"); p != "" {
		pipeName = p
		return
	}
	if u, err := user.Current(); err == nil {
		pipeName += regexp.MustCompile(`[^a-zA-Z0-9]+`).ReplaceAllString(u.Username, "")
	}
}

func Dial() (net.Conn, error) {
	timeout := 500 * time.Millisecond
	return winio.DialPipe(pipeName, &timeout)
}

func Listen() (net.Listener, error) {
	// only the creating user may connect
	return winio.ListenPipe(pipeName, &winio.PipeConfig{
		SecurityDescriptor: "D:P(A;;GA;;;OW)",
	})
}

func DestroyConn() error {
	// Windows named pipes automatically clean up
	return nil
}
