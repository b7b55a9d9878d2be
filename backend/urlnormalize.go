package backend

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/torriplayer/torriplayer/backend/player"
)

// NormalizeMediaURI turns a media argument from the command line into
// a source the engine can open from any working directory: URLs are kept
// as given, file:// URLs become paths and relative paths become absolute.
func NormalizeMediaURI(arg string) string {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return ""
	}
	if strings.HasPrefix(arg, "file://") {
		return player.LocalPath(arg)
	}
	if i := strings.Index(arg, "://"); i > 1 {
		return arg
	}
	if _, err := os.Stat(arg); err != nil {
		return arg
	}
	if abs, err := filepath.Abs(arg); err == nil {
		return abs
	}
	return arg
}
