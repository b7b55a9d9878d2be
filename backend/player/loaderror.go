package player

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// ClassifyLoadFailure returns the error kind and user-facing message
// for a source the engine gave up on before it finished loading.
func ClassifyLoadFailure(source string) (ErrorKind, string) {
	if u, err := url.Parse(source); err == nil && u.Scheme != "" && u.Scheme != "file" && len(u.Scheme) > 1 {
		return NetworkError, fmt.Sprintf("Could not open %s", source)
	}

	path := LocalPath(source)
	_, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return ResourceError, fmt.Sprintf("File not found: %s", path)
	case errors.Is(err, fs.ErrPermission):
		return AccessDeniedError, fmt.Sprintf("Access denied: %s", path)
	case err != nil:
		return ResourceError, fmt.Sprintf("Could not open %s: %v", path, err)
	}
	return FormatError, fmt.Sprintf("Could not decode %s", filepath.Base(path))
}

// LocalPath strips a file:// scheme from source, if present.
func LocalPath(source string) string {
	if strings.HasPrefix(source, "file://") {
		if u, err := url.Parse(source); err == nil {
			return filepath.FromSlash(u.Path)
		}
	}
	return source
}
