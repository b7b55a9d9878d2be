package util

import (
	"fmt"
	"math"
	"strings"
)

// SecondsToTimeString formats s as m:ss, or h:mm:ss from one hour on.
func SecondsToTimeString(s float64) string {
	if s < 0 || math.IsNaN(s) {
		s = 0
	}
	sec := int(math.Round(s))
	hr := sec / 3600
	sec -= hr * 3600
	min := sec / 60
	sec -= min * 60

	if hr > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hr, min, sec)
	}
	return fmt.Sprintf("%d:%02d", min, sec)
}

// MediaDisplayName returns the last path element of a file path or URL,
// without any query string.
func MediaDisplayName(uri string) string {
	if i := strings.IndexAny(uri, "?#"); i > 0 && strings.Contains(uri, "://") {
		uri = uri[:i]
	}
	uri = strings.TrimRight(uri, `/\`)
	if i := strings.LastIndexAny(uri, `/\`); i >= 0 {
		return uri[i+1:]
	}
	return uri
}
