package ipc

import (
	"fmt"
	"net/url"
)

const (
	PingPath   = "/ping"
	PlayPath   = "/transport/play"
	PausePath  = "/transport/pause"
	StopPath   = "/transport/stop"
	OpenPath   = "/transport/open" // ?uri=<media path or URL>
	VolumePath = "/volume"         // ?v=<vol>
	ShowPath   = "/window/show"
	QuitPath   = "/window/quit"
)

type Response struct {
	Error string `json:"error"`
}

type Volume struct {
	Volume int `json:"volume"`
}

func SetVolumePath(vol int) string {
	return fmt.Sprintf("%s?v=%d", VolumePath, vol)
}

func BuildOpenPath(uri string) string {
	return fmt.Sprintf("%s?uri=%s", OpenPath, url.QueryEscape(uri))
}
