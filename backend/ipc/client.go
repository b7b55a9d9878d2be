package ipc

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net"
	"net/http"
)

var ErrPingFail = errors.New("ping failed")

type Client struct {
	httpC http.Client
}

// Connect attempts to connect to the IPC socket as client.
func Connect() (*Client, error) {
	conn, err := Dial()
	if err != nil {
		return nil, err
	}
	client := NewClient(conn)
	if err := client.Ping(); err != nil {
		log.Println("ping error")
		return nil, err
	}
	return client, nil
}

// NewClient returns a client that sends all requests over conn.
func NewClient(conn net.Conn) *Client {
	return &Client{httpC: http.Client{
		Transport: &http.Transport{
			DialContext: func(_ context.Context, _, _ string) (net.Conn, error) {
				return conn, nil
			},
		},
	}}
}

func (c *Client) Ping() error {
	if c.makeSimpleRequest(http.MethodGet, PingPath) != nil {
		return ErrPingFail
	}
	return nil
}

func (c *Client) Play() error {
	return c.makeSimpleRequest(http.MethodPost, PlayPath)
}

func (c *Client) Pause() error {
	return c.makeSimpleRequest(http.MethodPost, PausePath)
}

func (c *Client) Stop() error {
	return c.makeSimpleRequest(http.MethodPost, StopPath)
}

func (c *Client) Open(uri string) error {
	return c.makeSimpleRequest(http.MethodPost, BuildOpenPath(uri))
}

func (c *Client) SetVolume(vol int) error {
	return c.makeSimpleRequest(http.MethodPost, SetVolumePath(vol))
}

func (c *Client) Volume() (int, error) {
	resp, err := c.httpC.Get("http://torriplayer" + VolumePath)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	var v Volume
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		return 0, err
	}
	return v.Volume, nil
}

func (c *Client) Show() error {
	return c.makeSimpleRequest(http.MethodPost, ShowPath)
}

func (c *Client) Quit() error {
	return c.makeSimpleRequest(http.MethodPost, QuitPath)
}

func (c *Client) makeSimpleRequest(method string, path string) error {
	var resp *http.Response
	var err error
	switch method {
	case http.MethodGet:
		resp, err = c.httpC.Get("http://torriplayer" + path)
	case http.MethodPost:
		resp, err = c.httpC.Post("http://torriplayer"+path, "application/json", nil)
	}

	if err != nil {
		log.Printf("http err: %v\n", err)
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		var r Response
		json.NewDecoder(resp.Body).Decode(&r)
		return errors.New(r.Error)
	}
	// the single underlying conn is only reused once the body is consumed
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
