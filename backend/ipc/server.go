package ipc

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
)

var errBadRequest = errors.New("bad request")

type PlaybackHandler interface {
	Play() error
	Pause() error
	Stop() error
	OpenURI(uri string) error
	Volume() int
	SetVolume(int) error
}

type WindowHandler interface {
	Show()
	Quit()
}

type serverImpl struct {
	pbHandler PlaybackHandler
	wdHandler WindowHandler
}

func NewServer(pbHandler PlaybackHandler, wdHandler WindowHandler) *http.Server {
	s := serverImpl{pbHandler: pbHandler, wdHandler: wdHandler}
	return &http.Server{
		Handler: s.createHandler(),
	}
}

func (s *serverImpl) createHandler() http.Handler {
	m := http.NewServeMux()
	m.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("The given path is not valid"))
	})
	m.HandleFunc(PingPath, s.makeSimpleEndpointHandler(func() error { return nil }))
	m.HandleFunc(ShowPath, s.makeSimpleEndpointHandler(func() error {
		s.wdHandler.Show()
		return nil
	}))
	m.HandleFunc(QuitPath, s.makeSimpleEndpointHandler(func() error {
		go s.wdHandler.Quit()
		return nil
	}))
	m.HandleFunc(PlayPath, s.makeSimpleEndpointHandler(s.pbHandler.Play))
	m.HandleFunc(PausePath, s.makeSimpleEndpointHandler(s.pbHandler.Pause))
	m.HandleFunc(StopPath, s.makeSimpleEndpointHandler(s.pbHandler.Stop))
	m.HandleFunc(OpenPath, func(w http.ResponseWriter, r *http.Request) {
		uri := r.URL.Query().Get("uri")
		if uri == "" {
			s.writeErr(w, http.StatusBadRequest, errBadRequest)
			return
		}
		s.writeSimpleResponse(w, s.pbHandler.OpenURI(uri))
	})
	m.HandleFunc(VolumePath, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			msg, _ := json.Marshal(Volume{Volume: s.pbHandler.Volume()})
			w.Write(msg)
			return
		}
		v, err := strconv.Atoi(r.URL.Query().Get("v"))
		if err != nil {
			s.writeErr(w, http.StatusBadRequest, err)
			return
		}
		s.writeSimpleResponse(w, s.pbHandler.SetVolume(v))
	})
	return m
}

func (s *serverImpl) makeSimpleEndpointHandler(f func() error) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		s.writeSimpleResponse(w, f())
	}
}

func (s *serverImpl) writeSimpleResponse(w http.ResponseWriter, err error) {
	if err == nil {
		s.writeOK(w)
	} else {
		s.writeErr(w, http.StatusInternalServerError, err)
	}
}

func (s *serverImpl) writeOK(w http.ResponseWriter) (int, error) {
	var r Response
	b, err := json.Marshal(&r)
	if err != nil {
		return 0, err
	}
	return w.Write(b)
}

func (s *serverImpl) writeErr(w http.ResponseWriter, status int, err error) (int, error) {
	r := Response{Error: err.Error()}
	b, err := json.Marshal(&r)
	if err != nil {
		return 0, err
	}
	w.WriteHeader(status)
	return w.Write(b)
}
