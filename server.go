package urlfam

import (
	"encoding/json"
	"io"
	"net/http"
	"reflect"

	"github.com/golang/protobuf/proto"
	"github.com/gorilla/mux"
	"github.com/jetrtc/log"
)

// HandlerFunc handles a request. A proto.Message or any other value is
// encoded as the response body, a string is sent as a plain text message
// and an error as a 500 unless the session status says otherwise.
type HandlerFunc func(s *Session) (res interface{})

type MiddlewareFunc func(handler HandlerFunc) HandlerFunc

type route struct {
	server      *Server
	handlerFunc HandlerFunc
}

func (rt *route) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s := &Session{
		Context:        log.NewContext(rt.server, r.Context()),
		Request:        r,
		responseWriter: w,
	}
	handler := rt.handlerFunc
	for _, mw := range rt.server.middlewares {
		handler = mw(handler)
	}
	res := handler(s)
	if r.Body != nil {
		defer io.Copy(io.Discard, r.Body)
	}
	writeProto := func(v proto.Message, accept string) error {
		if accept == "" {
			accept = ProtobufContentTypes[0]
		}
		data, err := proto.Marshal(v)
		if err != nil {
			s.Errorf("Failed to encode protobuf: %s", err.Error())
			return err
		}
		w.Header().Set(ContentType, accept)
		w.WriteHeader(s.status(http.StatusOK))
		if _, err = w.Write(data); err != nil {
			s.Errorf("Failed to write protobuf: %s", err.Error())
			return nil
		}
		s.Debugf("%s %s => %d: %s", r.Method, r.URL.Path, s.status(http.StatusOK), accept)
		return nil
	}
	writeJSON := func(v interface{}) error {
		var data []byte
		var err error
		if rt.server.jsonIndent != "" || rt.server.jsonPrefix != "" {
			data, err = json.MarshalIndent(v, rt.server.jsonPrefix, rt.server.jsonIndent)
		} else {
			data, err = json.Marshal(v)
		}
		if err != nil {
			s.Errorf("Failed to encode JSON: %s", err.Error())
			return err
		}
		w.Header().Set(ContentType, JsonContentType)
		w.WriteHeader(s.status(http.StatusOK))
		if _, err = w.Write(append(data, '\n')); err != nil {
			s.Errorf("Failed to write JSON: %s", err.Error())
			return nil
		}
		s.Debugf("%s %s => %d: %s", r.Method, r.URL.Path, s.status(http.StatusOK), JsonContentType)
		return nil
	}
	err := func() error {
		if isNil(res) {
			w.WriteHeader(s.status(http.StatusOK))
			s.Debugf("%s %s => %d", r.Method, r.URL.Path, s.status(http.StatusOK))
			return nil
		}
		switch v := res.(type) {
		case proto.Message:
			accept := accepts(ProtobufContentTypes, r.Header["Accept"])
			if isProto(contentType(r)) || accept != "" {
				return writeProto(v, accept)
			}
			return writeJSON(v)
		case string:
			http.Error(w, v, s.status(http.StatusOK))
			s.Debugf("%s %s => %d: %s", r.Method, r.URL.Path, s.status(http.StatusOK), v)
		case error:
			return v
		default:
			return writeJSON(v)
		}
		return nil
	}()
	if err != nil {
		code := s.status(http.StatusInternalServerError)
		if code < http.StatusBadRequest {
			code = http.StatusInternalServerError
		}
		http.Error(w, err.Error(), code)
		s.Debugf("%s %s => %d: %s", r.Method, r.URL.Path, code, err.Error())
	}
}

type Server struct {
	*log.Loggable
	jsonPrefix, jsonIndent string
	middlewares            []MiddlewareFunc
}

func NewServer(logger log.Logger) *Server {
	return &Server{
		Loggable:    log.NewLoggable(logger),
		middlewares: make([]MiddlewareFunc, 0),
	}
}

func (s *Server) JSONIndent(prefix, indent string) {
	s.jsonPrefix = prefix
	s.jsonIndent = indent
}

func (s *Server) Post(r *mux.Route, handler HandlerFunc) *mux.Route {
	return r.Handler(s.HandlerFunc(handler)).Methods(http.MethodPost)
}

func (s *Server) Get(r *mux.Route, handler HandlerFunc) *mux.Route {
	return r.Handler(s.HandlerFunc(handler)).Methods(http.MethodGet)
}

func (s *Server) Put(r *mux.Route, handler HandlerFunc) *mux.Route {
	return r.Handler(s.HandlerFunc(handler)).Methods(http.MethodPut)
}

func (s *Server) Delete(r *mux.Route, handler HandlerFunc) *mux.Route {
	return r.Handler(s.HandlerFunc(handler)).Methods(http.MethodDelete)
}

func (s *Server) HandlerFunc(handler HandlerFunc) http.Handler {
	return &route{
		server:      s,
		handlerFunc: handler,
	}
}

// Use wraps every handler of s with middlewares.
func (s *Server) Use(middlewares ...MiddlewareFunc) *Server {
	s.middlewares = append(middlewares, s.middlewares...)
	return s
}

func isNil(v interface{}) bool {
	return v == nil || (reflect.TypeOf(v).Kind() == reflect.Ptr && reflect.ValueOf(v).IsNil())
}
