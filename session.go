package urlfam

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/golang/protobuf/proto"
	"github.com/gorilla/mux"
	"github.com/jetrtc/log"
)

const (
	ContentType     = "Content-Type"
	JsonContentType = "application/json"
)

var (
	ProtobufContentTypes = []string{"application/protobuf", "application/x-protobuf"}
)

// Session is the per request state handed to a HandlerFunc.
type Session struct {
	*log.Context
	Request        *http.Request
	statusCode     int
	responseWriter http.ResponseWriter
}

func (s *Session) Header() http.Header {
	return s.responseWriter.Header()
}

// Status sets the status code written along with the handler's result.
func (s *Session) Status(code int) {
	s.statusCode = code
}

func (s *Session) status(preset int) int {
	if s.statusCode == 0 {
		return preset
	}
	return s.statusCode
}

func (s *Session) Decode(val interface{}) error {
	switch v := val.(type) {
	case proto.Message:
		if isProto(contentType(s.Request)) {
			data, err := io.ReadAll(s.Request.Body)
			if err != nil {
				s.Errorf("Failed to read request body: %s", err.Error())
				return err
			}
			return proto.Unmarshal(data, v)
		}
		return json.NewDecoder(s.Request.Body).Decode(v)
	default:
		return json.NewDecoder(s.Request.Body).Decode(v)
	}
}

func (s *Session) Vars() map[string]string {
	return mux.Vars(s.Request)
}

func (s *Session) Var(key, preset string) string {
	val := s.Vars()[key]
	if val == "" {
		val = s.Request.FormValue(key)
	}
	if val == "" {
		val = preset
	}
	return val
}

func contentType(r *http.Request) string {
	return r.Header.Get(ContentType)
}

func isProto(mime string) bool {
	return isTypeOf(mime, ProtobufContentTypes)
}

func isTypeOf(mime string, types []string) bool {
	for _, t := range types {
		if strings.HasPrefix(mime, t) {
			return true
		}
	}
	return false
}

func accepts(types []string, accepts []string) string {
	for _, t := range types {
		for _, a := range accepts {
			if strings.HasPrefix(a, t) {
				return t
			}
		}
	}
	return ""
}
