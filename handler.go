package urlfam

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
)

// NewHandler exposes the builder over HTTP:
//
//	GET  /build?scheme=https&host=example.com&port=8080&path=api&query=v=1
//	POST /build   with a Spec body
//	POST /family  with a FamilySpec body
//
// Bodies and results are JSON or protobuf depending on Content-Type and Accept.
func NewHandler(server *Server) http.Handler {
	r := mux.NewRouter()
	server.Get(r.Path("/build"), buildQueryHandler)
	server.Post(r.Path("/build"), buildSpecHandler)
	server.Post(r.Path("/family"), familyHandler)
	return r
}

func buildQueryHandler(s *Session) interface{} {
	spec, err := specFromForm(s.Request)
	if err != nil {
		s.Status(http.StatusBadRequest)
		return err.Error()
	}
	return buildSpec(s, spec)
}

func buildSpecHandler(s *Session) interface{} {
	spec := &Spec{}
	if err := s.Decode(spec); err != nil {
		s.Debugf("Failed to decode spec: %s", err.Error())
		s.Status(http.StatusBadRequest)
		return fmt.Sprintf("invalid spec: %s", err.Error())
	}
	return buildSpec(s, spec)
}

func buildSpec(s *Session, spec *Spec) interface{} {
	if err := spec.Validate(); err != nil {
		s.Status(http.StatusBadRequest)
		return err.Error()
	}
	url, err := spec.URL().Build()
	if err != nil {
		s.Status(http.StatusBadRequest)
		return err.Error()
	}
	return &Result{URL: url}
}

func familyHandler(s *Session) interface{} {
	family := &FamilySpec{}
	if err := s.Decode(family); err != nil {
		s.Debugf("Failed to decode family: %s", err.Error())
		s.Status(http.StatusBadRequest)
		return fmt.Sprintf("invalid family: %s", err.Error())
	}
	results, err := family.Build()
	if err != nil {
		s.Status(http.StatusBadRequest)
		return err.Error()
	}
	return &Results{Results: results}
}

// specFromForm reads a Spec from query parameters. Repeated path and query
// parameters keep their order; each query parameter is "key=value".
func specFromForm(r *http.Request) (*Spec, error) {
	values := r.URL.Query()
	spec := &Spec{
		Scheme: values.Get("scheme"),
		Host:   values.Get("host"),
		Paths:  values["path"],
	}
	if p := values.Get("port"); p != "" {
		port, err := strconv.ParseUint(p, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("invalid port %q", p)
		}
		port32 := uint32(port)
		spec.Port = &port32
	}
	for _, q := range values["query"] {
		key, value, _ := strings.Cut(q, "=")
		spec.Query = append(spec.Query, &Pair{Key: key, Value: value})
	}
	return spec, nil
}
