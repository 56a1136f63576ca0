package urlfam

import (
	"fmt"

	"github.com/golang/protobuf/proto"
	"github.com/hashicorp/go-multierror"
)

// Pair is a single query string entry.
type Pair struct {
	Key   string `protobuf:"bytes,1,opt,name=key,proto3" json:"key" yaml:"key"`
	Value string `protobuf:"bytes,2,opt,name=value,proto3" json:"value" yaml:"value"`
}

func (m *Pair) Reset()         { *m = Pair{} }
func (m *Pair) String() string { return proto.CompactTextString(m) }
func (*Pair) ProtoMessage()    {}

// Spec describes a URL in a form that can travel as JSON, YAML or protobuf.
type Spec struct {
	Scheme string   `protobuf:"bytes,1,opt,name=scheme,proto3" json:"scheme,omitempty" yaml:"scheme"`
	Host   string   `protobuf:"bytes,2,opt,name=host,proto3" json:"host,omitempty" yaml:"host"`
	Port   *uint32  `protobuf:"varint,3,opt,name=port" json:"port,omitempty" yaml:"port,omitempty"`
	Paths  []string `protobuf:"bytes,4,rep,name=paths,proto3" json:"paths,omitempty" yaml:"paths,omitempty"`
	Query  []*Pair  `protobuf:"bytes,5,rep,name=query,proto3" json:"query,omitempty" yaml:"query,omitempty"`
}

func (m *Spec) Reset()         { *m = Spec{} }
func (m *Spec) String() string { return proto.CompactTextString(m) }
func (*Spec) ProtoMessage()    {}

// URL turns the description into a builder. Ports outside the 16-bit range
// are rejected by Validate, not here.
func (m *Spec) URL() URL {
	u := New(m.Scheme, m.Host)
	if m.Port != nil {
		u = u.Port(uint16(*m.Port))
	}
	return extend(u, m.Paths, m.Query)
}

// Validate reports problems that would make URL lossy or Build fail.
func (m *Spec) Validate() error {
	var err *multierror.Error
	if m.Port != nil && *m.Port > 0xffff {
		err = multierror.Append(err, fmt.Errorf("urlfam: port %d out of range", *m.Port))
	}
	if m.Scheme == "" {
		err = multierror.Append(err, ErrMissingScheme)
	}
	if m.Host == "" {
		err = multierror.Append(err, ErrMissingHost)
	}
	return err.ErrorOrNil()
}

// Spec describes u.
func (u URL) Spec() *Spec {
	m := &Spec{
		Scheme: u.scheme,
		Host:   u.host,
		Paths:  u.Segments(),
	}
	if u.hasPort {
		m.Port = proto.Uint32(uint32(u.port))
	}
	for _, q := range u.query {
		m.Query = append(m.Query, &Pair{Key: q.Key, Value: q.Value})
	}
	return m
}

func extend(u URL, paths []string, query []*Pair) URL {
	for _, p := range paths {
		u = u.Path(p)
	}
	for _, q := range query {
		if q == nil {
			continue
		}
		u = u.Query(q.Key, q.Value)
	}
	return u
}
