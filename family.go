package urlfam

import (
	"fmt"

	"github.com/golang/protobuf/proto"
	"github.com/hashicorp/go-multierror"
)

// Member is one URL of a family: the family base extended by its own port,
// path segments and query pairs.
type Member struct {
	Name  string   `protobuf:"bytes,1,opt,name=name,proto3" json:"name" yaml:"name"`
	Port  *uint32  `protobuf:"varint,2,opt,name=port" json:"port,omitempty" yaml:"port,omitempty"`
	Paths []string `protobuf:"bytes,3,rep,name=paths,proto3" json:"paths,omitempty" yaml:"paths,omitempty"`
	Query []*Pair  `protobuf:"bytes,4,rep,name=query,proto3" json:"query,omitempty" yaml:"query,omitempty"`
}

func (m *Member) Reset()         { *m = Member{} }
func (m *Member) String() string { return proto.CompactTextString(m) }
func (*Member) ProtoMessage()    {}

// FamilySpec is a shared base and the members derived from it.
type FamilySpec struct {
	Base    *Spec     `protobuf:"bytes,1,opt,name=base,proto3" json:"base" yaml:"base"`
	Members []*Member `protobuf:"bytes,2,rep,name=members,proto3" json:"members" yaml:"members"`
}

func (m *FamilySpec) Reset()         { *m = FamilySpec{} }
func (m *FamilySpec) String() string { return proto.CompactTextString(m) }
func (*FamilySpec) ProtoMessage()    {}

// Result is a built URL, named after the member it came from.
type Result struct {
	Name string `protobuf:"bytes,1,opt,name=name,proto3" json:"name,omitempty" yaml:"name,omitempty"`
	URL  string `protobuf:"bytes,2,opt,name=url,proto3" json:"url" yaml:"url"`
}

func (m *Result) Reset()         { *m = Result{} }
func (m *Result) String() string { return proto.CompactTextString(m) }
func (*Result) ProtoMessage()    {}

type Results struct {
	Results []*Result `protobuf:"bytes,1,rep,name=results,proto3" json:"results" yaml:"results"`
}

func (m *Results) Reset()         { *m = Results{} }
func (m *Results) String() string { return proto.CompactTextString(m) }
func (*Results) ProtoMessage()    {}

// Build forks the base once per member and builds every member in order.
// Members that fail are left out of the results and reported together.
func (m *FamilySpec) Build() ([]*Result, error) {
	if m.Base == nil {
		return nil, fmt.Errorf("urlfam: family has no base")
	}
	if err := m.Base.Validate(); err != nil {
		return nil, fmt.Errorf("urlfam: invalid base: %w", err)
	}
	base := m.Base.URL()
	var errs *multierror.Error
	results := make([]*Result, 0, len(m.Members))
	for i, member := range m.Members {
		if member == nil {
			errs = multierror.Append(errs, fmt.Errorf("urlfam: member %d is empty", i))
			continue
		}
		u := base
		if member.Port != nil {
			if *member.Port > 0xffff {
				errs = multierror.Append(errs, fmt.Errorf("urlfam: member %q: port %d out of range", member.Name, *member.Port))
				continue
			}
			u = u.Port(uint16(*member.Port))
		}
		s, err := extend(u, member.Paths, member.Query).Build()
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("urlfam: member %q: %w", member.Name, err))
			continue
		}
		results = append(results, &Result{Name: member.Name, URL: s})
	}
	return results, errs.ErrorOrNil()
}
