// Package urlfam builds URL strings incrementally. A URL is an immutable
// value: every method returns a new URL, so a partially built URL can be kept
// as the common prefix of a family of URLs and extended in several directions.
//
//	base := urlfam.New("https", "example.com").Path("api").Query("v", "1")
//	people := base.Path("people").MustBuild()     // https://example.com/api/people?v=1
//	machines := base.Path("machines").MustBuild() // https://example.com/api/machines?v=1
package urlfam

import (
	"strings"
)

type URL struct {
	scheme  string
	host    string
	port    uint16
	hasPort bool
	paths   []string
	query   []Pair
}

// New returns a URL with the given scheme and host. Neither is validated
// nor escaped.
func New(scheme, host string) URL {
	return URL{scheme: scheme, host: host}
}

// Port sets the port. Repeated calls override the previous port.
func (u URL) Port(port uint16) URL {
	u.port = port
	u.hasPort = true
	return u
}

// Path appends a path segment. Slashes inside segment are escaped, not
// treated as separators.
func (u URL) Path(segment string) URL {
	u.paths = append(u.paths[:len(u.paths):len(u.paths)], segment)
	return u
}

// Query appends a key/value pair to the query string. Duplicate keys are kept.
func (u URL) Query(key, value string) URL {
	u.query = append(u.query[:len(u.query):len(u.query)], Pair{Key: key, Value: value})
	return u
}

// Param replaces the first path segment spelled "{name}" with value. If there
// is no such segment the pair is added to the query string instead.
func (u URL) Param(name, value string) URL {
	placeholder := "{" + name + "}"
	for i, p := range u.paths {
		if p == placeholder {
			paths := make([]string, len(u.paths))
			copy(paths, u.paths)
			paths[i] = value
			u.paths = paths
			return u
		}
	}
	return u.Query(name, value)
}

// Clone returns a copy of u that shares no storage with it.
func (u URL) Clone() URL {
	u.paths = u.Segments()
	u.query = u.Pairs()
	return u
}

func (u URL) Scheme() string {
	return u.scheme
}

func (u URL) Host() string {
	return u.host
}

// PortNumber returns the port and whether one was set.
func (u URL) PortNumber() (uint16, bool) {
	return u.port, u.hasPort
}

// Segments returns a copy of the unescaped path segments.
func (u URL) Segments() []string {
	if u.paths == nil {
		return nil
	}
	paths := make([]string, len(u.paths))
	copy(paths, u.paths)
	return paths
}

// Pairs returns a copy of the unescaped query pairs.
func (u URL) Pairs() []Pair {
	if u.query == nil {
		return nil
	}
	query := make([]Pair, len(u.query))
	copy(query, u.query)
	return query
}

// Build renders u. It fails if the scheme or the host is empty.
func (u URL) Build() (string, error) {
	if err := u.validate(); err != nil {
		return "", err
	}
	return u.render(), nil
}

// MustBuild is like Build but panics on error.
func (u URL) MustBuild() string {
	s, err := u.Build()
	if err != nil {
		panic(err)
	}
	return s
}

// String renders u without checking required fields.
func (u URL) String() string {
	return u.render()
}

func (u URL) render() string {
	var b strings.Builder
	b.WriteString(u.scheme)
	b.WriteString("://")
	b.WriteString(u.host)
	b.WriteString(portFragment(u.port, u.hasPort))
	b.WriteString(pathFragment(u.paths))
	b.WriteString(queryFragment(u.query))
	return b.String()
}
