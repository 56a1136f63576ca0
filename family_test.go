package urlfam

import (
	"errors"
	"testing"

	"github.com/golang/protobuf/proto"
	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpecRoundTrip(t *testing.T) {
	u := New("https", "example.com").Port(8080).Path("api").Path("a b").Query("v", "1").Query("v", "2")
	spec := u.Spec()
	assert.Equal(t, "https", spec.Scheme)
	assert.Equal(t, uint32(8080), *spec.Port)
	assert.Equal(t, []string{"api", "a b"}, spec.Paths)

	data, err := proto.Marshal(spec)
	require.NoError(t, err)
	decoded := &Spec{}
	require.NoError(t, proto.Unmarshal(data, decoded))
	assert.Equal(t, u.MustBuild(), decoded.URL().MustBuild())
}

func TestSpecWithoutPort(t *testing.T) {
	spec := New("http", "example.com").Spec()
	assert.Nil(t, spec.Port)
	assert.Equal(t, "http://example.com", spec.URL().MustBuild())
}

func TestSpecValidate(t *testing.T) {
	require.NoError(t, New("http", "example.com").Spec().Validate())

	err := (&Spec{Port: proto.Uint32(70000)}).Validate()
	require.Error(t, err)
	merr, ok := err.(*multierror.Error)
	require.True(t, ok, "Expected a *multierror.Error, but got %T", err)
	assert.Len(t, merr.Errors, 3)
	assert.True(t, errors.Is(err, ErrMissingScheme))
	assert.True(t, errors.Is(err, ErrMissingHost))
	assert.Contains(t, err.Error(), "port 70000 out of range")
}

func TestFamilyBuild(t *testing.T) {
	family := &FamilySpec{
		Base: &Spec{
			Scheme: "https",
			Host:   "example.com",
			Port:   proto.Uint32(8080),
			Paths:  []string{"api"},
			Query:  []*Pair{{Key: "api-version", Value: "42"}},
		},
		Members: []*Member{
			{Name: "people", Paths: []string{"people"}},
			{Name: "machines", Paths: []string{"machines"}, Query: []*Pair{{Key: "type", Value: "perpetual motion"}}},
			{Name: "admin", Port: proto.Uint32(9090), Paths: []string{"admin", "users"}},
		},
	}
	results, err := family.Build()
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, &Result{Name: "people", URL: "https://example.com:8080/api/people?api-version=42"}, results[0])
	assert.Equal(t, &Result{Name: "machines", URL: "https://example.com:8080/api/machines?api-version=42&type=perpetual%20motion"}, results[1])
	assert.Equal(t, &Result{Name: "admin", URL: "https://example.com:9090/api/admin/users?api-version=42"}, results[2])
}

func TestFamilyBuildErrors(t *testing.T) {
	_, err := (&FamilySpec{}).Build()
	require.Error(t, err)

	_, err = (&FamilySpec{Base: &Spec{Scheme: "https"}}).Build()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingHost))

	family := &FamilySpec{
		Base: &Spec{Scheme: "https", Host: "example.com"},
		Members: []*Member{
			{Name: "ok", Paths: []string{"ok"}},
			nil,
			{Name: "bad", Port: proto.Uint32(1 << 20)},
		},
	}
	results, err := family.Build()
	require.Error(t, err)
	merr, ok := err.(*multierror.Error)
	require.True(t, ok, "Expected a *multierror.Error, but got %T", err)
	assert.Len(t, merr.Errors, 2)
	assert.Contains(t, err.Error(), `member "bad"`)
	require.Len(t, results, 1)
	assert.Equal(t, "https://example.com/ok", results[0].URL)
}
