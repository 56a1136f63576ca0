package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestBuildCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"host only", []string{"--host", "example.com"}, "https://example.com\n"},
		{"port", []string{"--scheme", "http", "--host", "example.com", "--port", "8080"}, "http://example.com:8080\n"},
		{"port zero", []string{"--host", "example.com", "--port", "0"}, "https://example.com:0\n"},
		{"paths in order", []string{"--host", "example.com", "--path", "foo", "--path", "a,b", "--path", "bar"}, "https://example.com/foo/a%2Cb/bar\n"},
		{"queries", []string{"--host", "example.com", "--query", "a b=c/d", "--query", "k=v=w", "--query", "k="}, "https://example.com?a%20b=c%2Fd&k=v%3Dw&k=\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, append([]string{"build"}, tt.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestBuildCommandErrors(t *testing.T) {
	_, err := run(t, "build")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing host")

	_, err = run(t, "build", "--host", "example.com", "--query", "novalue")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected key=value")

	_, err = run(t, "build", "--host", "example.com", "--port", "70000")
	require.Error(t, err)
}

func TestFamilyCommand(t *testing.T) {
	path := writeFile(t, "family.yaml", `base:
  scheme: https
  host: example.com
  paths: [api]
  query:
    - {key: api-version, value: "42"}
members:
  - name: people
    paths: [people]
  - name: machines
    port: 8443
    paths: [machines]
    query:
      - {key: type, value: perpetual motion}
`)
	out, err := run(t, "family", path)
	require.NoError(t, err)
	assert.Equal(t, "people\thttps://example.com/api/people?api-version=42\n"+
		"machines\thttps://example.com:8443/api/machines?api-version=42&type=perpetual%20motion\n", out)
}

func TestFamilyCommandErrors(t *testing.T) {
	_, err := run(t, "family", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read family file")

	_, err = run(t, "family", writeFile(t, "bad.yaml", "base: ["))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse family file")

	out, err := run(t, "family", writeFile(t, "partial.yaml", `base: {scheme: http, host: h}
members:
  - name: ok
  - name: bad
    port: 100000
`))
	require.Error(t, err)
	assert.Equal(t, "ok\thttp://h\n", out)
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	cfg, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultAddr, cfg.Addr)

	cfg, err = LoadConfig(writeFile(t, "config.yaml", "addr: :9000\ntimeout: 5s\nverbose: true\njson_indent: \"  \"\n"))
	require.NoError(t, err)
	assert.Equal(t, &Config{Addr: ":9000", Timeout: 5 * time.Second, Verbose: true, JSONIndent: "  "}, cfg)

	_, err = LoadConfig(writeFile(t, "invalid.yaml", "timeout: [1"))
	require.Error(t, err)

	_, err = LoadConfig(writeFile(t, "zero.yaml", "timeout: 0s\n"))
	require.Error(t, err)
}

func TestRootConfigFlag(t *testing.T) {
	_, err := run(t, "--config", writeFile(t, "invalid.yaml", "addr: ["), "build", "--host", "h")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestServeHandler(t *testing.T) {
	a := &app{config: DefaultConfig(), logger: newLogger(false, nil)}
	a.config.JSONIndent = "  "
	ts := httptest.NewServer(newHandler(a))
	defer ts.Close()

	res, err := http.Get(ts.URL + "/build?scheme=http&host=example.com&path=a&path=b&query=k%3Dv")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(body), "{\n  "))
	result := map[string]string{}
	require.NoError(t, json.Unmarshal(body, &result))
	assert.Equal(t, "http://example.com/a/b?k=v", result["url"])
}
