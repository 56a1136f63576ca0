package urlfam

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/golang/protobuf/proto"
	"github.com/jetrtc/log"
)

type Auth interface {
	Authorize(req *http.Request) error
	Validate(res *http.Response) (bool, error)
	Invalidate() error
}

type Response struct {
	*http.Response
	Body     []byte
	protobuf bool
}

func (r *Response) Unmarshal(val interface{}) error {
	var err error
	protobuf := false
	switch val := val.(type) {
	case proto.Message:
		if r.protobuf && isProto(r.Response.Header.Get(ContentType)) {
			protobuf = true
			err = proto.Unmarshal(r.Body, val)
		} else {
			err = json.Unmarshal(r.Body, val)
		}
	default:
		err = json.Unmarshal(r.Body, val)
	}
	if err != nil && !protobuf && !strings.HasPrefix(r.Response.Header.Get(ContentType), JsonContentType) {
		err = fmt.Errorf("%s", bytes.TrimSpace(r.Body))
	}
	return err
}

// Client sends requests to URLs built with this package. A URL that fails to
// build is reported before anything goes on the wire.
type Client struct {
	*log.Loggable
	client   *http.Client
	auth     Auth
	protobuf bool
}

func NewClient(logger log.Logger, timeout time.Duration) *Client {
	return &Client{
		Loggable: log.NewLoggable(logger),
		client:   &http.Client{Timeout: timeout},
	}
}

func (c *Client) Auth(auth Auth) *Client {
	c.auth = auth
	return c
}

func (c *Client) Protobuf() *Client {
	c.protobuf = true
	return c
}

func (c *Client) Get(u URL) (*Response, error) {
	return c.Request(http.MethodGet, u, nil)
}

func (c *Client) Post(u URL, req interface{}) (*Response, error) {
	return c.Request(http.MethodPost, u, req)
}

func (c *Client) Put(u URL, req interface{}) (*Response, error) {
	return c.Request(http.MethodPut, u, req)
}

func (c *Client) Delete(u URL) (*Response, error) {
	return c.Request(http.MethodDelete, u, nil)
}

func (c *Client) Request(method string, u URL, r interface{}) (*Response, error) {
	url, err := u.Build()
	if err != nil {
		c.Errorf("Failed to build URL %s: %s", u, err.Error())
		return nil, err
	}
	start := time.Now()
	res, err := c.request(method, url, r)
	if err != nil {
		return nil, err
	}
	if c.auth != nil {
		valid, err := c.auth.Validate(res.Response)
		if err != nil {
			c.Errorf("Failed to validate auth: %s", err.Error())
			return nil, err
		}
		if !valid {
			err = c.auth.Invalidate()
			if err != nil {
				c.Errorf("Failed to invalidate auth: %s", err.Error())
				return nil, err
			}
			res, err = c.request(method, url, r)
			if err != nil {
				return nil, err
			}
		}
	}
	c.Infof("Requested in %v: %s %s => %d", time.Since(start), method, url, res.StatusCode)
	return res, nil
}

func (c *Client) request(method, url string, r interface{}) (*Response, error) {
	var body []byte
	var err error
	protobuf := false
	if r != nil {
		switch r := r.(type) {
		case proto.Message:
			if c.protobuf {
				body, err = proto.Marshal(r)
				protobuf = true
			} else {
				body, err = json.Marshal(r)
			}
		default:
			body, err = json.Marshal(r)
		}
		if err != nil {
			c.Errorf("Failed to marshal: %s", err.Error())
			return nil, err
		}
	}
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	if err != nil {
		c.Errorf("Failed to create request: %s", err.Error())
		return nil, err
	}
	if c.auth != nil {
		if err := c.auth.Authorize(req); err != nil {
			c.Errorf("Failed to authorize: %s", err.Error())
			return nil, err
		}
	}
	if len(body) > 0 {
		if protobuf {
			req.Header.Set(ContentType, ProtobufContentTypes[0])
		} else {
			req.Header.Set(ContentType, JsonContentType)
		}
	}
	if c.protobuf {
		req.Header.Set("Accept", ProtobufContentTypes[0])
	} else {
		req.Header.Set("Accept", JsonContentType)
	}
	c.dumpRequest(req, r, body)
	res, err := c.client.Do(req)
	if err != nil {
		c.Errorf("Failed to make request: %s", err.Error())
		return nil, err
	}
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	if err != nil {
		c.Errorf("Failed to read body: %s", err.Error())
		return nil, err
	}
	c.dumpResponse(res, data)
	res.Body = io.NopCloser(bytes.NewReader(data))
	return &Response{
		Response: res,
		Body:     data,
		protobuf: c.protobuf,
	}, nil
}

func (c *Client) dumpRequest(req *http.Request, v interface{}, data []byte) {
	dump := &struct {
		Method   string                 `json:"method"`
		URL      string                 `json:"url"`
		Protocol string                 `json:"protocol"`
		Headers  map[string]interface{} `json:"headers"`
		Body     interface{}            `json:"body,omitempty"`
	}{
		Method:   req.Method,
		URL:      req.URL.RequestURI(),
		Protocol: req.Proto,
		Headers:  dumpHeaders(req.Header),
		Body:     v,
	}
	if v == nil && len(data) > 0 {
		dump.Body = data
	}
	bytes, err := json.Marshal(dump)
	if err == nil {
		c.Debugf("%s", bytes)
	}
}

func (c *Client) dumpResponse(res *http.Response, data []byte) {
	dump := &struct {
		Status   string                 `json:"status"`
		Protocol string                 `json:"protocol"`
		Headers  map[string]interface{} `json:"headers"`
		Body     interface{}            `json:"body,omitempty"`
	}{
		Status:   res.Status,
		Protocol: res.Proto,
		Headers:  dumpHeaders(res.Header),
	}
	if isProto(res.Header.Get(ContentType)) {
		dump.Body = data
	} else {
		dump.Body = string(data)
	}
	bytes, err := json.Marshal(dump)
	if err == nil {
		c.Debugf("%s", bytes)
	}
}

func dumpHeaders(h http.Header) map[string]interface{} {
	headers := make(map[string]interface{}, len(h))
	for k, v := range h {
		if len(v) == 1 {
			headers[k] = v[0]
		} else {
			headers[k] = v
		}
	}
	return headers
}
