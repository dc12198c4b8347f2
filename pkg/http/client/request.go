package client

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/myzx/gohelper/pkg/arr"
)

// RequestOption adjusts a single request
type RequestOption func(*resty.Request)

// WithHeader sets a request header.
func WithHeader(key, value string) RequestOption {
	return func(r *resty.Request) {
		r.SetHeader(key, value)
	}
}

// WithHeaders sets several request headers.
func WithHeaders(headers map[string]string) RequestOption {
	return func(r *resty.Request) {
		r.SetHeaders(headers)
	}
}

// WithQuery adds a query parameter on top of any query built from data.
func WithQuery(key, value string) RequestOption {
	return func(r *resty.Request) {
		r.QueryParam.Add(key, value)
	}
}

// WithBasicAuth sets basic authentication for this request.
func WithBasicAuth(username, password string) RequestOption {
	return func(r *resty.Request) {
		r.SetBasicAuth(username, password)
	}
}

// WithBearerToken sets a bearer token for this request.
func WithBearerToken(token string) RequestOption {
	return func(r *resty.Request) {
		r.SetAuthToken(token)
	}
}

// WithCookie attaches a cookie.
func WithCookie(cookie *http.Cookie) RequestOption {
	return func(r *resty.Request) {
		r.SetCookie(cookie)
	}
}

// Part is one multipart field. Path uploads a local file, Reader streams
// arbitrary content under FileName, and otherwise Contents is sent as a
// plain form value.
type Part struct {
	Name        string
	Contents    string
	Path        string
	Reader      io.Reader
	FileName    string
	ContentType string
}

// applyData encodes data onto req and returns the verb to send.
func applyData(req *resty.Request, method string, data any) (string, error) {
	verb := method
	switch method {
	case MethodPostJSON, MethodUpload:
		verb = http.MethodPost
	}

	if isEmptyData(data) {
		return verb, nil
	}

	switch method {
	case http.MethodPost, http.MethodPut:
		values, err := toValues(data)
		if err != nil {
			return "", err
		}
		req.SetFormDataFromValues(values)
	case MethodPostJSON:
		body, err := sonic.Marshal(data)
		if err != nil {
			return "", fmt.Errorf("failed to encode JSON body: %w", err)
		}
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	case MethodUpload:
		parts, ok := data.([]Part)
		if !ok {
			return "", fmt.Errorf("%w: upload expects []Part, got %T", ErrInvalidData, data)
		}
		applyParts(req, parts)
	default:
		values, err := toValues(data)
		if err != nil {
			return "", err
		}
		req.SetQueryParamsFromValues(values)
	}

	return verb, nil
}

func applyParts(req *resty.Request, parts []Part) {
	for _, p := range parts {
		switch {
		case p.Path != "":
			req.SetFile(p.Name, p.Path)
		case p.Reader != nil:
			contentType := p.ContentType
			if contentType == "" {
				contentType = "application/octet-stream"
			}
			req.SetMultipartField(p.Name, p.FileName, contentType, p.Reader)
		default:
			contentType := p.ContentType
			if contentType == "" {
				contentType = "text/plain; charset=utf-8"
			}
			req.SetMultipartField(p.Name, "", contentType, strings.NewReader(p.Contents))
		}
	}
}

// toValues converts form or query data. Nested map[string]any and *arr.Map
// values use bracket keys.
func toValues(data any) (url.Values, error) {
	switch d := data.(type) {
	case url.Values:
		return d, nil
	case map[string]string:
		values := make(url.Values, len(d))
		for k, v := range d {
			values.Set(k, v)
		}
		return values, nil
	case map[string][]string:
		return url.Values(d), nil
	case map[string]any:
		return arr.Values(d), nil
	case *arr.Map:
		return arr.Values(d), nil
	case string:
		values, err := url.ParseQuery(d)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidData, err)
		}
		return values, nil
	}
	return nil, fmt.Errorf("%w: %T", ErrInvalidData, data)
}

func isEmptyData(data any) bool {
	if data == nil {
		return true
	}
	if m, ok := data.(*arr.Map); ok {
		return m.Len() == 0
	}
	rv := reflect.ValueOf(data)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.String:
		return rv.Len() == 0
	case reflect.Pointer:
		return rv.IsNil()
	}
	return false
}
