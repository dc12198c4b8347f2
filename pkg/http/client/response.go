package client

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-yaml"
	"github.com/myzx/gohelper/pkg/arr"
)

// Response wraps one completed HTTP exchange. It is read-only; decoded
// bodies are computed on first use and cached.
type Response struct {
	raw      *http.Response
	body     []byte
	err      error
	duration time.Duration

	json decoded
	xml  decoded
	yaml decoded
}

type decoded struct {
	once  sync.Once
	value any
	err   error
}

func (d *decoded) load(body []byte, decode func([]byte) (any, error)) (any, error) {
	d.once.Do(func() {
		d.value, d.err = decode(body)
	})
	return d.value, d.err
}

// NewResponse wraps raw with an already-read body. err is a transport error
// that arrived together with the response, if any.
func NewResponse(raw *http.Response, body []byte, err error) *Response {
	return &Response{raw: raw, body: body, err: err}
}

func newRestyResponse(resp *resty.Response, err error) *Response {
	r := NewResponse(resp.RawResponse, resp.Body(), err)
	r.duration = resp.Time()
	return r
}

// Body returns the raw payload.
func (r *Response) Body() []byte {
	return r.body
}

// String returns the payload as text.
func (r *Response) String() string {
	return string(r.body)
}

// JSON decodes the body as JSON and returns the value at key, or the whole
// document when key is empty. def is returned for missing keys and
// undecodable bodies.
func (r *Response) JSON(key string, def any) any {
	v, err := r.json.load(r.body, decodeJSON)
	return pick(v, err, key, def)
}

// XML decodes the body as XML and returns the value at key. The root element
// is dropped; see the package documentation of the XML mapping.
func (r *Response) XML(key string, def any) any {
	v, err := r.xml.load(r.body, decodeXML)
	return pick(v, err, key, def)
}

// YAML decodes the body as YAML and returns the value at key.
func (r *Response) YAML(key string, def any) any {
	v, err := r.yaml.load(r.body, decodeYAML)
	return pick(v, err, key, def)
}

// DecodeJSON unmarshals the body into v.
func (r *Response) DecodeJSON(v any) error {
	return sonic.ConfigStd.Unmarshal(r.body, v)
}

// JSONError reports why the body could not be decoded as JSON.
func (r *Response) JSONError() error {
	_, err := r.json.load(r.body, decodeJSON)
	return err
}

func decodeJSON(body []byte) (any, error) {
	return arr.ParseJSON(body)
}

func decodeYAML(body []byte) (any, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(body, &v, yaml.UseOrderedMap()); err != nil {
		return nil, err
	}
	return orderedYAML(v), nil
}

// orderedYAML turns the ordered mappings of the YAML decoder into *arr.Map.
func orderedYAML(v any) any {
	switch t := v.(type) {
	case yaml.MapSlice:
		m := arr.NewMap()
		for _, item := range t {
			m.Set(fmt.Sprint(item.Key), orderedYAML(item.Value))
		}
		return m
	case map[string]any:
		m := arr.FromMap(t)
		for k, item := range m.All() {
			m.Set(k, orderedYAML(item))
		}
		return m
	case []any:
		for i, item := range t {
			t[i] = orderedYAML(item)
		}
		return t
	}
	return v
}

func pick(v any, err error, key string, def any) any {
	if err != nil {
		return arr.Value(def)
	}
	if key == "" {
		return v
	}
	return arr.Get(v, key, def)
}

// ToMap decodes the body according to its content type: XML, then YAML,
// JSON otherwise, keeping document order. The result is a copy. Sequences
// are keyed by index and scalars are stored under "0". An undecodable body
// yields an empty map.
func (r *Response) ToMap() *arr.Map {
	var v any
	switch {
	case r.IsXML():
		v = r.XML("", nil)
	case r.IsYAML():
		v = r.YAML("", nil)
	default:
		v = r.JSON("", nil)
	}

	switch t := v.(type) {
	case nil:
		return arr.NewMap()
	case *arr.Map:
		return t.Clone()
	case []any:
		out := arr.NewMap()
		for i, item := range t {
			out.Set(strconv.Itoa(i), item)
		}
		return out
	}
	return arr.MapOf("0", v)
}

// ContentType returns the Content-Type header.
func (r *Response) ContentType() string {
	return r.Header("Content-Type")
}

// IsContentType reports whether the Content-Type header contains ct,
// ignoring case.
func (r *Response) IsContentType(ct string) bool {
	return strings.Contains(strings.ToLower(r.ContentType()), strings.ToLower(ct))
}

// IsJSON reports an application/json response.
func (r *Response) IsJSON() bool {
	return r.IsContentType("application/json")
}

// IsXML reports an application/xml or text/xml response.
func (r *Response) IsXML() bool {
	return r.IsContentType("application/xml") || r.IsContentType("text/xml")
}

// IsYAML reports a YAML response.
func (r *Response) IsYAML() bool {
	return r.IsContentType("yaml")
}

// Header returns all values of a header joined by ", ".
func (r *Response) Header(name string) string {
	if r.raw == nil {
		return ""
	}
	return strings.Join(r.raw.Header.Values(name), ", ")
}

// Headers returns a copy of the response headers.
func (r *Response) Headers() http.Header {
	if r.raw == nil {
		return http.Header{}
	}
	return r.raw.Header.Clone()
}

// Cookies returns the cookies set by the response.
func (r *Response) Cookies() []*http.Cookie {
	if r.raw == nil {
		return nil
	}
	return r.raw.Cookies()
}

// EffectiveURL returns the URL of the final request after redirects.
func (r *Response) EffectiveURL() *url.URL {
	if r.raw == nil || r.raw.Request == nil {
		return nil
	}
	return r.raw.Request.URL
}

// Duration returns how long the exchange took.
func (r *Response) Duration() time.Duration {
	return r.duration
}

// Raw returns the underlying response. Its body has already been consumed.
func (r *Response) Raw() *http.Response {
	return r.raw
}

// Status returns the status code, 0 when there is no response.
func (r *Response) Status() int {
	if r.raw == nil {
		return 0
	}
	return r.raw.StatusCode
}

// OK reports a 200 status.
func (r *Response) OK() bool {
	return r.Status() == http.StatusOK
}

// Successful reports a 2xx status.
func (r *Response) Successful() bool {
	return r.Status() >= 200 && r.Status() < 300
}

// Redirect reports a 3xx status.
func (r *Response) Redirect() bool {
	return r.Status() >= 300 && r.Status() < 400
}

// ClientError reports a 4xx status.
func (r *Response) ClientError() bool {
	return r.Status() >= 400 && r.Status() < 500
}

// ServerError reports a status of 500 or above.
func (r *Response) ServerError() bool {
	return r.Status() >= 500
}

// Failed reports a client or server error.
func (r *Response) Failed() bool {
	return r.ServerError() || r.ClientError()
}

// OnError calls fn when the response failed and returns r.
func (r *Response) OnError(fn func(*Response)) *Response {
	if r.Failed() {
		fn(r)
	}
	return r
}

// Err returns the transport error captured with the response, a
// *RequestError for a failed status, or nil.
func (r *Response) Err() error {
	if r.err != nil {
		return r.err
	}
	if r.Failed() {
		return &RequestError{Response: r, Status: r.Status()}
	}
	return nil
}

// Throw returns Err, calling each callback with the response and the error
// first. It returns r unchanged so calls can be chained.
func (r *Response) Throw(callbacks ...func(*Response, error)) (*Response, error) {
	err := r.Err()
	if err == nil {
		return r, nil
	}
	for _, cb := range callbacks {
		if cb != nil {
			cb(r, err)
		}
	}
	return r, err
}

// ThrowIf behaves like Throw when cond holds.
func (r *Response) ThrowIf(cond bool, callbacks ...func(*Response, error)) (*Response, error) {
	if !cond {
		return r, nil
	}
	return r.Throw(callbacks...)
}

// Get returns the value at key in the decoded JSON body, or nil.
func (r *Response) Get(key string) any {
	return r.JSON(key, nil)
}

// Has reports whether the decoded JSON body holds a non-nil value at key.
func (r *Response) Has(key string) bool {
	return r.Get(key) != nil
}

// Set always fails; responses are read-only.
func (r *Response) Set(string, any) error {
	return ErrReadOnly
}

// Unset always fails; responses are read-only.
func (r *Response) Unset(string) error {
	return ErrReadOnly
}
