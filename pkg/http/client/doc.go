// Package client is a small HTTP client and response wrapper.
//
// Client wraps resty over a pooled go-retryablehttp transport with an
// optional rate limiter. It is always constructed explicitly and passed to
// the code that needs it. Each verb helper routes through Request, which maps
// the data argument onto the request:
//
//   - Get, Delete: data becomes the query string
//   - Post, Put: data becomes an urlencoded form
//   - PostJSON: data is encoded as a JSON body
//   - Upload: data is a list of multipart Parts
//
// A completed exchange always yields a *Response, including 4xx and 5xx
// statuses. Only failures that produced no response at all are returned as
// errors. Callers opt in to treating bad statuses as errors through
// Response.Err, Response.Throw or Response.ThrowIf.
//
// Response decodes its body lazily as JSON (sonic), XML or YAML (goccy) and
// caches each decoding. Keys passed to JSON, XML, YAML and Get are dot paths
// resolved with package arr.
package client
