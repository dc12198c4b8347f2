// Package monitoring provides Prometheus collectors for outbound HTTP calls.
//
// Collectors are registered only on the registerer the caller hands in. A nil
// registerer still produces working collectors that are simply never exported,
// so instrumented code does not need to branch on whether metrics are wanted.
//
// Metrics:
//   - gohelper_http_client_requests_total{method,host,status}
//   - gohelper_http_client_request_duration_seconds{method,host}
//   - gohelper_http_client_response_size_bytes{method,host}
//   - gohelper_http_client_errors_total{method,host}
package monitoring
