// Package observability provides the zap logger factory and the Prometheus
// collectors of the courses API.
//
// This package implements:
//   - Logger construction from LOG_LEVEL and LOG_FORMAT
//   - HTTP request latency by method, route pattern and status
//   - Authentication failure counters by reason
//   - database/sql pool statistics
package observability
