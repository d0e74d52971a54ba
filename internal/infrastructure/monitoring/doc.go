/*
Package monitoring provides Prometheus metrics for outgoing requests.

# Overview

Every request sent by a courier client is counted and timed, response sizes
are observed, and codec and transport failures are tallied by content type
and method.

# Usage

	// Process-wide collector on the default Prometheus registerer
	metrics := monitoring.Default()

	// Isolated collector, e.g. in tests
	metrics := monitoring.NewMetrics(prometheus.NewRegistry())

	timer := monitoring.NewTimer(metrics, "GET")
	// ... execute request ...
	timer.Stop(200, len(body))
	// or, when no response arrived
	timer.Fail()

# Metrics

	courier_requests_total{method,status}     status is "error" for transport failures
	courier_request_duration_seconds{method}
	courier_response_size_bytes{method}
	courier_codec_errors_total{mime,direction}
	courier_transport_errors_total{method}
*/
package monitoring
