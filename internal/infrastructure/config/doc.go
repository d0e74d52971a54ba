// Package config provides environment-driven configuration for courier
// clients.
//
// Configuration is loaded from environment variables with sensible defaults.
//
// Configuration Sections:
//   - Transport: timeout, retries, redirects, TLS verification, proxy, user agent
//   - Codecs: extended codec installation, content sniffing, charset transcoding
//   - Logging: log level and output format
//   - RateLimit: client-side request rate limiting
//   - Breaker: circuit breaker around the transport
//   - Tracing: trace header propagation and span logging
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("timeout %s, retries %d\n", cfg.Transport.Timeout, cfg.Transport.RetryCount)
//
// Environment Variables:
//   - COURIER_TIMEOUT, COURIER_RETRY_COUNT, COURIER_RETRY_WAIT_MIN, COURIER_RETRY_WAIT_MAX
//   - COURIER_USER_AGENT, COURIER_FOLLOW_REDIRECTS, COURIER_MAX_REDIRECTS
//   - COURIER_VERIFY_TLS, COURIER_PROXY
//   - COURIER_EXTENDED_CODECS, COURIER_SNIFF, COURIER_TRANSCODE_UTF8
//   - COURIER_LOG_LEVEL, COURIER_LOG_DEV
//   - COURIER_RATE_LIMIT_RPS, COURIER_RATE_LIMIT_BURST
//   - COURIER_BREAKER_ENABLED, COURIER_BREAKER_FAILURES, COURIER_BREAKER_TIMEOUT
//   - COURIER_TRACING
package config
