// Package httputil provides shared HTTP client utilities.
//
// [Retry] wraps requests with automatic retry for transient failures
// (network errors, 5xx responses, 429 rate limits) using exponential
// backoff. Only errors wrapped with [RetryableError] are retried, so
// callers decide per-failure whether a retry can help.
package httputil
