// Package monitoring provides Prometheus metrics for the HTTP surface
// and for individual tool executions.
package monitoring
