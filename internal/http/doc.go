// Package http provides the gin handlers for the engine's REST surface:
// health probes, service discovery, and tool execution.
package http
