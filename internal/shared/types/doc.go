// Package types defines the shared contracts between the service registry,
// the providers, and the HTTP surface: service and tool definitions, the
// execution context, and the boolean result envelope every tool returns.
package types
