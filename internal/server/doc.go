// Package server wires configuration, logging, metrics, middleware, the
// provider registry, and the HTTP routes into a runnable engine.
package server
