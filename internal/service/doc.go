// Package service implements the provider registry that maps tool IDs to
// service implementations and dispatches execution requests to them.
package service
