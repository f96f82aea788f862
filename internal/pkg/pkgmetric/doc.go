// Package pkgmetric provides Prometheus metrics for the dashboard.
//
// Metrics are registered on an explicit registry rather than the global one
// so that tests and multiple app instances do not collide.
package pkgmetric
