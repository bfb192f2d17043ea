// Package monitor exposes the session read-only over HTTP for line-side
// dashboards: a JSON API under /api/v1/, a Prometheus text-format /metrics
// endpoint, and optional API key authentication. It never mutates system
// state.
package monitor
