// Package server provides the MCP server context, health checks, and the
// dedicated metrics server for the calflow application.
//
// # Key Components
//
// ServerContext manages Google Calendar clients with lazy initialization and
// caching. Clients are keyed by the impersonated user: one service account
// key serves many users via domain-wide delegation.
//
// HealthChecker exposes Kubernetes-style liveness and readiness probes
// (/healthz, /readyz) for the HTTP transport.
//
// MetricsServer serves Prometheus metrics on a dedicated port, isolated from
// the main application traffic.
package server
