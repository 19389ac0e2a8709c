/*
Package monitoring provides Prometheus metrics for the studio server.

# Overview

Metrics live in a private registry so tests and multiple servers in one
process never collide on registration.

# Features

- HTTP request metrics (latency, throughput, size) keyed by route template
- Codec operations by result (ok, empty, base64, inflate, json, invalid)
- History size and swallowed storage failures
- Storage circuit breaker state
- A JSON snapshot for the health endpoint

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
*/
package monitoring
