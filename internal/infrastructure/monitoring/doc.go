/*
Package monitoring provides Prometheus metrics for the bridge.

# Overview

Every Metrics value owns a private registry. The bridge exposes it at
/metrics and summarizes it at /health.

# Features

- HTTP request metrics (count, latency) by route pattern
- Syscall metrics by syscall name and result status
- Window intent counts
- Dropped message counts by reason (origin, malformed, binary, rate)
- WebSocket connection gauge and message counts
- Uptime, computed on scrape

All record methods accept a nil receiver, so components can run without
metrics in tests.

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	timer := monitoring.NewTimer(metrics, "read")
	res := dispatcher.Dispatch(ctx, env)
	timer.Stop(res.Status, res.Success)
*/
package monitoring
