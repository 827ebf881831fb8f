package main

import "time"

const (
	collectGoRuntimeMetricsTimeout = 10 * time.Second
	serverMaxRequestBodySize       = 1024 * 1024 * 64 // 64MB, text resources only
	serverReadTimeout              = 10 * time.Minute
)
