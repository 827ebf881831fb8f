package main

import (
	internalConfig "github.com/flash-go/depot-service/internal/config"
	"github.com/flash-go/sdk/telemetry"
)

var envMap = map[string]string{
	"OTEL_COLLECTOR_GRPC":       telemetry.OtelCollectorGrpcOptKey,
	"OTEL_COLLECTOR_CA_CRT":     telemetry.OtelCollectorCaCrtOptKey,
	"OTEL_COLLECTOR_CLIENT_CRT": telemetry.OtelCollectorClientCrtOptKey,
	"OTEL_COLLECTOR_CLIENT_KEY": telemetry.OtelCollectorClientKeyOptKey,
	"DEPOT_ROOT_PATH":           internalConfig.DepotRootPathOptKey,
	"DEPOT_REPOSITORIES":        internalConfig.DepotRepositoriesOptKey,
	"DEPOT_WHITELIST":           internalConfig.DepotWhitelistOptKey,
	"DEPOT_BLACKLIST":           internalConfig.DepotBlacklistOptKey,
	"DEPOT_PROXY":               internalConfig.DepotProxyOptKey,
}
