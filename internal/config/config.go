package config

const (
	DepotRootPathOptKey     = "depot/root_path"
	DepotRepositoriesOptKey = "depot/repositories"
	DepotWhitelistOptKey    = "depot/whitelist"
	DepotBlacklistOptKey    = "depot/blacklist"
	DepotProxyOptKey        = "depot/proxy"
)
