package domain

// HypervisorMetric is a metric reported by a hypervisor (Proxmox-style host).
type HypervisorMetric string

const (
	HypervisorCPUPercent      HypervisorMetric = "cpuPercent"
	HypervisorMemoryUsedBytes HypervisorMetric = "memoryUsedBytes"
	HypervisorMemoryPercent   HypervisorMetric = "memoryPercent"
	HypervisorTotalContainers HypervisorMetric = "totalContainers"
	HypervisorTotalVMs        HypervisorMetric = "totalVMs"
	HypervisorRunningCount    HypervisorMetric = "runningCount"
	HypervisorStoppedCount    HypervisorMetric = "stoppedCount"
	HypervisorNetUpBps        HypervisorMetric = "netUpBps"
	HypervisorNetDownBps      HypervisorMetric = "netDownBps"
)

// HypervisorCatalog is every selectable hypervisor metric in picker order.
var HypervisorCatalog = []HypervisorMetric{
	HypervisorCPUPercent,
	HypervisorMemoryUsedBytes,
	HypervisorMemoryPercent,
	HypervisorTotalContainers,
	HypervisorTotalVMs,
	HypervisorRunningCount,
	HypervisorStoppedCount,
	HypervisorNetUpBps,
	HypervisorNetDownBps,
}

// MediaMetric is a metric reported by a media server.
type MediaMetric string

const (
	MediaActiveStreams      MediaMetric = "activeStreams"
	MediaTranscodingStreams MediaMetric = "transcodingStreams"
	MediaActiveUsers        MediaMetric = "activeUsers"
	MediaTotalMovies        MediaMetric = "totalMovies"
	MediaTotalSeries        MediaMetric = "totalSeries"
	MediaTotalEpisodes      MediaMetric = "totalEpisodes"
	MediaTotalSongs         MediaMetric = "totalSongs"
	MediaBandwidthBps       MediaMetric = "bandwidthBps"
)

// MediaCatalog is every selectable media server metric in picker order.
var MediaCatalog = []MediaMetric{
	MediaActiveStreams,
	MediaTranscodingStreams,
	MediaActiveUsers,
	MediaTotalMovies,
	MediaTotalSeries,
	MediaTotalEpisodes,
	MediaTotalSongs,
	MediaBandwidthBps,
}

// TorrentMetric is a metric reported by a torrent client.
type TorrentMetric string

const (
	TorrentDownloadSpeedBps TorrentMetric = "downloadSpeedBps"
	TorrentUploadSpeedBps   TorrentMetric = "uploadSpeedBps"
	TorrentActiveTorrents   TorrentMetric = "activeTorrents"
	TorrentDownloadingCount TorrentMetric = "downloadingCount"
	TorrentSeedingCount     TorrentMetric = "seedingCount"
	TorrentPausedCount      TorrentMetric = "pausedCount"
	TorrentTotalTorrents    TorrentMetric = "totalTorrents"
	TorrentShareRatio       TorrentMetric = "shareRatio"
)

// TorrentCatalog is every selectable torrent client metric in picker order.
var TorrentCatalog = []TorrentMetric{
	TorrentDownloadSpeedBps,
	TorrentUploadSpeedBps,
	TorrentActiveTorrents,
	TorrentDownloadingCount,
	TorrentSeedingCount,
	TorrentPausedCount,
	TorrentTotalTorrents,
	TorrentShareRatio,
}

// DNSMetric is a metric reported by a DNS filter (Pi-hole, AdGuard Home).
type DNSMetric string

const (
	DNSTotalQueries     DNSMetric = "totalQueries"
	DNSBlockedQueries   DNSMetric = "blockedQueries"
	DNSBlockedPercent   DNSMetric = "blockedPercent"
	DNSBlocklistDomains DNSMetric = "blocklistDomains"
	DNSActiveClients    DNSMetric = "activeClients"
	DNSCachedQueries    DNSMetric = "cachedQueries"
	DNSForwardedQueries DNSMetric = "forwardedQueries"
)

// DNSCatalog is every selectable DNS filter metric in picker order.
var DNSCatalog = []DNSMetric{
	DNSTotalQueries,
	DNSBlockedQueries,
	DNSBlockedPercent,
	DNSBlocklistDomains,
	DNSActiveClients,
	DNSCachedQueries,
	DNSForwardedQueries,
}

// CatalogKeys returns the metric keys selectable for kind, in picker order.
// Unknown kinds return nil.
func CatalogKeys(kind ServiceKind) []string {
	switch kind {
	case KindHypervisor:
		return keysOf(HypervisorCatalog)
	case KindMediaServer:
		return keysOf(MediaCatalog)
	case KindTorrentClient:
		return keysOf(TorrentCatalog)
	case KindDNSFilter:
		return keysOf(DNSCatalog)
	}
	return nil
}

func keysOf[M ~string](metrics []M) []string {
	keys := make([]string, len(metrics))
	for i, m := range metrics {
		keys[i] = string(m)
	}
	return keys
}
