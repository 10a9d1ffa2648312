package layout

import (
	"fmt"

	"nathanbeddoewebdev/homegrid/internal/widget/domain"
)

// DetermineOptimalSize is the static per-kind size preference used by the
// auto-layout generator. Kinds outside the closed set get SizeSmall.
func DetermineOptimalSize(kind domain.ServiceKind) domain.WidgetSize {
	switch kind {
	case domain.KindHypervisor:
		return domain.SizeLarge
	case domain.KindMediaServer:
		return domain.SizeMedium
	case domain.KindTorrentClient:
		return domain.SizeSmall
	case domain.KindDNSFilter:
		return domain.SizeSmall
	}
	return domain.SizeSmall
}

// DefaultMetrics returns the curated metric list for a kind at a size.
// Smaller sizes get fewer, higher-priority metrics. SizeAuto uses the
// kind's optimal size. The result is a fresh slice the caller may keep.
func DefaultMetrics(kind domain.ServiceKind, size domain.WidgetSize) domain.MetricSelection {
	if size == domain.SizeAuto {
		size = DetermineOptimalSize(kind)
	}

	switch kind {
	case domain.KindHypervisor:
		return hypervisorDefaults(size)
	case domain.KindMediaServer:
		return mediaDefaults(size)
	case domain.KindTorrentClient:
		return torrentDefaults(size)
	case domain.KindDNSFilter:
		return dnsDefaults(size)
	}
	return nil
}

func hypervisorDefaults(size domain.WidgetSize) domain.HypervisorSelection {
	switch size {
	case domain.SizeMedium:
		return domain.HypervisorSelection{
			domain.HypervisorCPUPercent,
			domain.HypervisorMemoryPercent,
			domain.HypervisorRunningCount,
			domain.HypervisorStoppedCount,
		}
	case domain.SizeWide:
		return domain.HypervisorSelection{
			domain.HypervisorCPUPercent,
			domain.HypervisorMemoryPercent,
			domain.HypervisorNetUpBps,
			domain.HypervisorNetDownBps,
		}
	case domain.SizeLarge:
		return domain.HypervisorSelection{
			domain.HypervisorCPUPercent,
			domain.HypervisorMemoryPercent,
			domain.HypervisorMemoryUsedBytes,
			domain.HypervisorRunningCount,
			domain.HypervisorStoppedCount,
			domain.HypervisorTotalVMs,
		}
	case domain.SizeTall:
		return domain.HypervisorSelection{
			domain.HypervisorCPUPercent,
			domain.HypervisorMemoryPercent,
			domain.HypervisorMemoryUsedBytes,
			domain.HypervisorTotalVMs,
			domain.HypervisorTotalContainers,
			domain.HypervisorRunningCount,
		}
	case domain.SizeExtraWide:
		return append(domain.HypervisorSelection(nil), domain.HypervisorCatalog...)
	}
	return domain.HypervisorSelection{
		domain.HypervisorCPUPercent,
		domain.HypervisorMemoryPercent,
	}
}

func mediaDefaults(size domain.WidgetSize) domain.MediaSelection {
	switch size {
	case domain.SizeMedium:
		return domain.MediaSelection{
			domain.MediaActiveStreams,
			domain.MediaTranscodingStreams,
			domain.MediaActiveUsers,
		}
	case domain.SizeWide:
		return domain.MediaSelection{
			domain.MediaActiveStreams,
			domain.MediaTranscodingStreams,
			domain.MediaBandwidthBps,
		}
	case domain.SizeLarge:
		return domain.MediaSelection{
			domain.MediaActiveStreams,
			domain.MediaTranscodingStreams,
			domain.MediaActiveUsers,
			domain.MediaTotalMovies,
			domain.MediaTotalSeries,
		}
	case domain.SizeTall:
		return domain.MediaSelection{
			domain.MediaActiveStreams,
			domain.MediaActiveUsers,
			domain.MediaTotalMovies,
			domain.MediaTotalSeries,
			domain.MediaTotalEpisodes,
		}
	case domain.SizeExtraWide:
		return append(domain.MediaSelection(nil), domain.MediaCatalog...)
	}
	return domain.MediaSelection{domain.MediaActiveStreams}
}

func torrentDefaults(size domain.WidgetSize) domain.TorrentSelection {
	switch size {
	case domain.SizeMedium:
		return domain.TorrentSelection{
			domain.TorrentDownloadSpeedBps,
			domain.TorrentUploadSpeedBps,
			domain.TorrentActiveTorrents,
			domain.TorrentSeedingCount,
		}
	case domain.SizeWide:
		return domain.TorrentSelection{
			domain.TorrentDownloadSpeedBps,
			domain.TorrentUploadSpeedBps,
			domain.TorrentDownloadingCount,
			domain.TorrentSeedingCount,
		}
	case domain.SizeLarge:
		return domain.TorrentSelection{
			domain.TorrentDownloadSpeedBps,
			domain.TorrentUploadSpeedBps,
			domain.TorrentActiveTorrents,
			domain.TorrentDownloadingCount,
			domain.TorrentSeedingCount,
			domain.TorrentPausedCount,
		}
	case domain.SizeTall:
		return domain.TorrentSelection{
			domain.TorrentDownloadSpeedBps,
			domain.TorrentUploadSpeedBps,
			domain.TorrentActiveTorrents,
			domain.TorrentDownloadingCount,
			domain.TorrentSeedingCount,
			domain.TorrentTotalTorrents,
		}
	case domain.SizeExtraWide:
		return append(domain.TorrentSelection(nil), domain.TorrentCatalog...)
	}
	return domain.TorrentSelection{
		domain.TorrentDownloadSpeedBps,
		domain.TorrentUploadSpeedBps,
	}
}

func dnsDefaults(size domain.WidgetSize) domain.DNSSelection {
	switch size {
	case domain.SizeMedium, domain.SizeWide:
		return domain.DNSSelection{
			domain.DNSTotalQueries,
			domain.DNSBlockedQueries,
			domain.DNSBlockedPercent,
		}
	case domain.SizeLarge:
		return domain.DNSSelection{
			domain.DNSTotalQueries,
			domain.DNSBlockedQueries,
			domain.DNSBlockedPercent,
			domain.DNSActiveClients,
			domain.DNSBlocklistDomains,
		}
	case domain.SizeTall:
		return domain.DNSSelection{
			domain.DNSTotalQueries,
			domain.DNSBlockedQueries,
			domain.DNSBlockedPercent,
			domain.DNSCachedQueries,
			domain.DNSForwardedQueries,
		}
	case domain.SizeExtraWide:
		return append(domain.DNSSelection(nil), domain.DNSCatalog...)
	}
	return domain.DNSSelection{
		domain.DNSTotalQueries,
		domain.DNSBlockedPercent,
	}
}

// CheckDefaults verifies that every curated default list fits its size's
// strict capacity and only names metrics from the kind's catalog. It is
// run at startup so a table edit that breaks this cannot ship silently.
func CheckDefaults() error {
	sizes := append([]domain.WidgetSize{domain.SizeAuto}, domain.ConcreteSizes...)
	for _, kind := range domain.Kinds {
		for _, size := range sizes {
			sel := DefaultMetrics(kind, size)
			if sel == nil || sel.Kind() != kind {
				return fmt.Errorf("layout: defaults for %s/%s: %w", kind, size, domain.ErrKindMismatch)
			}
			parsed, err := domain.SelectionFromKeys(kind, sel.Keys())
			if err != nil {
				return fmt.Errorf("layout: defaults for %s/%s: %w", kind, size, err)
			}
			if parsed.Len() != sel.Len() {
				return fmt.Errorf("layout: defaults for %s/%s repeat a metric", kind, size)
			}
			effective := size
			if effective == domain.SizeAuto {
				effective = DetermineOptimalSize(kind)
			}
			if !ValidateWidgetSize(effective, sel, kind, false) {
				return fmt.Errorf("layout: defaults for %s/%s hold %d metrics, capacity is %d",
					kind, size, sel.Len(), Capacity(kind, effective, false))
			}
		}
	}
	return nil
}
