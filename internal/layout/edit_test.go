package layout

import (
	"errors"
	"testing"

	"nathanbeddoewebdev/homegrid/internal/widget/domain"
)

func TestApplyMetrics_KeepsSizeWhenItFits(t *testing.T) {
	w := domain.Widget{ID: "w", Size: domain.SizeMedium, Metrics: hypervisorN(2)}

	got, changed, err := ApplyMetrics(w, domain.KindHypervisor, hypervisorN(4))
	if err != nil {
		t.Fatalf("ApplyMetrics: %v", err)
	}
	if changed || got.Size != domain.SizeMedium {
		t.Errorf("expected medium unchanged, got %s (changed=%v)", got.Size, changed)
	}
	if got.Metrics.Len() != 4 {
		t.Errorf("expected 4 metrics, got %d", got.Metrics.Len())
	}
}

func TestApplyMetrics_GrowsOverflowingWidget(t *testing.T) {
	w := domain.Widget{ID: "w", Size: domain.SizeSmall, Metrics: hypervisorN(2)}

	got, changed, err := ApplyMetrics(w, domain.KindHypervisor, hypervisorN(6))
	if err != nil {
		t.Fatalf("ApplyMetrics: %v", err)
	}
	want := MinimumSizeForContent(hypervisorN(6), domain.KindHypervisor, false)
	if !changed || got.Size != want {
		t.Errorf("expected correction to %s, got %s (changed=%v)", want, got.Size, changed)
	}
}

func TestApplyMetrics_DoesNotShrink(t *testing.T) {
	w := domain.Widget{ID: "w", Size: domain.SizeExtraWide, Metrics: hypervisorN(9)}

	got, changed, err := ApplyMetrics(w, domain.KindHypervisor, hypervisorN(1))
	if err != nil {
		t.Fatalf("ApplyMetrics: %v", err)
	}
	if changed || got.Size != domain.SizeExtraWide {
		t.Errorf("expected extraWide kept, got %s", got.Size)
	}
}

func TestApplyMetrics_KindMismatch(t *testing.T) {
	w := domain.Widget{ID: "w", Size: domain.SizeSmall, Metrics: hypervisorN(1)}

	_, _, err := ApplyMetrics(w, domain.KindHypervisor, domain.TorrentSelection{domain.TorrentShareRatio})
	if !errors.Is(err, domain.ErrKindMismatch) {
		t.Errorf("expected ErrKindMismatch, got %v", err)
	}
}

func TestApplyMetrics_DoesNotAliasInput(t *testing.T) {
	sel := hypervisorN(2)
	got, _, err := ApplyMetrics(domain.Widget{Size: domain.SizeSmall}, domain.KindHypervisor, sel)
	if err != nil {
		t.Fatalf("ApplyMetrics: %v", err)
	}
	sel[0] = domain.HypervisorNetUpBps
	if got.Metrics.Keys()[0] != string(domain.HypervisorCPUPercent) {
		t.Error("widget selection aliases caller slice")
	}
}

func TestApplySize_TolerantAcceptsBorderline(t *testing.T) {
	w := domain.Widget{ID: "w", Size: domain.SizeMedium, Metrics: hypervisorN(3)}

	got, changed := ApplySize(w, domain.KindHypervisor, domain.SizeSmall)
	if changed || got.Size != domain.SizeSmall {
		t.Errorf("expected small accepted under tolerance, got %s (changed=%v)", got.Size, changed)
	}
}

func TestApplySize_CorrectsTooSmall(t *testing.T) {
	w := domain.Widget{ID: "w", Size: domain.SizeLarge, Metrics: hypervisorN(6)}

	got, changed := ApplySize(w, domain.KindHypervisor, domain.SizeSmall)
	want := MinimumSizeForContent(hypervisorN(6), domain.KindHypervisor, false)
	if !changed || got.Size != want {
		t.Errorf("expected correction to %s, got %s (changed=%v)", want, got.Size, changed)
	}
}

func TestApplySize_AutoResolves(t *testing.T) {
	w := domain.Widget{ID: "w", Size: domain.SizeSmall, Metrics: domain.TorrentSelection{domain.TorrentSeedingCount}}

	got, changed := ApplySize(w, domain.KindTorrentClient, domain.SizeAuto)
	if !changed || got.Size != DetermineOptimalSize(domain.KindTorrentClient) {
		t.Errorf("expected auto to resolve to optimal size, got %s", got.Size)
	}
}
