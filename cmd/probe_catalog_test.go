package cmd

import (
	"testing"
	"time"

	"github.com/minhnv203/toolvet/internal/probe"
)

func TestProbeCatalog_Integrity(t *testing.T) {
	probes := buildProbeCatalog(catalogConfig{Timeout: 5 * time.Second})

	if len(probes) < 50 {
		t.Fatalf("catalog holds %d probes, expected the full tool set", len(probes))
	}

	seen := make(map[string]bool)
	for _, p := range probes {
		if p.Name == "" {
			t.Fatal("probe with empty name")
		}
		if p.Target == "" {
			t.Fatalf("probe %s has empty target", p.Name)
		}
		if p.Category == "" {
			t.Fatalf("probe %s has empty category", p.Name)
		}
		if seen[p.Name] {
			t.Fatalf("duplicate probe name %s", p.Name)
		}
		seen[p.Name] = true
	}
}

func TestProbeCatalog_DualModeVariantNamesDistinct(t *testing.T) {
	probes := buildProbeCatalog(catalogConfig{})
	for _, p := range probes {
		dual, ok := p.Strategy.(probe.DualStrategy)
		if !ok {
			continue
		}
		if dual.Modern.Name == "" || dual.Legacy.Name == "" {
			t.Fatalf("probe %s: dual-mode variants must carry display names", p.Name)
		}
		if dual.Modern.Name == dual.Legacy.Name {
			t.Fatalf("probe %s: variant names must be distinct", p.Name)
		}
	}
}

func TestProbeCatalog_FeatureProbesUseFeatureStrategy(t *testing.T) {
	probes := buildProbeCatalog(catalogConfig{})
	var features int
	for _, p := range probes {
		if p.Category != "OS Features" {
			continue
		}
		features++
		if _, ok := p.Strategy.(probe.FeatureStrategy); !ok {
			t.Fatalf("probe %s in OS Features must use the feature strategy", p.Name)
		}
	}
	if features == 0 {
		t.Fatal("catalog declares no OS feature probes")
	}
}

func TestProbeCatalog_MetadataProbesNeverExecute(t *testing.T) {
	probes := buildProbeCatalog(catalogConfig{})
	for _, p := range probes {
		if _, ok := p.Strategy.(probe.MetadataStrategy); !ok {
			continue
		}
		meta := p.Strategy.(probe.MetadataStrategy)
		if len(meta.Paths) == 0 {
			t.Fatalf("probe %s: metadata strategy without candidate paths", p.Name)
		}
	}
}

func TestProbeCatalog_SearchRootOverride(t *testing.T) {
	probes := buildProbeCatalog(catalogConfig{SearchRoots: []string{"/custom/root"}})
	var checked bool
	for _, p := range probes {
		chain, ok := p.Strategy.(probe.ChainStrategy)
		if !ok {
			continue
		}
		for _, s := range chain {
			search, ok := s.(probe.SearchStrategy)
			if !ok {
				continue
			}
			checked = true
			if len(search.Roots) != 1 || search.Roots[0] != "/custom/root" {
				t.Fatalf("probe %s: search roots not overridden: %v", p.Name, search.Roots)
			}
		}
	}
	if !checked {
		t.Fatal("no chained search strategy found to verify")
	}
}
