package probe

import (
	"context"
	"reflect"
	"regexp"
	"strings"
	"testing"
)

type panicStrategy struct{}

func (panicStrategy) Resolve(ctx context.Context, p Probe) Outcome {
	panic("defective strategy")
}

func TestRunner_OneEntryPerProbeEvenWhenAllAbsent(t *testing.T) {
	probes := []Probe{
		{Name: "git", Target: "git", Strategy: &stubStrategy{out: Failuref("absent")}},
		{Name: "node", Target: "node", Strategy: &stubStrategy{out: Failuref("absent")}},
		{Name: "docker", Target: "docker", Strategy: &stubStrategy{out: Failuref("absent")}},
	}

	store := NewStore()
	(&Runner{}).Run(context.Background(), probes, store)

	if store.Len() != len(probes) {
		t.Fatalf("store has %d entries, want %d", store.Len(), len(probes))
	}
	for _, p := range probes {
		status, ok := store.Get(p.Name)
		if !ok {
			t.Fatalf("no entry for %s", p.Name)
		}
		if status.Kind != KindMissing {
			t.Fatalf("%s = %v, want Missing", p.Name, status.Kind)
		}
	}
}

func TestRunner_SequentialDeclarationOrder(t *testing.T) {
	var order []string
	probes := []Probe{
		{Name: "zz-last-alphabetically", Strategy: &stubStrategy{out: Success("1.0.0")}},
		{Name: "aa-first-alphabetically", Strategy: &stubStrategy{out: Success("2.0.0")}},
	}

	r := &Runner{OnResult: func(name string, _ VersionStatus) {
		order = append(order, name)
	}}
	r.Run(context.Background(), probes, NewStore())

	want := []string{"zz-last-alphabetically", "aa-first-alphabetically"}
	if !reflect.DeepEqual(order, want) {
		t.Fatalf("completion order = %v, want declaration order %v", order, want)
	}
}

func TestRunner_NormalizeAndExtractPipeline(t *testing.T) {
	raw := "7-Zip 23.01 (x64) : Copyright (c) 1999-2023 Igor Pavlov : 2023-06-20"
	p := Probe{
		Name:     "7-Zip",
		Target:   "7z",
		Pattern:  regexp.MustCompile(`(\d+\.\d+)`),
		Strategy: &stubStrategy{out: Success(raw)},
	}

	store := NewStore()
	(&Runner{}).Run(context.Background(), []Probe{p}, store)

	status, _ := store.Get("7-Zip")
	if status.Kind != KindFound || status.Text != "23.01" {
		t.Fatalf("stored %v %q, want Found 23.01", status.Kind, status.Text)
	}
}

func TestRunner_TwoGroupCompose(t *testing.T) {
	raw := `pip 25.2 from C:\Users\dev\AppData\Local\Programs\Python\Python313\Lib\site-packages\pip (python 3.13)`
	p := Probe{
		Name:     "pip",
		Target:   "pip",
		Pattern:  regexp.MustCompile(`pip (\d+\.\d+).*\(python (\d+\.\d+)\)`),
		Format:   "pip %s, Python %s",
		Strategy: &stubStrategy{out: Success(raw)},
	}

	store := NewStore()
	(&Runner{}).Run(context.Background(), []Probe{p}, store)

	status, _ := store.Get("pip")
	if status.Text != "pip 25.2, Python 3.13" {
		t.Fatalf("stored %q, want composed two-group text", status.Text)
	}
}

func TestRunner_ExtractionFallsBackToRawText(t *testing.T) {
	// The first line alone exceeds the verbose threshold, so the
	// normalizer collapses it to the generic shape; the probe's own
	// pattern still gets a shot at the full raw text.
	raw := "OpenSSH_9.2p1 Debian-2+deb12u3, OpenSSL 3.0.11 19 Sep 2023 " + strings.Repeat("x", 90)
	p := Probe{
		Name:     "OpenSSH",
		Target:   "ssh",
		Arg:      "-V",
		Pattern:  regexp.MustCompile(`OpenSSH_(\d+\.\d+[a-z0-9]*)`),
		Strategy: &stubStrategy{out: Success(raw)},
	}

	store := NewStore()
	(&Runner{}).Run(context.Background(), []Probe{p}, store)

	status, _ := store.Get("OpenSSH")
	if status.Text != "9.2p1" {
		t.Fatalf("stored %q, want %q", status.Text, "9.2p1")
	}
}

func TestRunner_PassThroughWhenPatternNeverMatches(t *testing.T) {
	p := Probe{
		Name:     "tool",
		Target:   "tool",
		Pattern:  regexp.MustCompile(`release (\w+) build`),
		Strategy: &stubStrategy{out: Success("tool version 4.5.6")},
	}
	store := NewStore()
	(&Runner{}).Run(context.Background(), []Probe{p}, store)

	status, _ := store.Get("tool")
	if status.Text != "tool version 4.5.6" {
		t.Fatalf("stored %q, want normalized pass-through", status.Text)
	}
}

func TestRunner_PanicContainedAtProbeBoundary(t *testing.T) {
	probes := []Probe{
		{Name: "bad", Strategy: panicStrategy{}},
		{Name: "good", Strategy: &stubStrategy{out: Success("1.0.0")}},
	}

	store := NewStore()
	(&Runner{}).Run(context.Background(), probes, store)

	bad, ok := store.Get("bad")
	if !ok {
		t.Fatal("panicking probe left no entry")
	}
	if bad.Kind != KindWarning {
		t.Fatalf("panicking probe stored %v, want Warning", bad.Kind)
	}
	good, _ := store.Get("good")
	if good.Kind != KindFound {
		t.Fatal("a panic in one probe must not affect the next")
	}
}

func TestRunner_DualModeRecordsVariantKey(t *testing.T) {
	p := Probe{
		Name:   "Docker Compose",
		Target: "docker",
		Strategy: DualStrategy{
			Modern: Variant{Name: "Docker Compose (v2)", Strategy: &stubStrategy{out: Failuref("no plugin")}},
			Legacy: Variant{Name: "docker-compose (v1)", Strategy: &stubStrategy{out: Success("docker-compose version 1.29.2, build 5becea4c")}},
		},
	}

	store := NewStore()
	(&Runner{}).Run(context.Background(), []Probe{p}, store)

	if _, ok := store.Get("Docker Compose (v2)"); ok {
		t.Fatal("failed modern variant must not be recorded")
	}
	status, ok := store.Get("docker-compose (v1)")
	if !ok {
		t.Fatal("legacy variant result not recorded under its display name")
	}
	if status.Kind != KindFound {
		t.Fatalf("legacy variant = %v, want Found", status.Kind)
	}
}

func TestRunner_FeatureStatusBypassesNormalization(t *testing.T) {
	p := Probe{
		Name:     "Hyper-V",
		Target:   "Microsoft-Hyper-V-All",
		Strategy: FeatureStrategy{Querier: fakeFeatureQuerier{state: FeatureDisabled}},
	}

	store := NewStore()
	(&Runner{}).Run(context.Background(), []Probe{p}, store)

	status, _ := store.Get("Hyper-V")
	if status.Kind != KindWarning || status.Text != "Disabled" {
		t.Fatalf("stored %v %q, want Warning Disabled", status.Kind, status.Text)
	}
}

func TestRunner_ConcurrentRunCoversAllProbes(t *testing.T) {
	var probes []Probe
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"} {
		probes = append(probes, Probe{Name: name, Strategy: &stubStrategy{out: Success(name + " 1.0.0")}})
	}

	store := NewStore()
	(&Runner{Concurrency: 4, RateLimit: 100}).Run(context.Background(), probes, store)

	if store.Len() != len(probes) {
		t.Fatalf("store has %d entries, want %d", store.Len(), len(probes))
	}
}
