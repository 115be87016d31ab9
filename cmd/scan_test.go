package cmd

import (
	"errors"
	"testing"
	"time"

	"github.com/minhnv203/toolvet/internal/probe"
	errs "github.com/minhnv203/toolvet/internal/shared/errors"
)

func TestFilterProbes(t *testing.T) {
	probes := buildProbeCatalog(catalogConfig{Timeout: time.Second})

	t.Run("subset retained in declaration order", func(t *testing.T) {
		got, err := filterProbes(probes, "Git, docker")
		if err != nil {
			t.Fatalf("filter: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("got %d probes, want 2", len(got))
		}
		if got[0].Name != "Git" || got[1].Name != "Docker" {
			t.Fatalf("got %q, %q", got[0].Name, got[1].Name)
		}
	})

	t.Run("unknown name rejected", func(t *testing.T) {
		_, err := filterProbes(probes, "Git,not-a-tool")
		if err == nil {
			t.Fatal("expected error for unknown probe name")
		}
		if !errors.Is(err, errs.ErrUnknownProbe) {
			t.Fatalf("err = %v, want ErrUnknownProbe", err)
		}
	})
}

func TestRenderSummary_ClassifiesBuckets(t *testing.T) {
	// renderSummary must not panic on an empty store (partial-report path
	// after a fatal error can reach it with nothing accumulated).
	renderSummary(probe.NewStore())
	renderSummary(sampleStore())
}
