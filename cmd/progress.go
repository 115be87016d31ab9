package cmd

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/minhnv203/toolvet/internal/probe"
)

type progressPrinter struct {
	total    int
	mu       sync.Mutex
	ok       int
	missing  int
	warning  int
	updates  chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

func newProgressPrinter(total int) *progressPrinter {
	if total <= 0 {
		total = 1
	}
	return &progressPrinter{
		total:   total,
		updates: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
}

func (p *progressPrinter) Start() {
	go p.loop()
}

func (p *progressPrinter) Increment(status probe.VersionStatus) {
	p.mu.Lock()
	switch status.Kind {
	case probe.KindMissing:
		p.missing++
	case probe.KindWarning:
		p.warning++
	default:
		p.ok++
	}
	p.mu.Unlock()

	select {
	case p.updates <- struct{}{}:
	default:
	}
}

func (p *progressPrinter) Stop() {
	p.stopOnce.Do(func() {
		close(p.done)
	})
	fmt.Fprintf(os.Stdout, "\r%s\r", strings.Repeat(" ", 80))
}

func (p *progressPrinter) loop() {
	ticker := time.NewTicker(300 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-p.updates:
			p.print()
		case <-ticker.C:
			p.print()
		case <-p.done:
			return
		}
	}
}

func (p *progressPrinter) print() {
	p.mu.Lock()
	completed := p.ok + p.missing + p.warning
	line := fmt.Sprintf("\rprobes %d/%d (ok %d, missing %d, warnings %d)",
		completed, p.total, p.ok, p.missing, p.warning)
	p.mu.Unlock()
	fmt.Fprint(os.Stdout, line)
}
