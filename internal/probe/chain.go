package probe

import "context"

// ChainStrategy tries each strategy in order and returns the first success.
// It backs the layered discovery order for tools that install outside PATH:
// direct execution, then registry lookup, then filesystem search.
type ChainStrategy []Strategy

func (c ChainStrategy) Resolve(ctx context.Context, p Probe) Outcome {
	var last Outcome
	for _, s := range c {
		last = s.Resolve(ctx, p)
		if last.OK() {
			return last
		}
	}
	if last.Err == nil {
		return Failuref("empty strategy chain for %s", p.Name)
	}
	return last
}
