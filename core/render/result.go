package render

import (
	"strings"

	"github.com/gaurav-prasanna/articlepipe/core"
)

// Result is the output of one render pass: fragments in append order plus
// any diagnostics recovered along the way. It implements core.Sink.
type Result struct {
	Title       string
	Fragments   []core.Fragment
	Diagnostics []core.Diagnostic
}

// Append records a fragment.
func (r *Result) Append(f core.Fragment) {
	r.Fragments = append(r.Fragments, f)
}

// HTML concatenates all fragments, one per line.
func (r *Result) HTML() string {
	parts := make([]string, len(r.Fragments))
	for i, f := range r.Fragments {
		parts[i] = f.HTML
	}
	return strings.Join(parts, "\n")
}

// Blocks returns only the block fragments, in document order.
func (r *Result) Blocks() []core.Fragment {
	var out []core.Fragment
	for _, f := range r.Fragments {
		if f.Kind == core.FragmentBlock {
			out = append(out, f)
		}
	}
	return out
}
