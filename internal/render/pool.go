package render

import (
	"sync"

	"github.com/charmbracelet/glamour"
)

// glamour.TermRenderer is not safe for concurrent Render calls, so each
// distinct Options value gets its own pool of renderers.
var (
	poolsMu sync.Mutex
	pools   = map[Options]*sync.Pool{}
)

func poolFor(opts Options) *sync.Pool {
	poolsMu.Lock()
	defer poolsMu.Unlock()

	pool, ok := pools[opts]
	if !ok {
		pool = &sync.Pool{}
		pools[opts] = pool
	}
	return pool
}

func acquire(opts Options) (*glamour.TermRenderer, error) {
	if r, ok := poolFor(opts).Get().(*glamour.TermRenderer); ok {
		return r, nil
	}
	return newRenderer(opts)
}

func release(opts Options, r *glamour.TermRenderer) {
	if r != nil {
		poolFor(opts).Put(r)
	}
}

func newRenderer(opts Options) (*glamour.TermRenderer, error) {
	rendererOpts := []glamour.TermRendererOption{
		glamour.WithStylePath(opts.Style),
		glamour.WithWordWrap(opts.Width),
		glamour.WithTableWrap(opts.TableWrap),
		glamour.WithInlineTableLinks(opts.InlineTableLinks),
	}
	if opts.EnableEmoji {
		rendererOpts = append(rendererOpts, glamour.WithEmoji())
	}
	if opts.PreserveNewLines {
		rendererOpts = append(rendererOpts, glamour.WithPreservedNewLines())
	}
	return glamour.NewTermRenderer(rendererOpts...)
}

// PoolCount returns the number of distinct option sets seen so far
func PoolCount() int {
	poolsMu.Lock()
	defer poolsMu.Unlock()
	return len(pools)
}

// ResetPools drops every pooled renderer
func ResetPools() {
	poolsMu.Lock()
	defer poolsMu.Unlock()
	pools = map[Options]*sync.Pool{}
}
