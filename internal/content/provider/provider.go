package provider

import (
	"context"
	"fmt"
	"sync"

	"github.com/knst/site-services/internal/content"
	"github.com/knst/site-services/internal/content/repository"
	"github.com/knst/site-services/pkg/logger"
	"github.com/knst/site-services/pkg/metrics"
)

// Provider holds the current merged content document and broadcasts changes
// to readers. One Provider serves the whole process; it is constructed in
// main and passed to every consumer rather than living in a package global.
type Provider struct {
	repo repository.Repository
	live bool

	mu      sync.RWMutex
	content content.Document
	loading bool

	subMu  sync.Mutex
	subs   map[int]chan struct{}
	nextID int

	stopWatch func()
}

// New creates a Provider over the given repository. When live is true, Start
// additionally opens a watch so remote writes from other instances propagate
// into this one; otherwise the content only changes through local saves.
func New(repo repository.Repository, live bool) *Provider {
	return &Provider{
		repo:    repo,
		live:    live,
		content: content.Defaults(),
		loading: true,
		subs:    map[int]chan struct{}{},
	}
}

// Start loads the stored document, bootstrapping it with the defaults when
// absent, and begins watching for remote changes in live mode. Defaults are
// always merged under the stored values so every field resolves.
func (p *Provider) Start(ctx context.Context) error {
	doc, err := p.repo.Load(ctx)
	if err == repository.ErrNotFound {
		logger.Infof("content document absent, bootstrapping defaults")
		if werr := p.repo.WriteFull(ctx, content.Defaults()); werr != nil {
			return fmt.Errorf("bootstrap content: %w", werr)
		}
		doc = content.Defaults()
	} else if err != nil {
		return fmt.Errorf("load content: %w", err)
	}

	p.setContent(content.Merge(content.Defaults(), doc))
	p.mu.Lock()
	p.loading = false
	p.mu.Unlock()

	if p.live {
		stop, err := p.repo.Watch(ctx, func(d content.Document) {
			p.setContent(content.Merge(content.Defaults(), d))
		})
		if err != nil {
			// keep serving the loaded snapshot; remote edits just won't
			// propagate until restart
			logger.Warnf("content watch unavailable, falling back to fetch-once: %v", err)
		} else {
			p.stopWatch = stop
		}
	}
	return nil
}

// Stop tears down the watch, if any.
func (p *Provider) Stop() {
	if p.stopWatch != nil {
		p.stopWatch()
		p.stopWatch = nil
	}
}

// Loading reports whether the initial load has completed.
func (p *Provider) Loading() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loading
}

// Snapshot returns a copy of the current merged content.
func (p *Provider) Snapshot() content.Document {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.content.Clone()
}

// Save applies value at the path optimistically in memory, then issues the
// partial write to the store. A failed store write is reported to the caller
// and counted, but the in-memory change is not rolled back; the editor keeps
// seeing their edit and may retry.
func (p *Provider) Save(ctx context.Context, path content.Path, value any) error {
	p.mu.Lock()
	p.content.Set(path, value)
	p.mu.Unlock()
	p.notify()

	if err := p.repo.WritePath(ctx, path, value); err != nil {
		metrics.ContentSaves.WithLabelValues("error").Inc()
		logger.Errorf("content save %s failed: %v", path.String(), err)
		return err
	}
	metrics.ContentSaves.WithLabelValues("ok").Inc()
	return nil
}

// Subscribe returns a channel that receives a signal after every content
// change, and a cancel function. Signals coalesce; receivers re-read via
// Snapshot.
func (p *Provider) Subscribe() (<-chan struct{}, func()) {
	p.subMu.Lock()
	id := p.nextID
	p.nextID++
	ch := make(chan struct{}, 1)
	p.subs[id] = ch
	p.subMu.Unlock()

	cancel := func() {
		p.subMu.Lock()
		delete(p.subs, id)
		p.subMu.Unlock()
	}
	return ch, cancel
}

func (p *Provider) setContent(doc content.Document) {
	p.mu.Lock()
	p.content = doc
	p.mu.Unlock()
	p.notify()
}

func (p *Provider) notify() {
	p.subMu.Lock()
	for _, ch := range p.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	p.subMu.Unlock()
}
