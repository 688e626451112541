package provider

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/knst/site-services/internal/content"
	"github.com/knst/site-services/internal/content/repository"
)

func path(t *testing.T, raw string) content.Path {
	t.Helper()
	p, err := content.ParsePath(raw)
	require.NoError(t, err)
	return p
}

func TestStartBootstrapsWhenAbsent(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepo()
	p := New(repo, false)

	require.True(t, p.Loading())
	require.NoError(t, p.Start(ctx))
	require.False(t, p.Loading())

	// the store now holds the full default document
	stored, err := repo.Load(ctx)
	require.NoError(t, err)
	v, ok := stored.Lookup(path(t, "hero.title"))
	require.True(t, ok)
	require.NotEmpty(t, v)
}

func TestStartDoesNotOverwriteExisting(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepo()
	require.NoError(t, repo.WriteFull(ctx, content.Defaults()))
	require.NoError(t, repo.WritePath(ctx, path(t, "hero.title"), "Custom"))

	// a second load-or-bootstrap must not reset custom values to defaults
	p := New(repo, false)
	require.NoError(t, p.Start(ctx))

	stored, err := repo.Load(ctx)
	require.NoError(t, err)
	v, _ := stored.Lookup(path(t, "hero.title"))
	require.Equal(t, "Custom", v)

	snap := p.Snapshot()
	v, _ = snap.Lookup(path(t, "hero.title"))
	require.Equal(t, "Custom", v)
}

func TestStartMergesDefaultsUnderStored(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepo()
	// a sparse document from an earlier schema version
	require.NoError(t, repo.WriteFull(ctx, content.Document{
		"hero": map[string]any{"title": "Old"},
	}))

	p := New(repo, false)
	require.NoError(t, p.Start(ctx))

	snap := p.Snapshot()
	v, _ := snap.Lookup(path(t, "hero.title"))
	require.Equal(t, "Old", v)
	sub, ok := snap.Lookup(path(t, "hero.subtitle"))
	require.True(t, ok)
	require.NotEmpty(t, sub)
	card, ok := snap.Lookup(path(t, "whyNST.card3.title"))
	require.True(t, ok)
	require.NotEmpty(t, card)
}

func TestSaveOptimisticAndPersisted(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepo()
	p := New(repo, false)
	require.NoError(t, p.Start(ctx))

	require.NoError(t, p.Save(ctx, path(t, "hero.title"), "B"))

	// visible locally
	v, _ := p.Snapshot().Lookup(path(t, "hero.title"))
	require.Equal(t, "B", v)

	// and persisted: a fresh load sees it
	stored, err := repo.Load(ctx)
	require.NoError(t, err)
	v, _ = stored.Lookup(path(t, "hero.title"))
	require.Equal(t, "B", v)
}

// failingRepo fails every write but loads normally; models an unreachable store.
type failingRepo struct {
	*repository.MemoryRepo
}

var errDown = errors.New("store unreachable")

func (f *failingRepo) WritePath(ctx context.Context, p content.Path, value any) error {
	return errDown
}

func TestSaveKeepsOptimisticValueOnFailure(t *testing.T) {
	ctx := context.Background()
	mem := repository.NewMemoryRepo()
	require.NoError(t, mem.WriteFull(ctx, content.Defaults()))
	p := New(&failingRepo{mem}, false)
	require.NoError(t, p.Start(ctx))

	err := p.Save(ctx, path(t, "hero.title"), "Unsynced")
	require.ErrorIs(t, err, errDown)

	// the in-memory value keeps the edit even though the write failed
	v, _ := p.Snapshot().Lookup(path(t, "hero.title"))
	require.Equal(t, "Unsynced", v)
}

func TestSubscribeSignalsOnChange(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepo()
	p := New(repo, false)
	require.NoError(t, p.Start(ctx))

	ch, cancel := p.Subscribe()
	defer cancel()

	require.NoError(t, p.Save(ctx, path(t, "theme.primaryColor"), "#123456"))
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("expected a change signal")
	}
	v, _ := p.Snapshot().Lookup(path(t, "theme.primaryColor"))
	require.Equal(t, "#123456", v)
}

func TestLiveProviderSeesRemoteWrites(t *testing.T) {
	ctx, cancelCtx := context.WithCancel(context.Background())
	defer cancelCtx()
	repo := repository.NewMemoryRepo()
	require.NoError(t, repo.WriteFull(ctx, content.Defaults()))

	p := New(repo, true)
	require.NoError(t, p.Start(ctx))
	defer p.Stop()

	ch, cancel := p.Subscribe()
	defer cancel()

	// a write that did not go through this provider
	require.NoError(t, repo.WritePath(ctx, path(t, "contact.phone"), "000-0000-0000"))

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("expected remote change to propagate")
	}
	v, _ := p.Snapshot().Lookup(path(t, "contact.phone"))
	require.Equal(t, "000-0000-0000", v)
}
