package command

import (
	"context"
	"errors"
	"sync"

	"github.com/MrSnakeDoc/seeyoulater/internal/domain"
)

// Guarded serializes every call to the wrapped backend behind one mutex.
// The server shares a single store across request goroutines through it,
// so only one operation is ever in flight.
type Guarded struct {
	mu   sync.Mutex
	next Commands
}

var _ Commands = (*Guarded)(nil)

func NewGuarded(next Commands) *Guarded {
	return &Guarded{next: next}
}

func (g *Guarded) Add(ctx context.Context, req domain.AddRequest) (*domain.AddResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.next.Add(ctx, req)
}

func (g *Guarded) Find(ctx context.Context, q domain.SearchQuery) ([]domain.Bookmark, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.next.Find(ctx, q)
}

func (g *Guarded) Tags(ctx context.Context, q domain.TagsQuery) ([]domain.TagCount, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.next.Tags(ctx, q)
}

func (g *Guarded) RenameTag(ctx context.Context, from, to string) (int64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.next.RenameTag(ctx, from, to)
}

func (g *Guarded) Delete(ctx context.Context, q domain.SearchQuery) (int64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.next.Delete(ctx, q)
}

// SchemaVersion reads the store's schema version under the same lock as
// the commands. It fails when the wrapped backend has no local store.
func (g *Guarded) SchemaVersion(ctx context.Context) (int, error) {
	v, ok := g.next.(interface {
		SchemaVersion(ctx context.Context) (int, error)
	})
	if !ok {
		return 0, errors.New("backend has no local schema")
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return v.SchemaVersion(ctx)
}

func (g *Guarded) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.next.Close()
}
