package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thinkcraftlab/studio/internal/db"
	"github.com/thinkcraftlab/studio/internal/events"
	"github.com/thinkcraftlab/studio/internal/migrations"
	"github.com/thinkcraftlab/studio/internal/repo"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) PublishEvent(ctx context.Context, topic, key string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event.(events.Event))
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	gdb, err := db.OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	require.NoError(t, migrations.AutoMigrate(gdb))
	t.Cleanup(func() { _ = db.Close(gdb) })

	return &repo.GormRepo{DB: gdb}
}
