package service

import (
	"context"
	"errors"
	"log/slog"

	"simon-jot/internal/simon"
	"simon-jot/internal/storage"
)

// cachedFetcher serves editor brainstorm requests from the brainstorm cache before asking the
// backend. Cache failures are logged and otherwise ignored.
type cachedFetcher struct {
	backend Backend
	cache   storage.BrainstormCache
	logger  *slog.Logger
}

func (f *cachedFetcher) Brainstorm(ctx context.Context, text, session string) (simon.Brainstorm, error) {
	if f.cache == nil {
		return f.backend.Brainstorm(ctx, text, session)
	}

	hash := storage.HashText(text)
	rec, err := f.cache.Get(ctx, hash)
	switch {
	case err == nil:
		f.logger.DebugContext(ctx, "brainstorm cache hit", "hash", hash[:12])
		return simon.Brainstorm{Goal: rec.Goal, Questions: rec.Questions}, nil
	case !errors.Is(err, storage.ErrNotFound):
		f.logger.WarnContext(ctx, "brainstorm cache lookup failed", "error", err)
	}

	b, err := f.backend.Brainstorm(ctx, text, session)
	if err != nil {
		return simon.Brainstorm{}, err
	}

	if err := f.cache.Put(ctx, hash, b.Goal, b.Questions); err != nil {
		f.logger.WarnContext(ctx, "failed to cache brainstorm", "error", err)
	}
	return b, nil
}
