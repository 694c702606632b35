package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"gigcalendar/internal/clock"
	"gigcalendar/internal/domain"
)

// RenderCache holds the most recently warmed render model per band. One
// writer (the warmer), any number of readers.
type RenderCache struct {
	mu     sync.RWMutex
	byBand map[int64]*domain.RenderModel
}

func NewRenderCache() *RenderCache {
	return &RenderCache{byBand: make(map[int64]*domain.RenderModel)}
}

func (c *RenderCache) Put(bandID int64, model *domain.RenderModel) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byBand[bandID] = model
}

func (c *RenderCache) Get(bandID int64) (*domain.RenderModel, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.byBand[bandID]
	return m, ok
}

// WeekWarmer preloads the current week for a fixed set of bands on a cron
// schedule, so their dashboard hits a warm model instead of a cold fetch.
// A failed warm keeps the previous cached model.
type WeekWarmer struct {
	loader  domain.CalendarService
	cache   *RenderCache
	logger  *slog.Logger
	bandIDs []int64
	now     func() time.Time
	cron    *cron.Cron
}

func NewWeekWarmer(loader domain.CalendarService, cache *RenderCache, logger *slog.Logger, bandIDs []int64, now func() time.Time) *WeekWarmer {
	if now == nil {
		now = time.Now
	}
	return &WeekWarmer{
		loader:  loader,
		cache:   cache,
		logger:  logger,
		bandIDs: bandIDs,
		now:     now,
	}
}

// Start begins warming on the given cron spec (e.g. "*/15 * * * *") and runs
// one warm immediately so the cache is never cold at boot.
func (w *WeekWarmer) Start(spec string) error {
	c := cron.New()
	if _, err := c.AddFunc(spec, w.WarmOnce); err != nil {
		return err
	}
	w.cron = c
	c.Start()
	go w.WarmOnce()
	return nil
}

// Stop halts the schedule. In-flight warms finish on their own.
func (w *WeekWarmer) Stop() {
	if w.cron != nil {
		w.cron.Stop()
	}
}

// WarmOnce loads today's week for every configured band and caches each
// successful model.
func (w *WeekWarmer) WarmOnce() {
	pivot := clock.FormatDate(w.now())
	for _, bandID := range w.bandIDs {
		model, err := w.loader.LoadWeek(context.Background(), bandID, pivot)
		if err != nil {
			w.logger.Warn("week warm failed", "band_id", bandID, "pivot", pivot, "error", err)
			continue
		}
		w.cache.Put(bandID, model)
	}
}
