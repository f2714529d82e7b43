// AngelaMos | 2026
// handler.go

package admin

import (
	"context"
	"database/sql"
	"net/http"
	"runtime"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/angelamos/workhaven/internal/core"
)

// SessionPurger removes refresh tokens that expired past their grace
// window.
type SessionPurger interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

// MarketplaceCounter reports listing totals for the admin dashboard.
type MarketplaceCounter interface {
	CountUsers(ctx context.Context) (int, error)
	CountProperties(ctx context.Context) (int, error)
	CountWorkspaces(ctx context.Context) (int, error)
}

type Handler struct {
	dbStats     func() sql.DBStats
	redisStats  func() *redis.PoolStats
	dbPing      func(ctx context.Context) error
	redisPing   func(ctx context.Context) error
	sessions    SessionPurger
	marketplace MarketplaceCounter
}

type HandlerConfig struct {
	DBStats     func() sql.DBStats
	RedisStats  func() *redis.PoolStats
	DBPing      func(ctx context.Context) error
	RedisPing   func(ctx context.Context) error
	Sessions    SessionPurger
	Marketplace MarketplaceCounter
}

func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{
		dbStats:     cfg.DBStats,
		redisStats:  cfg.RedisStats,
		dbPing:      cfg.DBPing,
		redisPing:   cfg.RedisPing,
		sessions:    cfg.Sessions,
		marketplace: cfg.Marketplace,
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Get("/stats", h.GetSystemStats)
		r.Get("/stats/marketplace", h.GetMarketplaceStats)
		r.Post("/sessions/purge", h.PurgeExpiredSessions)
	})
}

// GetSystemStats gathers dependency health, pool stats, and process
// stats in one dashboard payload.
func (h *Handler) GetSystemStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	response := SystemStatsResponse{
		Database: DependencyStatus{
			Healthy: h.ping(ctx, h.dbPing),
			Pool:    h.dbPoolStats(),
		},
		Redis: DependencyStatus{
			Healthy: h.ping(ctx, h.redisPing),
			Pool:    h.redisPoolStats(),
		},
		Runtime: collectRuntimeStats(),
	}

	core.OK(w, response)
}

func (h *Handler) GetMarketplaceStats(w http.ResponseWriter, r *http.Request) {
	if h.marketplace == nil {
		core.OK(w, MarketplaceStats{})
		return
	}

	stats, err := h.collectMarketplaceStats(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, stats)
}

func (h *Handler) collectMarketplaceStats(
	ctx context.Context,
) (MarketplaceStats, error) {
	var stats MarketplaceStats
	var err error

	if stats.Users, err = h.marketplace.CountUsers(ctx); err != nil {
		return stats, err
	}
	if stats.Properties, err = h.marketplace.CountProperties(ctx); err != nil {
		return stats, err
	}
	if stats.Workspaces, err = h.marketplace.CountWorkspaces(ctx); err != nil {
		return stats, err
	}

	return stats, nil
}

func (h *Handler) PurgeExpiredSessions(w http.ResponseWriter, r *http.Request) {
	if h.sessions == nil {
		core.OK(w, PurgeResponse{})
		return
	}

	purged, err := h.sessions.DeleteExpired(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OKMessage(w, "expired sessions purged", PurgeResponse{
		Purged: purged,
	})
}

func (h *Handler) ping(
	ctx context.Context,
	fn func(ctx context.Context) error,
) bool {
	return fn == nil || fn(ctx) == nil
}

func (h *Handler) dbPoolStats() map[string]any {
	if h.dbStats == nil {
		return nil
	}

	s := h.dbStats()
	return map[string]any{
		"max_open_connections": s.MaxOpenConnections,
		"open_connections":     s.OpenConnections,
		"in_use":               s.InUse,
		"idle":                 s.Idle,
		"wait_count":           s.WaitCount,
		"wait_duration":        s.WaitDuration.String(),
	}
}

func (h *Handler) redisPoolStats() map[string]any {
	if h.redisStats == nil {
		return nil
	}

	s := h.redisStats()
	return map[string]any{
		"hits":        s.Hits,
		"misses":      s.Misses,
		"timeouts":    s.Timeouts,
		"total_conns": s.TotalConns,
		"idle_conns":  s.IdleConns,
		"stale_conns": s.StaleConns,
	}
}

func collectRuntimeStats() RuntimeStats {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return RuntimeStats{
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
		NumCPU:       runtime.NumCPU(),
		MemAlloc:     mem.Alloc,
		MemSys:       mem.Sys,
		NumGC:        mem.NumGC,
	}
}

type SystemStatsResponse struct {
	Database DependencyStatus `json:"database"`
	Redis    DependencyStatus `json:"redis"`
	Runtime  RuntimeStats     `json:"runtime"`
}

type DependencyStatus struct {
	Healthy bool           `json:"healthy"`
	Pool    map[string]any `json:"pool,omitempty"`
}

type RuntimeStats struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutine"`
	NumCPU       int    `json:"num_cpu"`
	MemAlloc     uint64 `json:"mem_alloc_bytes"`
	MemSys       uint64 `json:"mem_sys_bytes"`
	NumGC        uint32 `json:"num_gc"`
}

type MarketplaceStats struct {
	Users      int `json:"users"`
	Properties int `json:"properties"`
	Workspaces int `json:"workspaces"`
}

type PurgeResponse struct {
	Purged int64 `json:"purged"`
}
