package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/aristath/finchat/internal/database"
	"github.com/aristath/finchat/internal/modules/news"
	"github.com/aristath/finchat/internal/scheduler"
)

// SystemHandlers handles health and monitoring endpoints
type SystemHandlers struct {
	log       zerolog.Logger
	newsDB    *database.DB
	cacheDB   *database.DB
	newsRepo  *news.Repository
	scheduler *scheduler.Scheduler
	startedAt time.Time

	// Set after job registration in main.go
	newsSyncJob scheduler.Job
}

// NewSystemHandlers creates a new system handlers instance
func NewSystemHandlers(log zerolog.Logger, newsDB, cacheDB *database.DB, newsRepo *news.Repository, sched *scheduler.Scheduler) *SystemHandlers {
	return &SystemHandlers{
		log:       log.With().Str("component", "system_handlers").Logger(),
		newsDB:    newsDB,
		cacheDB:   cacheDB,
		newsRepo:  newsRepo,
		scheduler: sched,
		startedAt: time.Now(),
	}
}

// SetNewsSyncJob registers the job reference for manual triggering.
// Called after jobs are registered in main.go.
func (h *SystemHandlers) SetNewsSyncJob(job scheduler.Job) {
	h.newsSyncJob = job
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status        string  `json:"status"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	NewsCount     int     `json:"news_count"`
	NewsDB        string  `json:"news_db"`
	CacheDB       string  `json:"cache_db"`
	CPUPercent    float64 `json:"cpu_percent"`
	RAMPercent    float64 `json:"ram_percent"`
}

// SystemStatusResponse represents the system status response
type SystemStatusResponse struct {
	NewsCount int    `json:"news_count"`
	StartedAt string `json:"started_at"`
	NewsDB    string `json:"news_db_path"`
	CacheDB   string `json:"cache_db_path"`
}

// HandleHealth returns service health including database reachability
// and host resource usage.
func (h *SystemHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:        "ok",
		UptimeSeconds: time.Since(h.startedAt).Seconds(),
		NewsDB:        "ok",
		CacheDB:       "ok",
	}

	if err := h.newsDB.QuickCheck(r.Context()); err != nil {
		h.log.Error().Err(err).Msg("News database check failed")
		resp.Status = "degraded"
		resp.NewsDB = err.Error()
	}
	if err := h.cacheDB.QuickCheck(r.Context()); err != nil {
		h.log.Error().Err(err).Msg("Cache database check failed")
		resp.Status = "degraded"
		resp.CacheDB = err.Error()
	}

	if count, err := h.newsRepo.Count(); err == nil {
		resp.NewsCount = count
	}

	// Resource metrics are best-effort, missing values stay zero
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		resp.CPUPercent = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		resp.RAMPercent = vm.UsedPercent
	}

	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	h.writeJSON(w, status, resp)
}

// HandleSystemStatus returns basic service state
func (h *SystemHandlers) HandleSystemStatus(w http.ResponseWriter, r *http.Request) {
	count, err := h.newsRepo.Count()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to count news items")
	}

	h.writeJSON(w, http.StatusOK, SystemStatusResponse{
		NewsCount: count,
		StartedAt: h.startedAt.Format(time.RFC3339),
		NewsDB:    h.newsDB.Path(),
		CacheDB:   h.cacheDB.Path(),
	})
}

// HandleTriggerNewsSync runs the news sync job immediately
// POST /api/system/sync/news
func (h *SystemHandlers) HandleTriggerNewsSync(w http.ResponseWriter, r *http.Request) {
	if h.newsSyncJob == nil {
		h.log.Warn().Msg("News sync job not registered yet")
		h.writeJSON(w, http.StatusOK, map[string]string{
			"status":  "error",
			"message": "News sync job not registered",
		})
		return
	}

	h.log.Info().Msg("Manual news sync triggered")

	if err := h.scheduler.RunNow(h.newsSyncJob); err != nil {
		h.log.Error().Err(err).Msg("Failed to trigger news sync")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "News sync triggered successfully",
	})
}

// writeJSON writes a JSON response
func (h *SystemHandlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
