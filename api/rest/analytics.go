package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"socialnet/cache"
	"socialnet/social"
)

// CommunitiesKey is the cache key the community snapshot is stored under.
const CommunitiesKey = "analytics:communities"

// CommunitiesTTL bounds how long a cached snapshot is served.
const CommunitiesTTL = 10 * time.Minute

// CommunitySnapshot is the cached result of a community analysis run.
type CommunitySnapshot struct {
	Count      int           `json:"count"`
	MostActive [][]uuid.UUID `json:"most_active"`
	ComputedAt time.Time     `json:"computed_at"`
}

// AnalyticsHandler handles graph analytics REST endpoints.
type AnalyticsHandler struct {
	svc    *social.Service
	cache  cache.Cache
	logger *zap.Logger
}

// NewAnalyticsHandler creates an AnalyticsHandler.
func NewAnalyticsHandler(svc *social.Service, c cache.Cache, logger *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc, cache: c, logger: logger}
}

// Communities handles GET /api/analytics/communities.
// It serves the cached snapshot when one exists and recomputes otherwise.
func (h *AnalyticsHandler) Communities(c *gin.Context) {
	ctx := c.Request.Context()

	if raw, err := h.cache.Get(ctx, CommunitiesKey); err == nil {
		var snap CommunitySnapshot
		if json.Unmarshal([]byte(raw), &snap) == nil {
			c.JSON(http.StatusOK, gin.H{"communities": snap, "cached": true})
			return
		}
	}

	snap, err := ComputeCommunities(h.svc)
	if err != nil {
		fail(c, err)
		return
	}
	h.store(ctx, snap)
	c.JSON(http.StatusOK, gin.H{"communities": snap, "cached": false})
}

// Sociable handles GET /api/analytics/sociable?min=n. It returns the
// users with at least n friends, most sociable first.
func (h *AnalyticsHandler) Sociable(c *gin.Context) {
	min, err := strconv.Atoi(c.DefaultQuery("min", "1"))
	if err != nil || min < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid min"})
		return
	}

	users, err := h.svc.UsersWithMinFriends(min)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// Refresh recomputes the snapshot and stores it. It is the scheduler
// entry point for the periodic snapshot job.
func (h *AnalyticsHandler) Refresh() {
	snap, err := ComputeCommunities(h.svc)
	if err != nil {
		h.logger.Warn("community snapshot failed", zap.Error(err))
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	h.store(ctx, snap)
	h.logger.Debug("community snapshot refreshed", zap.Int("count", snap.Count))
}

func (h *AnalyticsHandler) store(ctx context.Context, snap *CommunitySnapshot) {
	data, err := json.Marshal(snap)
	if err != nil {
		return
	}
	if err := h.cache.Set(ctx, CommunitiesKey, string(data), CommunitiesTTL); err != nil {
		h.logger.Warn("community snapshot cache write failed", zap.Error(err))
	}
}

// ComputeCommunities runs the community analysis and wraps the result.
func ComputeCommunities(svc *social.Service) (*CommunitySnapshot, error) {
	count, mostActive, err := svc.Communities()
	if err != nil {
		return nil, err
	}
	return &CommunitySnapshot{
		Count:      count,
		MostActive: mostActive,
		ComputedAt: time.Now(),
	}, nil
}
