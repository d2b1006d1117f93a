package tracker

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"watchhub/internal/calendar"
	"watchhub/internal/stats"
	"watchhub/pkg/models"
)

type Handler struct {
	Service *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Service: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/catalog", h.list)
	rg.GET("/filters", h.filters)
	rg.GET("/catalog/:id", h.getByID)
	rg.PATCH("/catalog/:id/progress", h.updateProgress)
	rg.GET("/catalog/:id/calendar-link", h.calendarLink)
	rg.GET("/stats", h.stats)
	rg.GET("/stats/sagas", h.sagaStats)
}

func (h *Handler) list(c *gin.Context) {
	q := stats.Query{
		Search:      c.Query("q"),
		Saga:        c.Query("saga"),
		Universe:    c.Query("universe"),
		ContentType: c.Query("type"),
	}

	items := stats.Filter(h.Service.Snapshot(), q)
	c.JSON(http.StatusOK, gin.H{
		"total": len(items),
		"items": items,
	})
}

// filters lists the distinct saga/universe/type values, for building
// dropdowns the way the original UI does.
func (h *Handler) filters(c *gin.Context) {
	items := h.Service.Snapshot()

	c.JSON(http.StatusOK, gin.H{
		"sagas":     distinct(items, func(it models.WorkingItem) string { return it.Saga }),
		"universes": distinct(items, func(it models.WorkingItem) string { return it.Universe }),
		"types":     distinct(items, func(it models.WorkingItem) string { return it.ContentType }),
	})
}

func (h *Handler) getByID(c *gin.Context) {
	it, ok := h.Service.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, it)
}

func (h *Handler) updateProgress(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id required"})
		return
	}

	var p Patch
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if p.Rating != nil && (*p.Rating < 0 || *p.Rating > 5) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rating must be between 0 and 5"})
		return
	}

	updated, found, err := h.Service.Update(id, p)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) calendarLink(c *gin.Context) {
	it, ok := h.Service.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	date := strings.TrimSpace(c.Query("date"))
	if date == "" {
		date = it.ScheduledDate
	}
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date required (query param or scheduled_date)"})
		return
	}

	link, err := calendar.EventLink(it, date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, want YYYY-MM-DD"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": link})
}

func (h *Handler) stats(c *gin.Context) {
	c.JSON(http.StatusOK, stats.Aggregate(h.Service.Snapshot()))
}

func (h *Handler) sagaStats(c *gin.Context) {
	items := h.Service.Snapshot()

	resp := gin.H{"sagas": stats.GroupBySaga(items)}
	if fav, ok := stats.FavoriteSaga(items); ok {
		resp["favorite"] = fav
	} else {
		resp["favorite"] = nil
	}
	c.JSON(http.StatusOK, resp)
}

// distinct keeps first-seen order, matching how the collection renders.
func distinct(items []models.WorkingItem, key func(models.WorkingItem) string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0)
	for _, it := range items {
		k := key(it)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
