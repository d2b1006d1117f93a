package tracker

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"watchhub/pkg/models"
)

func newTestRouter(t *testing.T) (*gin.Engine, *Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := NewService(NewMemStore())
	svc.Load(testCatalog())

	router := gin.New()
	NewHandler(svc).RegisterRoutes(router.Group(""))
	return router, svc
}

func doRequest(router *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestListWithFilters(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/catalog?q=iron&saga=MCU", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Total int                  `json:"total"`
		Items []models.WorkingItem `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "Iron Man", resp.Items[0].Title)
}

func TestUpdateProgress(t *testing.T) {
	router, svc := newTestRouter(t)

	w := doRequest(router, http.MethodPatch, "/catalog/a/progress", `{"watched": true, "rating": 5}`)
	require.Equal(t, http.StatusOK, w.Code)

	it, ok := svc.Get("a")
	require.True(t, ok)
	assert.True(t, it.Watched)
	assert.Equal(t, 5, it.Rating)
}

func TestUpdateProgressUnknownID(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(router, http.MethodPatch, "/catalog/nope/progress", `{"watched": true}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateProgressRatingOutOfRange(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(router, http.MethodPatch, "/catalog/a/progress", `{"rating": 9}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStatsEndpoint(t *testing.T) {
	router, svc := newTestRouter(t)

	_, _, err := svc.Update("a", Patch{Watched: boolPtr(true), Rating: intPtr(4)})
	require.NoError(t, err)

	w := doRequest(router, http.MethodGet, "/stats", "")
	require.Equal(t, http.StatusOK, w.Code)

	var s models.Statistics
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &s))
	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 1, s.Watched)
	assert.Equal(t, 25.0, s.CompletionPercent)
	assert.Equal(t, 4.0, s.AverageRating)
}

func TestFiltersEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/filters", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Sagas     []string `json:"sagas"`
		Universes []string `json:"universes"`
		Types     []string `json:"types"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"MCU", "X-Men", "Blade"}, resp.Sagas)
	assert.Equal(t, []string{"Película", "Serie"}, resp.Types)
}

func TestCalendarLinkEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/catalog/a/calendar-link?date=2026-01-22", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		URL string `json:"url"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.URL, "calendar.google.com")
}

func TestCalendarLinkRequiresDate(t *testing.T) {
	router, _ := newTestRouter(t)

	// no query date and no scheduled date on the item
	w := doRequest(router, http.MethodGet, "/catalog/a/calendar-link", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
