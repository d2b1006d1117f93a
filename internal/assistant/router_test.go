package assistant

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"watchhub/pkg/models"
)

func item(id, title, saga string, watched bool, rating int) models.WorkingItem {
	return models.WorkingItem{ID: id, Title: title, Saga: saga, Watched: watched, Rating: rating}
}

func seededRouter() *Router {
	return NewRouter(rand.New(rand.NewSource(42)))
}

func TestRouteFavoriteSagaNothingWatched(t *testing.T) {
	items := []models.WorkingItem{
		item("a", "Iron Man", "MCU", false, 0),
		item("b", "Logan", "X-Men", false, 0),
	}

	got := seededRouter().Route("¿Cuál es mi saga favorita?", items)

	assert.Contains(t, got, "Aún no has visto")
	assert.NotContains(t, got, "MCU", "must not name a favorite when nothing is watched")
}

func TestRouteFavoriteSaga(t *testing.T) {
	items := []models.WorkingItem{
		item("a", "Iron Man", "MCU", true, 0),
		item("b", "Thor", "MCU", true, 0),
		item("c", "Logan", "X-Men", true, 0),
	}

	got := seededRouter().Route("¿cuál es mi SAGA FAVORITA?", items)

	assert.Contains(t, got, "MCU")
	assert.Contains(t, got, "2")
}

func TestRouteFinishEstimate(t *testing.T) {
	// 7 remaining at 3 per week rounds up to 3 weeks
	items := make([]models.WorkingItem, 0, 9)
	for i := 0; i < 9; i++ {
		items = append(items, item(fmt.Sprintf("i%d", i), fmt.Sprintf("Title %d", i), "MCU", i < 2, 0))
	}

	got := seededRouter().Route("¿Cuándo terminaré el maratón?", items)

	assert.Contains(t, got, "7 títulos")
	assert.Contains(t, got, "3 semanas")
}

func TestRouteFinishEstimateCompleted(t *testing.T) {
	items := []models.WorkingItem{
		item("a", "Iron Man", "MCU", true, 0),
		item("b", "Thor", "MCU", true, 0),
	}

	got := seededRouter().Route("cuándo terminaré", items)

	assert.Contains(t, got, "Felicidades")
}

func TestRouteRecommendPicksFromUnwatched(t *testing.T) {
	items := []models.WorkingItem{
		item("a", "AAAA", "MCU", true, 0),
		item("b", "BBBB", "MCU", false, 0),
		item("c", "CCCC", "X-Men", false, 0),
		item("d", "DDDD", "Blade", true, 0),
	}

	r := seededRouter()
	for i := 0; i < 20; i++ {
		got := r.Route("¿Qué me recomiendas ver siguiente?", items)

		// the pick is random but must come from the unwatched set
		fromUnwatched := strings.Contains(got, "BBBB") || strings.Contains(got, "CCCC")
		require.True(t, fromUnwatched, "reply %q does not name an unwatched title", got)
		assert.NotContains(t, got, "AAAA")
		assert.NotContains(t, got, "DDDD")
	}
}

func TestRouteRecommendAllWatched(t *testing.T) {
	items := []models.WorkingItem{
		item("a", "Iron Man", "MCU", true, 0),
	}

	got := seededRouter().Route("recomienda algo", items)

	assert.Contains(t, got, "Ya has visto todo")
}

func TestRouteAverageRating(t *testing.T) {
	tests := []struct {
		name    string
		ratings []int
		want    string
	}{
		{"nothing rated", []int{0, 0}, "Aún no has calificado"},
		{"high average", []int{5, 4}, "¡Buen gusto!"},
		{"low average", []int{2, 3}, "selectivo"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			items := make([]models.WorkingItem, 0, len(tc.ratings))
			for i, r := range tc.ratings {
				items = append(items, item(fmt.Sprintf("i%d", i), fmt.Sprintf("T%d", i), "MCU", false, r))
			}

			got := seededRouter().Route("¿Cuál es mi calificación promedio?", items)
			assert.Contains(t, got, tc.want)
		})
	}
}

func TestRouteProgressSummary(t *testing.T) {
	items := []models.WorkingItem{
		item("a", "Iron Man", "MCU", true, 5),
		item("b", "Thor", "MCU", false, 0),
	}

	got := seededRouter().Route("muéstrame mi progreso", items)

	assert.Contains(t, got, "50.0%")
	assert.Contains(t, got, "1/2")
	assert.Contains(t, got, "MCU")
}

func TestRouteStatisticsPerSaga(t *testing.T) {
	items := []models.WorkingItem{
		item("a", "Iron Man", "MCU", true, 0),
		item("b", "Thor", "MCU", false, 0),
		item("c", "Logan", "X-Men", false, 0),
	}

	got := seededRouter().Route("dame mis estadísticas", items)

	assert.Contains(t, got, "MCU: 1/2")
	assert.Contains(t, got, "X-Men: 0/1")
}

func TestRouteFirstMatchWins(t *testing.T) {
	// "saga favorita" also contains no other keyword, but a query that
	// hits two groups must resolve to the earlier rule
	items := []models.WorkingItem{
		item("a", "Iron Man", "MCU", true, 0),
	}

	got := seededRouter().Route("mi saga favorita y mi progreso", items)

	assert.Contains(t, got, "Tu saga favorita es")
	assert.NotContains(t, got, "Estadísticas")
}

func TestRouteDefaultHelp(t *testing.T) {
	got := seededRouter().Route("hola, ¿qué tal?", nil)

	for _, q := range SuggestedQuestions {
		assert.Contains(t, got, q)
	}
}
