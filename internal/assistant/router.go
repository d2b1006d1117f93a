// Package assistant answers canned questions about the marathon from
// locally derived statistics. It is a deterministic keyword router, not
// a language model: an ordered table of keyword groups is scanned
// top-to-bottom and the first match picks the handler.
package assistant

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"watchhub/internal/stats"
	"watchhub/pkg/models"
)

// titles watched per week assumed by the finish estimate
const assumedPacePerWeek = 3

// SuggestedQuestions are shown while the dialogue is still idle.
var SuggestedQuestions = []string{
	"¿Cuál es mi saga favorita?",
	"¿Cuándo terminaré el maratón?",
	"¿Qué me recomiendas ver siguiente?",
	"¿Cuál es mi calificación promedio?",
}

type rule struct {
	keywords []string
	respond  func(r *Router, items []models.WorkingItem) string
}

// Router maps a free-text query to a statistic lookup. The random
// source is injectable so the "recommend next" pick stays testable.
type Router struct {
	rng   *rand.Rand
	rules []rule
}

func NewRouter(rng *rand.Rand) *Router {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	r := &Router{rng: rng}
	r.rules = []rule{
		{[]string{"saga favorita", "saga que más"}, (*Router).favoriteSaga},
		{[]string{"terminar", "cuándo", "cuanto tiempo"}, (*Router).finishEstimate},
		{[]string{"recomienda", "siguiente", "qué ver"}, (*Router).recommendNext},
		{[]string{"calificación", "promedio", "rating"}, (*Router).averageRating},
		{[]string{"progreso", "avance", "completado"}, (*Router).progress},
		{[]string{"estadísticas", "stats", "datos"}, (*Router).sagaBreakdown},
	}
	return r
}

// Route answers the query from the current collection. Matching is
// case-insensitive substring, first match wins; no match falls through
// to the help text.
func (r *Router) Route(query string, items []models.WorkingItem) string {
	q := strings.ToLower(query)
	for _, rl := range r.rules {
		for _, kw := range rl.keywords {
			if strings.Contains(q, kw) {
				return rl.respond(r, items)
			}
		}
	}
	return r.help()
}

func (r *Router) favoriteSaga(items []models.WorkingItem) string {
	fav, ok := stats.FavoriteSaga(items)
	if !ok {
		return "Aún no has visto títulos de ninguna saga. ¡Comienza tu maratón ahora! 🎬"
	}
	return fmt.Sprintf("Tu saga favorita es **%s** con %d títulos vistos. ¡Excelente elección! 🎯", fav.Saga, fav.Watched)
}

func (r *Router) finishEstimate(items []models.WorkingItem) string {
	s := stats.Aggregate(items)
	if s.Remaining == 0 {
		return fmt.Sprintf("¡Felicidades! 🎉 Ya has completado el maratón con %d títulos vistos. ¡Eres un verdadero fan!", s.Watched)
	}
	weeks := int(math.Ceil(float64(s.Remaining) / assumedPacePerWeek))
	return fmt.Sprintf("Te quedan **%d títulos** por ver. Si ves aproximadamente %d por semana, terminarías en **%d semanas**. ¡Tú puedes! 💪",
		s.Remaining, assumedPacePerWeek, weeks)
}

func (r *Router) recommendNext(items []models.WorkingItem) string {
	unwatched := make([]models.WorkingItem, 0, len(items))
	for _, it := range items {
		if !it.Watched {
			unwatched = append(unwatched, it)
		}
	}
	if len(unwatched) == 0 {
		return "¡Ya has visto todo! 🏆 Considera ver nuevamente tus favoritas o explorar otros universos."
	}
	pick := unwatched[r.rng.Intn(len(unwatched))]
	return fmt.Sprintf("Te recomiendo ver **%s** de la saga **%s**. ¡Debería ser increíble! 🍿", pick.Title, pick.Saga)
}

func (r *Router) averageRating(items []models.WorkingItem) string {
	s := stats.Aggregate(items)
	if s.AverageRating == 0 {
		return "Aún no has calificado ningún título. ¡Empieza a calificar para obtener estadísticas personalizadas! ⭐"
	}
	remark := "Parece que eres selectivo con tus películas. 🎬"
	if s.AverageRating >= 4 {
		remark = "¡Buen gusto! 👏"
	}
	return fmt.Sprintf("Tu calificación promedio es **%.1f/5**. %s", s.AverageRating, remark)
}

func (r *Router) progress(items []models.WorkingItem) string {
	return "Has completado **" + r.summary(items)
}

func (r *Router) sagaBreakdown(items []models.WorkingItem) string {
	var b strings.Builder
	b.WriteString("**Tu progreso en el maratón:**\n\n")
	for _, sp := range stats.GroupBySaga(items) {
		fmt.Fprintf(&b, "- %s: %d/%d\n", sp.Saga, sp.Watched, sp.Total)
	}
	b.WriteString("\nHas completado **")
	b.WriteString(r.summary(items))
	return b.String()
}

// summary is the shared tail of the progress and statistics replies.
func (r *Router) summary(items []models.WorkingItem) string {
	s := stats.Aggregate(items)

	favName := "N/A"
	if fav, ok := stats.FavoriteSaga(items); ok {
		favName = fav.Saga
	}

	return fmt.Sprintf("%.1f%%** del maratón. 📊\n\n**Estadísticas:**\n- Títulos vistos: %d/%d\n- Calificación promedio: %.1f/5\n- Saga favorita: %s",
		s.CompletionPercent, s.Watched, s.Total, s.AverageRating, favName)
}

func (r *Router) help() string {
	var b strings.Builder
	b.WriteString("Soy tu asistente del maratón. Puedo ayudarte con:\n\n")
	for _, q := range SuggestedQuestions {
		b.WriteString("• " + q + "\n")
	}
	b.WriteString("• Mis estadísticas\n\n¿Qué quieres saber? 🎬")
	return b.String()
}
