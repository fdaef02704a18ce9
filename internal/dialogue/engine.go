package dialogue

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/surf-session-bot/internal/adjust"
	"github.com/couchcryptid/surf-session-bot/internal/catalog"
	"github.com/couchcryptid/surf-session-bot/internal/domain"
	"github.com/couchcryptid/surf-session-bot/internal/observability"
)

// Reporter renders the forecast reports the query menu dispatches to. Report
// methods return user-facing text for every outcome, failures included.
type Reporter interface {
	DailyReport(ctx context.Context, spotKey, beachKey string, date time.Time) string
	BestWindowReport(ctx context.Context, spotKey, beachKey string, date time.Time) string
	BestDayReport(ctx context.Context, spotKey, beachKey string) string
}

var backWords = map[string]bool{
	"v":      true,
	"volver": true,
	"atrás":  true,
	"atras":  true,
}

var restartWords = map[string]bool{
	"/start": true,
	"start":  true,
}

var changeSpotWords = map[string]bool{
	"cambiar spot": true,
	"/spot":        true,
}

var greetingWords = map[string]bool{
	"hola":     true,
	"buen dia": true,
	"buen día": true,
}

// Engine is the dialogue state machine. It is stateless itself; the caller
// owns per-user State and passes it through Respond.
type Engine struct {
	catalog catalog.Catalog
	reports Reporter
	store   adjust.Store
	loc     *time.Location
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewEngine creates the dialogue engine. store backs the /ajuste command.
func NewEngine(cat catalog.Catalog, reports Reporter, store adjust.Store, loc *time.Location, logger *slog.Logger, metrics *observability.Metrics) *Engine {
	return &Engine{
		catalog: cat,
		reports: reports,
		store:   store,
		loc:     loc,
		logger:  logger,
		metrics: metrics,
	}
}

// Respond processes one user message against the given state and returns the
// reply plus the next state. It never errors: unrecognized input redisplays
// the current prompt, and inconsistent state resets to the spot list.
func (e *Engine) Respond(ctx context.Context, text string, state State) (string, State) {
	if state.Phase == "" {
		state = NewState()
	}
	norm := normalize(text)
	e.metrics.DialogueTurns.WithLabelValues(state.Phase).Inc()

	if norm == "/ajuste" || strings.HasPrefix(norm, "/ajuste ") {
		return e.handleAdjust(text), state
	}

	if backWords[norm] {
		return e.goBack(state)
	}
	if restartWords[norm] || changeSpotWords[norm] {
		return e.listSpots(), NewState()
	}
	if greetingWords[norm] && state.Phase == PhaseChoosingSpot {
		return e.listSpots(), state
	}

	switch state.Phase {
	case PhaseChoosingSpot:
		return e.chooseSpot(norm, state)
	case PhaseChoosingBeach:
		return e.chooseBeach(norm, state)
	case PhaseQueryMenu:
		return e.queryMenu(ctx, norm, state)
	case PhaseAwaitingDate:
		return e.awaitDate(ctx, text, state)
	}

	// Unknown phase, likely deserialized from an older version.
	e.logger.Warn("resetting dialogue with unknown phase", "phase", state.Phase)
	return e.listSpots(), NewState()
}

// goBack moves one level up: date prompt to menu, menu to beach list (or to
// the spot list when the spot has a single beach), beach list to spot list.
func (e *Engine) goBack(state State) (string, State) {
	switch state.Phase {
	case PhaseQueryMenu:
		spot, ok := e.catalog.Spot(state.SpotKey)
		if !ok {
			return e.listSpots(), NewState()
		}
		if len(spot.Beaches) > 1 {
			state.Phase = PhaseChoosingBeach
			state.BeachKey = ""
			return e.listBeaches(spot), state
		}
		return e.listSpots(), NewState()

	case PhaseAwaitingDate:
		if spot, beach, ok := e.selection(state); ok {
			state.Phase = PhaseQueryMenu
			return menuText(spot, beach), state
		}
		return e.listSpots(), NewState()

	case PhaseChoosingBeach:
		return e.listSpots(), NewState()

	default:
		return e.listSpots(), state
	}
}

func (e *Engine) chooseSpot(norm string, state State) (string, State) {
	spots := e.catalog.Spots()

	var chosen *catalog.Spot
	if isDigits(norm) {
		if idx, err := strconv.Atoi(norm); err == nil && idx >= 1 && idx <= len(spots) {
			chosen = &spots[idx-1]
		}
	} else {
		for i, s := range spots {
			if norm == strings.ToLower(s.Key) || strings.Contains(strings.ToLower(s.Name), norm) {
				chosen = &spots[i]
				break
			}
		}
	}
	if chosen == nil {
		return e.listSpots(), state
	}

	state.SpotKey = chosen.Key
	if len(chosen.Beaches) == 1 {
		state.BeachKey = chosen.Beaches[0].Key
		state.Phase = PhaseQueryMenu
		return menuText(*chosen, chosen.Beaches[0]), state
	}
	state.Phase = PhaseChoosingBeach
	return e.listBeaches(*chosen), state
}

func (e *Engine) chooseBeach(norm string, state State) (string, State) {
	spot, ok := e.catalog.Spot(state.SpotKey)
	if !ok {
		return e.listSpots(), NewState()
	}

	var chosen *catalog.Beach
	if isDigits(norm) {
		if idx, err := strconv.Atoi(norm); err == nil && idx >= 1 && idx <= len(spot.Beaches) {
			chosen = &spot.Beaches[idx-1]
		}
	} else {
		for i, b := range spot.Beaches {
			if norm == strings.ToLower(b.Key) || strings.Contains(strings.ToLower(b.Name), norm) {
				chosen = &spot.Beaches[i]
				break
			}
		}
	}
	if chosen == nil {
		return e.listBeaches(spot), state
	}

	state.BeachKey = chosen.Key
	state.Phase = PhaseQueryMenu
	return menuText(spot, *chosen), state
}

func (e *Engine) queryMenu(ctx context.Context, norm string, state State) (string, State) {
	spot, beach, ok := e.selection(state)
	if !ok {
		return e.listSpots(), NewState()
	}

	switch {
	case norm == "1" || norm == "hoy":
		return e.reports.DailyReport(ctx, state.SpotKey, state.BeachKey, e.today()), state

	case norm == "2" || norm == "mañana" || norm == "maniana":
		return e.reports.DailyReport(ctx, state.SpotKey, state.BeachKey, e.today().AddDate(0, 0, 1)), state

	case norm == "3" || norm == "otro dia" || norm == "otro día":
		state.Phase = PhaseAwaitingDate
		return "Decime la fecha que querés consultar en formato dd/mm o dd/mm/aaaa " +
			"(por ejemplo 12/01 o 12/01/2026).\n" +
			"Escribí 'v' para volver al menú anterior.", state

	case norm == "4" || norm == "mejor horario" || norm == "mejor horario hoy":
		return e.reports.BestWindowReport(ctx, state.SpotKey, state.BeachKey, e.today()), state

	case norm == "5" || norm == "mejor dia" || norm == "mejor día" ||
		norm == "mejor dia semana" || norm == "mejor día semana":
		return e.reports.BestDayReport(ctx, state.SpotKey, state.BeachKey), state
	}

	return menuText(spot, beach), state
}

func (e *Engine) awaitDate(ctx context.Context, text string, state State) (string, State) {
	if _, _, ok := e.selection(state); !ok {
		return e.listSpots(), NewState()
	}

	date, ok := ParseUserDate(text, e.today())
	if !ok {
		return "No entendí la fecha. Usá el formato dd/mm o dd/mm/aaaa " +
			"(ejemplo: 09/12 o 09/12/2025). Probá de nuevo.\n" +
			"Escribí 'v' para volver al menú anterior.", state
	}

	state.Phase = PhaseQueryMenu
	return e.reports.DailyReport(ctx, state.SpotKey, state.BeachKey, date), state
}

// selection resolves the state's spot and beach keys against the catalog.
func (e *Engine) selection(state State) (catalog.Spot, catalog.Beach, bool) {
	spot, ok := e.catalog.Spot(state.SpotKey)
	if !ok {
		return catalog.Spot{}, catalog.Beach{}, false
	}
	beach, ok := spot.Beach(state.BeachKey)
	if !ok {
		return catalog.Spot{}, catalog.Beach{}, false
	}
	return spot, beach, true
}

func (e *Engine) today() time.Time {
	return domain.Now().In(e.loc)
}

func (e *Engine) listSpots() string {
	lines := []string{"🌊 Hola, soy el Bot de Olas.", "Elegí un spot:", ""}
	for i, s := range e.catalog.Spots() {
		lines = append(lines, fmt.Sprintf("%d) %s", i+1, s.Name))
	}
	lines = append(lines, "", "Podés responder con el número o con el nombre.")
	return strings.Join(lines, "\n")
}

func (e *Engine) listBeaches(spot catalog.Spot) string {
	lines := []string{
		fmt.Sprintf("Elegiste %s.", spot.Name),
		"Ahora elegí la playa:",
		"",
	}
	for i, b := range spot.Beaches {
		lines = append(lines, fmt.Sprintf("%d) %s", i+1, b.Name))
	}
	lines = append(lines, "", "Escribí 'v' para volver al listado de spots.")
	return strings.Join(lines, "\n")
}

func menuText(spot catalog.Spot, beach catalog.Beach) string {
	return strings.Join([]string{
		fmt.Sprintf("Elegiste %s (%s).", beach.Name, spot.Name),
		"",
		"¿Qué querés consultar?",
		"",
		"1) Pronóstico de HOY",
		"2) Pronóstico de MAÑANA",
		"3) Pronóstico para OTRA FECHA",
		"4) MEJOR HORARIO de hoy",
		"5) MEJOR DÍA/HORARIO próximos 7 días",
		"",
		"Podés responder con el número o con el texto (ej: 'hoy', 'mañana', 'mejor horario').",
		"",
		"Escribí 'v' para volver y elegir otra playa o spot.",
	}, "\n")
}

func normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
