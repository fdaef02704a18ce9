package forecast

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/surf-session-bot/internal/catalog"
	"github.com/couchcryptid/surf-session-bot/internal/domain"
	"github.com/couchcryptid/surf-session-bot/internal/observability"
)

type fakeProvider struct {
	byDate   map[string][]domain.Observation
	daylight domain.DaylightWindow
	err      error
}

func (f *fakeProvider) FetchDay(_ context.Context, _, _ float64, day time.Time) ([]domain.Observation, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byDate[day.Format("2006-01-02")], nil
}

func (f *fakeProvider) FetchDaylight(_ context.Context, _, _ float64, _ time.Time) domain.DaylightWindow {
	return f.daylight
}

type fakeStore struct {
	sets map[string]domain.AdjustmentSet
	err  error
}

func (f *fakeStore) Get(spotKey, beachKey string) (domain.AdjustmentSet, error) {
	if f.err != nil {
		return domain.AdjustmentSet{}, f.err
	}
	return f.sets[spotKey+"/"+beachKey], nil
}

func (f *fakeStore) Set(_, _, _ string, _ float64) error {
	return errors.New("read-only in tests")
}

func newTestService(provider *fakeProvider, store *fakeStore, bestDayRange int) *Service {
	if store == nil {
		store = &fakeStore{}
	}
	return NewService(
		provider, store, catalog.Default(), time.UTC, bestDayRange,
		slog.New(slog.DiscardHandler), observability.NewMetricsForTesting(),
	)
}

// hours builds an ascending hourly series starting at start. Wind is left
// unknown; individual tests set it where it matters.
func hours(start time.Time, specs ...[2]float64) []domain.Observation {
	obs := make([]domain.Observation, len(specs))
	for i, s := range specs {
		obs[i] = domain.Observation{
			Time:    start.Add(time.Duration(i) * time.Hour),
			HeightM: s[0],
			PeriodS: s[1],
		}
	}
	return obs
}

func dayStart(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 6, 0, 0, 0, time.UTC)
}

func TestDailyReportRendersFullDay(t *testing.T) {
	date := time.Date(2026, time.January, 12, 0, 0, 0, 0, time.UTC)
	obs := hours(dayStart(2026, time.January, 12),
		[2]float64{1.2, 14}, // peak conditions
		[2]float64{1.0, 10},
		[2]float64{0.6, 7},
	)
	wind := 4.0
	obs[0].WindSpeedKmh = &wind
	obs[0].WindDirDeg = 315
	obs[0].SwellDirDeg = 90

	provider := &fakeProvider{byDate: map[string][]domain.Observation{
		"2026-01-12": obs,
	}}
	svc := newTestService(provider, nil, 7)

	out := svc.DailyReport(context.Background(), "miramar", "general", date)

	assert.Contains(t, out, "🌊 Pronóstico de olas para General (Miramar)")
	assert.Contains(t, out, "📅 Fecha: 12/01/2026")
	assert.Contains(t, out, "📌 Resumen del día:")
	assert.Contains(t, out, "- Altura aprox: 0.6 – 1.2 m")
	assert.Contains(t, out, "- Período aprox: 7 – 14 s")
	assert.Contains(t, out, "- Lectura surf:")
	assert.Contains(t, out, "🕒 Detalle hora a hora:")
	assert.Contains(t, out, "06:00 1.2m/14s 💨4NW 🌊E")
	assert.Contains(t, out, "💨--", "hours without wind render the unknown marker")
	assert.Contains(t, out, "Escribí 'v' para volver al menú anterior.")
	assert.NotContains(t, out, "☀️", "no daylight line when the window is unavailable")
	assert.NotContains(t, out, "🔧", "no adjustments section when none are set")
}

func TestDailyReportHighlightsWindows(t *testing.T) {
	date := time.Date(2026, time.January, 12, 0, 0, 0, 0, time.UTC)
	// 1.2m/14s scores 100 with calm wind; enough to clear the threshold.
	obs := hours(dayStart(2026, time.January, 12),
		[2]float64{1.2, 14},
		[2]float64{1.2, 14},
		[2]float64{0.2, 3},
	)
	calm := 3.0
	for i := range obs[:2] {
		obs[i].WindSpeedKmh = &calm
	}

	provider := &fakeProvider{byDate: map[string][]domain.Observation{
		"2026-01-12": obs,
	}}
	svc := newTestService(provider, nil, 7)

	out := svc.DailyReport(context.Background(), "miramar", "general", date)

	assert.Contains(t, out, "⭐ Mejores ventanas del día:")
	assert.Contains(t, out, "1) 06:00 – 08:00 hs")
	assert.Contains(t, out, "(score ~ 100/100)")
}

func TestDailyReportWindowFallbackBands(t *testing.T) {
	cases := []struct {
		name  string
		waves [2]float64
		want  string
	}{
		{"poor day", [2]float64{0.2, 4}, "cruzado/desordenado"},
		{"flat middle day", [2]float64{0.6, 8}, "sin momentos muy destacados"},
		{"decent but short-lived", [2]float64{1.0, 10}, "sin bloques largos"},
	}

	date := time.Date(2026, time.January, 12, 0, 0, 0, 0, time.UTC)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			provider := &fakeProvider{byDate: map[string][]domain.Observation{
				"2026-01-12": hours(dayStart(2026, time.January, 12), tc.waves, tc.waves),
			}}
			svc := newTestService(provider, nil, 7)

			out := svc.DailyReport(context.Background(), "miramar", "general", date)
			assert.Contains(t, out, tc.want)
		})
	}
}

func TestDailyReportShowsDaylightAndAdjustments(t *testing.T) {
	date := time.Date(2026, time.January, 12, 0, 0, 0, 0, time.UTC)
	start := dayStart(2026, time.January, 12)
	provider := &fakeProvider{
		byDate: map[string][]domain.Observation{
			"2026-01-12": hours(start, [2]float64{1.0, 10}, [2]float64{1.1, 11}),
		},
		daylight: domain.DaylightWindow{
			Sunrise:   start,
			Sunset:    start.Add(14 * time.Hour),
			Available: true,
		},
	}
	delta := 0.3
	store := &fakeStore{sets: map[string]domain.AdjustmentSet{
		"miramar/general": {HeightDelta: &delta},
	}}
	svc := newTestService(provider, store, 7)

	out := svc.DailyReport(context.Background(), "miramar", "general", date)

	assert.Contains(t, out, "☀️ Horas consideradas: 06:00 – 20:00 hs")
	assert.Contains(t, out, "🔧 Ajustes aplicados a esta playa:")
	assert.Contains(t, out, "  • delta_altura = 0.3")
	assert.Contains(t, out, "- Altura aprox: 1.3 – 1.4 m", "summary reflects adjusted heights")
}

func TestDailyReportFailureMessages(t *testing.T) {
	date := time.Date(2026, time.January, 12, 0, 0, 0, 0, time.UTC)

	t.Run("fetch error", func(t *testing.T) {
		provider := &fakeProvider{err: &domain.FetchError{Source: "marine", Err: errors.New("status 502")}}
		svc := newTestService(provider, nil, 7)

		out := svc.DailyReport(context.Background(), "miramar", "general", date)
		assert.Contains(t, out, "No pude obtener el pronóstico para General (Miramar).")
		assert.Contains(t, out, "Detalle técnico:")
		assert.NotContains(t, out, "Escribí 'v'")
	})

	t.Run("empty series", func(t *testing.T) {
		provider := &fakeProvider{byDate: map[string][]domain.Observation{}}
		svc := newTestService(provider, nil, 7)

		out := svc.DailyReport(context.Background(), "miramar", "general", date)
		assert.Equal(t, "No hay datos de olas para General en la fecha indicada.", out)
	})
}

func TestBestWindowReportRecommendsWindow(t *testing.T) {
	date := time.Date(2026, time.January, 12, 0, 0, 0, 0, time.UTC)
	obs := hours(dayStart(2026, time.January, 12),
		[2]float64{0.3, 5},
		[2]float64{1.2, 14},
		[2]float64{1.1, 13},
		[2]float64{0.3, 5},
	)
	calm := 3.0
	obs[1].WindSpeedKmh = &calm
	obs[2].WindSpeedKmh = &calm

	provider := &fakeProvider{byDate: map[string][]domain.Observation{
		"2026-01-12": obs,
	}}
	svc := newTestService(provider, nil, 7)

	out := svc.BestWindowReport(context.Background(), "quequen", "monte_pasubio", date)

	assert.Contains(t, out, "🔎 Mejor horario para Monte Pasubio (Quequén)")
	assert.Contains(t, out, "📅 Día: 12/01/2026 (12 de enero de 2026)")
	assert.Contains(t, out, "- Calidad global del día:")
	assert.Contains(t, out, "- Rango de olas del día: 0.3 – 1.2 m · período 5 – 14 s")
	assert.Contains(t, out, "🕒 Ventana recomendada: 07:00 – 09:00 hs")
	// The window spans hours 07..09 end-inclusive; hour 09:00 is the 0.3m
	// closing observation, so it is part of the in-window wave range.
	assert.Contains(t, out, "- Olas en la ventana: 0.3 – 1.2 m · período 5 – 14 s")
	assert.Contains(t, out, "- Calidad estimada de la ventana:")
}

func TestBestWindowReportFallsBackToBestHour(t *testing.T) {
	date := time.Date(2026, time.January, 12, 0, 0, 0, 0, time.UTC)
	provider := &fakeProvider{byDate: map[string][]domain.Observation{
		"2026-01-12": hours(dayStart(2026, time.January, 12),
			[2]float64{0.4, 6},
			[2]float64{0.7, 8},
			[2]float64{0.5, 7},
		),
	}}
	svc := newTestService(provider, nil, 7)

	out := svc.BestWindowReport(context.Background(), "miramar", "general", date)

	assert.Contains(t, out, "No hay un bloque largo que supere el umbral de calidad")
	assert.Contains(t, out, "- Hora: 07:00 hs")
	assert.Contains(t, out, "- Olas: 0.7 m · 8 s · viento N/D")
	assert.Contains(t, out, "- Calidad estimada en ese momento:")
}

func TestBestWindowReportFailureMessages(t *testing.T) {
	date := time.Date(2026, time.January, 12, 0, 0, 0, 0, time.UTC)

	t.Run("fetch error", func(t *testing.T) {
		provider := &fakeProvider{err: &domain.FetchError{Source: "marine", Err: errors.New("timeout")}}
		svc := newTestService(provider, nil, 7)

		out := svc.BestWindowReport(context.Background(), "miramar", "general", date)
		assert.Contains(t, out, "No pude obtener datos para General (Miramar) el 12/01/2026.")
		assert.Contains(t, out, "Escribí 'v' para volver al menú anterior.")
	})

	t.Run("empty series", func(t *testing.T) {
		provider := &fakeProvider{byDate: map[string][]domain.Observation{}}
		svc := newTestService(provider, nil, 7)

		out := svc.BestWindowReport(context.Background(), "miramar", "general", date)
		assert.Contains(t, out, "No hay datos de olas para General el 12/01/2026.")
		assert.Contains(t, out, "Escribí 'v' para volver al menú anterior.")
	})
}

func TestBestDayReportRanksByPeakScore(t *testing.T) {
	domain.SetClock(clockwork.NewFakeClockAt(time.Date(2026, time.January, 12, 9, 0, 0, 0, time.UTC)))
	defer domain.SetClock(nil)

	calm := 3.0
	// Day 1: steady mediocre surf, high mean but modest peak.
	steady := hours(dayStart(2026, time.January, 12),
		[2]float64{0.9, 10}, [2]float64{0.9, 10}, [2]float64{0.9, 10},
	)
	// Day 2: mostly flat with one excellent hour; its peak should win.
	spiky := hours(dayStart(2026, time.January, 13),
		[2]float64{0.2, 4}, [2]float64{1.2, 14}, [2]float64{0.2, 4},
	)
	spiky[1].WindSpeedKmh = &calm

	provider := &fakeProvider{byDate: map[string][]domain.Observation{
		"2026-01-12": steady,
		"2026-01-13": spiky,
	}}
	svc := newTestService(provider, nil, 3)

	out := svc.BestDayReport(context.Background(), "necochea", "escollera")

	assert.Contains(t, out, "📆 Mejor día/horario en los próximos 3 días para Escollera (Necochea):")
	assert.Contains(t, out, "- Día sugerido: Martes 13/01/2026")
	assert.Contains(t, out, "score máx ~ 100/100")
	assert.Contains(t, out, "Resumen de la tendencia próxima:")

	// Trend stays chronological even though day two ranked first.
	idx12 := indexOf(t, out, "- 12/01 ·")
	idx13 := indexOf(t, out, "- 13/01 ·")
	assert.Less(t, idx12, idx13)
}

func TestBestDayReportSkipsFailedDays(t *testing.T) {
	domain.SetClock(clockwork.NewFakeClockAt(time.Date(2026, time.January, 12, 9, 0, 0, 0, time.UTC)))
	defer domain.SetClock(nil)

	// Only the second day has data; the rest come back empty and are skipped.
	provider := &fakeProvider{byDate: map[string][]domain.Observation{
		"2026-01-13": hours(dayStart(2026, time.January, 13), [2]float64{0.8, 9}, [2]float64{0.9, 10}),
	}}
	svc := newTestService(provider, nil, 4)

	out := svc.BestDayReport(context.Background(), "miramar", "general")

	assert.Contains(t, out, "- Día sugerido: Martes 13/01/2026")
	assert.Contains(t, out, "- 13/01 ·")
	assert.NotContains(t, out, "- 12/01 ·")
	assert.NotContains(t, out, "- 14/01 ·")
}

func TestBestDayReportNoDataAtAll(t *testing.T) {
	domain.SetClock(clockwork.NewFakeClockAt(time.Date(2026, time.January, 12, 9, 0, 0, 0, time.UTC)))
	defer domain.SetClock(nil)

	provider := &fakeProvider{err: &domain.FetchError{Source: "marine", Err: errors.New("unreachable")}}
	svc := newTestService(provider, nil, 5)

	out := svc.BestDayReport(context.Background(), "miramar", "general")

	assert.Equal(t, fmt.Sprintf(
		"No pude estimar el mejor día de los próximos 5 días para General (Miramar).\n\n%s",
		backTrailer), out)
}

func indexOf(t *testing.T, haystack, needle string) int {
	t.Helper()
	idx := strings.Index(haystack, needle)
	require.GreaterOrEqual(t, idx, 0, "expected %q in output", needle)
	return idx
}
