package forecast

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/surf-session-bot/internal/catalog"
	"github.com/couchcryptid/surf-session-bot/internal/domain"
)

const backTrailer = "Escribí 'v' para volver al menú anterior."

var spanishMonths = [12]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

var spanishWeekdays = map[time.Weekday]string{
	time.Monday:    "Lunes",
	time.Tuesday:   "Martes",
	time.Wednesday: "Miércoles",
	time.Thursday:  "Jueves",
	time.Friday:    "Viernes",
	time.Saturday:  "Sábado",
	time.Sunday:    "Domingo",
}

// DailyReport renders the full-day forecast: header, summary, ranked
// windows, hour-by-hour detail, and any active calibration adjustments.
func (s *Service) DailyReport(ctx context.Context, spotKey, beachKey string, date time.Time) string {
	spot, beach, ok := s.resolve(spotKey, beachKey)
	if !ok {
		return "No encontré esa playa en el catálogo. Escribí 'start' para empezar de nuevo."
	}

	day, err := s.buildDay(ctx, spot, beach, date)
	if err != nil {
		s.reportFailure("daily", err)
		if errors.Is(err, domain.ErrNoData) {
			return fmt.Sprintf("No hay datos de olas para %s en la fecha indicada.", beach.Name)
		}
		return fmt.Sprintf("No pude obtener el pronóstico para %s (%s).\nDetalle técnico: %v",
			beach.Name, spot.Name, err)
	}

	hMin, hMax := heightRange(day.obs)
	tMin, tMax := periodRange(day.obs)
	mean := meanScore(day.obs)

	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format+"\n", args...)
	}

	line("🌊 Pronóstico de olas para %s (%s)", beach.Name, spot.Name)
	line("📅 Fecha: %s", date.Format("02/01/2006"))
	if day.daylight.Available {
		line("☀️ Horas consideradas: %s – %s hs",
			day.daylight.Sunrise.Format("15:04"), day.daylight.Sunset.Format("15:04"))
	}
	line("")

	line("📌 Resumen del día:")
	if hMax > 0 && tMax > 0 {
		line("- Altura aprox: %.1f – %.1f m", hMin, hMax)
		line("- Período aprox: %.0f – %.0f s", tMin, tMax)
		line("- Calidad de las olas: %s · %s (score ~ %.0f/100)",
			domain.QualityLabel(mean), domain.Stars(mean), mean)
		line("- Lectura surf: %s", surfRead(hMax, tMax, mean))
	} else {
		line("- No hay datos suficientes de altura/período.")
	}
	line("")

	line("⭐ Mejores ventanas del día:")
	if len(day.windows) > 0 {
		for i, w := range day.windows {
			line("%d) %s – %s hs · %s (score ~ %.0f/100)",
				i+1, w.Start.Format("15:04"), w.End.Format("15:04"), domain.Stars(w.AvgScore), w.AvgScore)
		}
	} else {
		line("%s", noWindowLine(mean))
	}
	line("")

	line("🕒 Detalle hora a hora:")
	for _, o := range day.obs {
		line("%s", hourLine(o))
	}

	if !day.adjustments.IsZero() {
		line("")
		line("🔧 Ajustes aplicados a esta playa:")
		for _, e := range adjustmentEntries(day.adjustments) {
			line("  • %s = %s", e.name, e.value)
		}
	}

	line("")
	b.WriteString(backTrailer)

	s.metrics.Reports.WithLabelValues("daily").Inc()
	return b.String()
}

// BestWindowReport renders the single best session window of one day, or
// the best single hour when no window clears the threshold.
func (s *Service) BestWindowReport(ctx context.Context, spotKey, beachKey string, date time.Time) string {
	spot, beach, ok := s.resolve(spotKey, beachKey)
	if !ok {
		return "No encontré esa playa en el catálogo. Escribí 'start' para empezar de nuevo."
	}

	day, err := s.buildDay(ctx, spot, beach, date)
	if err != nil {
		s.reportFailure("best_window", err)
		if errors.Is(err, domain.ErrNoData) {
			return fmt.Sprintf("No hay datos de olas para %s el %s.\n\n%s",
				beach.Name, date.Format("02/01/2006"), backTrailer)
		}
		return fmt.Sprintf("No pude obtener datos para %s (%s) el %s.\nDetalle técnico: %v\n\n%s",
			beach.Name, spot.Name, date.Format("02/01/2006"), err, backTrailer)
	}

	hMin, hMax := heightRange(day.obs)
	tMin, tMax := periodRange(day.obs)
	mean := meanScore(day.obs)

	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format+"\n", args...)
	}

	line("🔎 Mejor horario para %s (%s)", beach.Name, spot.Name)
	line("📅 Día: %s (%s)", date.Format("02/01/2006"), longDate(date))
	if day.daylight.Available {
		line("☀️ Horas consideradas: %s – %s hs",
			day.daylight.Sunrise.Format("15:04"), day.daylight.Sunset.Format("15:04"))
	}
	line("")
	line("- Calidad global del día: %s · %s (score medio ~ %.0f/100)",
		domain.QualityLabel(mean), domain.Stars(mean), mean)
	line("- Rango de olas del día: %.1f – %.1f m · período %.0f – %.0f s", hMin, hMax, tMin, tMax)

	if len(day.windows) > 0 {
		w := day.windows[0]
		whMin, whMax, wtMin, wtMax := windowRanges(day.obs, w, hMin, hMax, tMin, tMax)
		line("")
		line("🕒 Ventana recomendada: %s – %s hs", w.Start.Format("15:04"), w.End.Format("15:04"))
		line("- Olas en la ventana: %.1f – %.1f m · período %.0f – %.0f s", whMin, whMax, wtMin, wtMax)
		line("- Calidad estimada de la ventana: %s · %s (score ~ %.0f/100)",
			domain.QualityLabel(w.AvgScore), domain.Stars(w.AvgScore), w.AvgScore)
	} else {
		best := bestHour(day.obs)
		line("")
		line("No hay un bloque largo que supere el umbral de calidad, pero lo mejor del día sería:")
		line("- Hora: %s hs", best.Time.Format("15:04"))
		line("- Olas: %.1f m · %.0f s · %s", best.HeightM, best.PeriodS, windSummary(best))
		line("- Calidad estimada en ese momento: %s (score ~ %.0f/100)", domain.Stars(best.Score), best.Score)
	}

	line("")
	b.WriteString(backTrailer)

	s.metrics.Reports.WithLabelValues("best_window").Inc()
	return b.String()
}

// BestDayReport scans the next bestDayRange days, recommends the one with
// the highest peak hourly score, and appends a chronological per-day trend
// labeled by mean score. Days that fail to fetch or have no data are skipped.
func (s *Service) BestDayReport(ctx context.Context, spotKey, beachKey string) string {
	spot, beach, ok := s.resolve(spotKey, beachKey)
	if !ok {
		return "No encontré esa playa en el catálogo. Escribí 'start' para empezar de nuevo."
	}

	today := domain.Now().In(s.loc)
	days := make([]dayConditions, 0, s.bestDayRange)
	for offset := 0; offset < s.bestDayRange; offset++ {
		date := today.AddDate(0, 0, offset)
		day, err := s.buildDay(ctx, spot, beach, date)
		if err != nil {
			s.logger.Debug("best-day scan skipping date", "date", date.Format("2006-01-02"), "error", err)
			continue
		}
		days = append(days, day)
	}

	if len(days) == 0 {
		s.reportFailure("best_day", domain.ErrNoData)
		return fmt.Sprintf("No pude estimar el mejor día de los próximos %d días para %s (%s).\n\n%s",
			s.bestDayRange, beach.Name, spot.Name, backTrailer)
	}

	// Ranking uses the peak hourly score; the labels below use the mean.
	// Both are intentional: the headline answers "when is the single best
	// moment", the trend answers "how does each day feel overall".
	best := days[0]
	for _, d := range days[1:] {
		if peakScore(d.obs) > peakScore(best.obs) {
			best = d
		}
	}

	hMin, hMax := heightRange(best.obs)
	tMin, tMax := periodRange(best.obs)
	mean := meanScore(best.obs)
	peak := peakScore(best.obs)

	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format+"\n", args...)
	}

	line("📆 Mejor día/horario en los próximos %d días para %s (%s):", s.bestDayRange, beach.Name, spot.Name)
	line("")
	line("- Día sugerido: %s %s (calidad global %s · %s; pico ~ %s / score máx ~ %.0f/100)",
		spanishWeekdays[best.date.Weekday()], best.date.Format("02/01/2006"),
		domain.QualityLabel(mean), domain.Stars(mean), domain.Stars(peak), peak)
	line("- Rango de olas ese día: %.1f – %.1f m · período %.0f – %.0f s", hMin, hMax, tMin, tMax)

	if len(best.windows) > 0 {
		w := best.windows[0]
		line("- Mejor ventana estimada: %s – %s hs · %s · %s (score ~ %.0f/100)",
			w.Start.Format("15:04"), w.End.Format("15:04"),
			domain.QualityLabel(w.AvgScore), domain.Stars(w.AvgScore), w.AvgScore)
	} else {
		h := bestHour(best.obs)
		line("- Horario más prometedor: %s hs · %.1f m · %.0f s · %s",
			h.Time.Format("15:04"), h.HeightM, h.PeriodS, windSummary(h))
	}

	line("")
	line("Resumen de la tendencia próxima:")
	for _, d := range days {
		m := meanScore(d.obs)
		line("- %s · %s · %s (score medio ~ %.0f/100)",
			d.date.Format("02/01"), domain.QualityLabel(m), domain.Stars(m), m)
	}

	line("")
	b.WriteString(backTrailer)

	s.metrics.Reports.WithLabelValues("best_day").Inc()
	return b.String()
}

func (s *Service) resolve(spotKey, beachKey string) (catalog.Spot, catalog.Beach, bool) {
	spot, ok := s.catalog.Spot(spotKey)
	if !ok {
		return catalog.Spot{}, catalog.Beach{}, false
	}
	beach, ok := spot.Beach(beachKey)
	if !ok {
		return catalog.Spot{}, catalog.Beach{}, false
	}
	return spot, beach, true
}

// hourLine renders one compact detail line: "06:00 0.7m/6s 💨12NW 🌊E ★★".
func hourLine(o domain.Observation) string {
	wind := "💨--"
	if o.WindSpeedKmh != nil {
		wind = fmt.Sprintf("💨%.0f%s", *o.WindSpeedKmh, domain.Compass(o.WindDirDeg))
	}
	return fmt.Sprintf("%s %.1fm/%.0fs %s 🌊%s %s",
		o.Time.Format("15:04"), o.HeightM, o.PeriodS, wind, domain.Compass(o.SwellDirDeg), domain.Stars(o.Score))
}

func windSummary(o domain.Observation) string {
	if o.WindSpeedKmh == nil {
		return "viento N/D"
	}
	return fmt.Sprintf("viento %.0f km/h", *o.WindSpeedKmh)
}

// windowRanges recomputes height/period ranges over just the window's hours,
// end-inclusive. Falls back to the whole-day ranges when nothing matches.
func windowRanges(obs []domain.Observation, w domain.Window, hMin, hMax, tMin, tMax float64) (float64, float64, float64, float64) {
	var inside []domain.Observation
	for _, o := range obs {
		if !o.Time.Before(w.Start) && !o.Time.After(w.End) {
			inside = append(inside, o)
		}
	}
	if len(inside) == 0 {
		return hMin, hMax, tMin, tMax
	}

	whMin, whMax := inside[0].HeightM, inside[0].HeightM
	wtMin, wtMax := inside[0].PeriodS, inside[0].PeriodS
	for _, o := range inside[1:] {
		whMin = min(whMin, o.HeightM)
		whMax = max(whMax, o.HeightM)
		wtMin = min(wtMin, o.PeriodS)
		wtMax = max(wtMax, o.PeriodS)
	}
	return whMin, whMax, wtMin, wtMax
}

func longDate(d time.Time) string {
	return fmt.Sprintf("%d de %s de %d", d.Day(), spanishMonths[d.Month()-1], d.Year())
}

// noWindowLine picks the fallback line for a day without qualifying windows,
// keyed by the mean-score band.
func noWindowLine(mean float64) string {
	switch {
	case mean < 35:
		return "No se ve una ventana muy prolija; el mar se mantiene bastante cruzado/desordenado."
	case mean < 55:
		return "No hay una ventana claramente mejor; el día se mantiene parejo, sin momentos muy destacados."
	default:
		return "Hay condiciones aceptables, pero sin bloques largos que superen el umbral de calidad marcado."
	}
}

// surfRead is the qualitative one-liner: six height bands crossed with score
// sub-bands. The period argument is part of the decision-table contract even
// though the current table only branches on height and mean score.
func surfRead(hMax, _ float64, mean float64) string {
	switch {
	case hMax < 0.4:
		return "Flat a muy chico. Solo para remar o chapotear con tabla grande."

	case hMax < 0.8:
		switch {
		case mean < 30:
			return "Chico y bastante tocado por viento/mar de fondo. Sesión floja, solo long/foamy."
		case mean < 55:
			return "Chico pero relativamente ordenado. Bien para longboard, SUP o tabla ancha, sin exigirse."
		default:
			return "Chico y prolijo casi todo el día. Buenas opciones para tablas grandes y entrenamiento suave."
		}

	case hMax < 1.5:
		switch {
		case mean < 40:
			return "Tamaño medio con mar mezclado. Se surfea algo, pero con secciones cortas e inestables."
		case mean < 55:
			return "Tamaño medio, condiciones irregulares. Se rascan olas y puede haber momentos buenos aislados."
		case mean < 65:
			return "Tamaño medio con paredes razonables. No es épico, pero se puede surfear bien si elegís la hora."
		default:
			return "Tamaño medio con buenas condiciones. Día sólido para sacar el shortboard y moverse."
		}

	default:
		switch {
		case mean < 40:
			return "Tamaño grande con mar desordenado. Solo recomendable con buena experiencia y ganas de remar."
		case mean < 65:
			return "Tamaño grande con condiciones mixtas. Hay secciones muy buenas si se elige bien la ventana."
		default:
			return "Tamaño grande y condiciones consistentes. Sesión potente para entrar descansado y concentrado."
		}
	}
}

type adjustmentEntry struct {
	name  string
	value string
}

func adjustmentEntries(a domain.AdjustmentSet) []adjustmentEntry {
	var entries []adjustmentEntry
	if a.HeightDelta != nil {
		entries = append(entries, adjustmentEntry{domain.ParamHeightDelta, formatParam(*a.HeightDelta)})
	}
	if a.PeriodFactor != nil {
		entries = append(entries, adjustmentEntry{domain.ParamPeriodFactor, formatParam(*a.PeriodFactor)})
	}
	return entries
}

func formatParam(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
