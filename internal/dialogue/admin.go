package dialogue

import (
	"fmt"
	"strconv"
	"strings"
)

const adjustUsage = "Uso: /ajuste <spot> <playa> <param> <valor>\n" +
	"Ejemplo: /ajuste miramar centro delta_altura 0.3"

// handleAdjust processes the "/ajuste <spot> <playa> <param> <valor>" admin
// command. It writes through the adjustment store and leaves dialogue state
// untouched, so an admin can tweak calibration mid-conversation.
func (e *Engine) handleAdjust(text string) string {
	args := strings.Fields(strings.TrimSpace(text))[1:]
	if len(args) != 4 {
		return adjustUsage
	}

	spotKey, beachKey, param := args[0], args[1], args[2]
	value, err := strconv.ParseFloat(args[3], 64)
	if err != nil {
		return "El valor debe ser numérico (ej: 0.3)."
	}

	if err := e.store.Set(spotKey, beachKey, param, value); err != nil {
		e.logger.Error("adjustment update failed",
			"spot", spotKey, "beach", beachKey, "param", param, "error", err)
		return fmt.Sprintf("Error al aplicar ajuste: %v", err)
	}

	e.metrics.AdjustmentUpdates.Inc()
	e.logger.Info("adjustment applied",
		"spot", spotKey, "beach", beachKey, "param", param, "value", value)
	return fmt.Sprintf("Ajuste aplicado: %s/%s %s = %s",
		spotKey, beachKey, param, strconv.FormatFloat(value, 'g', -1, 64))
}
