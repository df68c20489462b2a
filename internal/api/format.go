package telegram

import (
	"fmt"
	"strings"

	"frame-classifier/internal/domain/entity"
	"frame-classifier/internal/ui"
)

func formatPrediction(p entity.Prediction) string {
	return "🔎 " + strings.Join(ui.Caption(p), "\n")
}

func formatAlert(a entity.Alert) string {
	return fmt.Sprintf("⚠️ Впереди препятствие: %s (%d из %d последних кадров)", a.Label, a.Count, a.Window)
}
