package telegram

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"frame-classifier/internal/domain/entity"
)

func TestFormatPrediction(t *testing.T) {
	text := formatPrediction(entity.Prediction{Label: "goldfish", Confidence: 0.5, Elapsed: 30 * time.Millisecond})
	require.Equal(t, "🔎 class : goldfish\nprob : 50.00%\ntime : 30ms", text)
}

func TestFormatAlert(t *testing.T) {
	text := formatAlert(entity.Alert{Label: "pole", Count: 15, Window: 20})
	require.Contains(t, text, "pole")
	require.Contains(t, text, "15 из 20")
}
