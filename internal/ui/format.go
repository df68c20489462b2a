package ui

import (
	"fmt"

	"frame-classifier/internal/domain/entity"
)

// Caption строки подписи поверх кадра
func Caption(p entity.Prediction) []string {
	return []string{
		fmt.Sprintf("class : %s", p.Label),
		fmt.Sprintf("prob : %.2f%%", p.Confidence*100),
		fmt.Sprintf("time : %dms", p.Elapsed.Milliseconds()),
	}
}
