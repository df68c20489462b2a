package port

import "frame-classifier/internal/domain/entity"

// Display экран предпросмотра. Оба метода не блокируют вызывающего.
type Display interface {
	// Preview передаёт кадр для предпросмотра
	Preview(frame entity.Frame)

	// Post передаёт результат классификации в UI
	Post(prediction entity.Prediction)
}
