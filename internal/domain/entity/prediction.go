package entity

import (
	"errors"
	"math"
	"time"
)

// ErrNoScores модель вернула пустой или полностью NaN массив оценок
var ErrNoScores = errors.New("no scores to rank")

// Prediction итог классификации одного кадра
type Prediction struct {
	Seq        uint64        // номер кадра
	ClassID    int           // индекс класса (arg-max)
	Label      string        // имя класса из списка меток
	Score      float32       // сырое значение на выходе модели
	Confidence float32       // вероятность после softmax (или Score, если softmax выключен)
	Elapsed    time.Duration // время прямого прохода
	At         time.Time
}

// ArgMax возвращает индекс и значение максимального элемента.
// При равенстве выигрывает первое вхождение, NaN пропускаются.
// Для пустого массива (или только NaN) возвращает -1.
func ArgMax(scores []float32) (int, float32) {
	idx := -1
	var best float32
	for i, v := range scores {
		if v != v {
			continue
		}
		if idx == -1 || v > best {
			idx = i
			best = v
		}
	}
	if idx == -1 {
		return -1, 0
	}
	return idx, best
}

// Softmax переводит логиты в вероятности
func Softmax(scores []float32) []float32 {
	out := make([]float32, len(scores))
	if len(scores) == 0 {
		return out
	}
	_, maxVal := ArgMax(scores)

	// +Inf делят всю вероятность поровну
	if math.IsInf(float64(maxVal), 1) {
		var k int
		for _, v := range scores {
			if math.IsInf(float64(v), 1) {
				k++
			}
		}
		for i, v := range scores {
			if math.IsInf(float64(v), 1) {
				out[i] = 1 / float32(k)
			}
		}
		return out
	}

	var sum float64
	for i, v := range scores {
		e := math.Exp(float64(v - maxVal))
		if math.IsNaN(e) {
			e = 0
		}
		out[i] = float32(e)
		sum += e
	}
	if sum == 0 {
		return out
	}
	for i := range out {
		out[i] = float32(float64(out[i]) / sum)
	}
	return out
}
