package entity

import "time"

// Alert предупреждение о препятствии, которое устойчиво держится в окне наблюдения
type Alert struct {
	ClassID int
	Label   string
	Count   int // сколько раз класс встретился в окне
	Window  int // размер окна
	At      time.Time
}

// MostFrequent возвращает самый частый id и число его вхождений.
// При равенстве выигрывает тот, кто встретился раньше.
func MostFrequent(ids []int) (id, count int) {
	if len(ids) == 0 {
		return -1, 0
	}
	counts := make(map[int]int, len(ids))
	for _, v := range ids {
		counts[v]++
	}
	id = -1
	for _, v := range ids {
		if c := counts[v]; c > count {
			id, count = v, c
		}
	}
	return id, count
}
