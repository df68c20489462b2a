package entity

// Labels список имён классов; номер строки равен номеру класса.
// Загружается один раз и больше не меняется.
type Labels []string

// At возвращает имя класса по индексу
func (l Labels) At(id int) (string, bool) {
	if id < 0 || id >= len(l) {
		return "", false
	}
	return l[id], true
}

func (l Labels) Len() int {
	return len(l)
}
