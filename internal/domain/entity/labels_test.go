package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLabelsAt(t *testing.T) {
	l := Labels{"tench", "goldfish", "great white shark"}

	name, ok := l.At(1)
	require.True(t, ok)
	require.Equal(t, "goldfish", name)

	_, ok = l.At(-1)
	require.False(t, ok)
	_, ok = l.At(3)
	require.False(t, ok)
	require.Equal(t, 3, l.Len())
}

func TestMostFrequent(t *testing.T) {
	id, n := MostFrequent([]int{3, 5, 5, 3, 5})
	require.Equal(t, 5, id)
	require.Equal(t, 3, n)

	// ничья: выигрывает класс, встретившийся первым
	id, n = MostFrequent([]int{7, 2, 2, 7})
	require.Equal(t, 7, id)
	require.Equal(t, 2, n)

	id, n = MostFrequent(nil)
	require.Equal(t, -1, id)
	require.Zero(t, n)
}

func TestTensorLen(t *testing.T) {
	tensor := NewTensor(4)
	require.Equal(t, []int64{1, 3, 4, 4}, tensor.Shape)
	require.Equal(t, 48, tensor.Len())
	require.Len(t, tensor.Data, tensor.Len())
	require.Zero(t, Tensor{}.Len())
}
