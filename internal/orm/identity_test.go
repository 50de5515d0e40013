package orm

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentityMap(t *testing.T) {
	m := NewIdentityMap[string]()

	_, ok := m.Get(1)
	assert.False(t, ok)

	m.Put(3, "c")
	m.Put(1, "a")
	m.Put(2, "b")
	assert.Equal(t, 3, m.Len())
	assert.Equal(t, []int64{1, 2, 3}, m.IDs())

	v, ok := m.Get(2)
	assert.True(t, ok)
	assert.Equal(t, "b", v)

	m.Put(2, "bb")
	v, _ = m.Get(2)
	assert.Equal(t, "bb", v)

	m.Remove(2)
	m.Remove(42)
	assert.Equal(t, []int64{1, 3}, m.IDs())

	m.Clear()
	assert.Zero(t, m.Len())
}

func TestIdentityMap_ConcurrentAccess(t *testing.T) {
	m := NewIdentityMap[int]()

	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			m.Put(id, int(id))
			_, _ = m.Get(id)
		}(int64(i))
	}
	wg.Wait()

	assert.Equal(t, 50, m.Len())
}
