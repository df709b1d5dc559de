package cache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_InsertWithinBudget(t *testing.T) {
	c := NewCache[string, string](3)
	require.NoError(t, c.Insert("A", "valueA", 1))
	require.NoError(t, c.Insert("B", "valueB", 1))
	require.NoError(t, c.Insert("C", "valueC", 1))

	assert.Equal(t, 3, c.GetWeight())
	assert.Equal(t, 3, c.GetBudget())
	assert.Equal(t, 3, c.Len())

	value, ok := c.Retrieve("B")
	assert.True(t, ok)
	assert.Equal(t, "valueB", value)
}

func TestCache_DuplicateRejected(t *testing.T) {
	c := NewCache[string, int](2)
	require.NoError(t, c.Insert("dupe", 1, 1))
	assert.ErrorIs(t, c.Insert("dupe", 2, 1), ErrKeyExists)

	value, ok := c.Retrieve("dupe")
	assert.True(t, ok)
	assert.Equal(t, 1, value)
}

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := NewCache[string, string](2)
	require.NoError(t, c.Insert("evicted", "valueEvicted", 1))
	require.NoError(t, c.Insert("A", "valueA", 1))
	require.NoError(t, c.Insert("B", "valueB", 1))

	assert.Equal(t, 2, c.GetWeight())

	_, ok := c.Retrieve("evicted")
	assert.False(t, ok)

	_, ok = c.Retrieve("A")
	assert.True(t, ok)
	_, ok = c.Retrieve("B")
	assert.True(t, ok)
}

func TestCache_EvictsLeastRecentlyRetrieved(t *testing.T) {
	c := NewCache[string, string](2)
	require.NoError(t, c.Insert("A", "valueA", 1))
	require.NoError(t, c.Insert("B", "valueB", 1))

	_, ok := c.Retrieve("A")
	require.True(t, ok)

	require.NoError(t, c.Insert("C", "valueC", 1))

	_, ok = c.Retrieve("B")
	assert.False(t, ok)
	_, ok = c.Retrieve("A")
	assert.True(t, ok)
}

func TestCache_OversizedEntryEvictsEverything(t *testing.T) {
	c := NewCache[string, string](2)
	require.NoError(t, c.Insert("A", "valueA", 1))
	require.NoError(t, c.Insert("big", "valueBig", 3))

	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 0, c.GetWeight())

	require.NoError(t, c.Insert("B", "valueB", 1))
	_, ok := c.Retrieve("B")
	assert.True(t, ok)
}

func TestCache_Clear(t *testing.T) {
	c := NewCache[string, string](1)
	require.NoError(t, c.Insert("cleared", "valueCleared", 1))
	c.Clear()

	_, ok := c.Retrieve("cleared")
	assert.False(t, ok)
	assert.Equal(t, 0, c.GetWeight())
}

func TestCache_Concurrent(t *testing.T) {
	c := NewCache[string, int](50)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("%d-%d", worker, j%20)
				if _, ok := c.Retrieve(key); !ok {
					_ = c.Insert(key, j, 1)
				}
			}
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, c.GetWeight(), c.GetBudget())
	assert.Equal(t, c.GetWeight(), c.Len())
}
