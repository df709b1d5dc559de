package cache

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
)

var ErrKeyExists = errors.New("key already exists in cache")

// Cache is a weight bounded LRU cache. Once the total weight of the entries
// passes the budget, the least recently used entries are evicted.
type Cache[K comparable, V any] interface {
	GetWeight() int
	GetBudget() int
	Len() int

	// Insert returns ErrKeyExists if the key is already cached.
	Insert(key K, value V, weight int) error

	// Retrieve marks the entry as recently used.
	Retrieve(key K) (V, bool)

	Clear()
}

type node[K comparable, V any] struct {
	next   *node[K, V]
	prev   *node[K, V]
	key    K
	value  V
	weight int
}

type cache[K comparable, V any] struct {
	log *logrus.Entry

	mu     sync.Mutex
	head   *node[K, V]
	tail   *node[K, V]
	lookup map[K]*node[K, V]
	weight int
	budget int
}

func NewCache[K comparable, V any](budget int) Cache[K, V] {
	return &cache[K, V]{
		log:    logrus.StandardLogger().WithField("type", "cache"),
		lookup: make(map[K]*node[K, V]),
		budget: budget,
	}
}

func (c *cache[K, V]) GetWeight() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.weight
}

func (c *cache[K, V]) GetBudget() int {
	return c.budget
}

func (c *cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.lookup)
}

func (c *cache[K, V]) Insert(key K, value V, weight int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, found := c.lookup[key]; found {
		return ErrKeyExists
	}

	n := &node[K, V]{
		key:    key,
		value:  value,
		weight: weight,
		next:   c.head,
	}
	if c.head != nil {
		c.head.prev = n
	}
	c.head = n
	if c.tail == nil {
		c.tail = n
	}

	c.lookup[key] = n
	c.weight += weight

	for c.weight > c.budget && c.tail != nil {
		evicted := c.tail
		if evicted.prev != nil {
			evicted.prev.next = nil
		} else {
			c.head = nil
		}
		c.tail = evicted.prev
		c.weight -= evicted.weight
		delete(c.lookup, evicted.key)

		c.log.WithFields(logrus.Fields{
			"weight":       evicted.weight,
			"spare_weight": c.budget - c.weight,
		}).Trace("evicted cache entry")
	}

	return nil
}

func (c *cache[K, V]) Retrieve(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, found := c.lookup[key]
	if !found {
		var zero V
		return zero, false
	}

	if n != c.head {
		if n.next != nil {
			n.next.prev = n.prev
		}
		if n.prev != nil {
			n.prev.next = n.next
		}
		if n == c.tail {
			c.tail = n.prev
		}

		n.next = c.head
		n.prev = nil
		if c.head != nil {
			c.head.prev = n
		}
		c.head = n
	}

	return n.value, true
}

func (c *cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.head = nil
	c.tail = nil
	c.lookup = make(map[K]*node[K, V])
	c.weight = 0
}
