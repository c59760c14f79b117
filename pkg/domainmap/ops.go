package domainmap

// GetOrSet returns the existing value for a key, or sets and returns the given value if absent.
func (m *Map[K, V]) GetOrSet(key K, value V) (V, bool) {
	h, d, i := m.lookup(key)
	if i >= 0 {
		return m.domains[d][i].value, true
	}
	m.insert(key, value, h, d)
	return value, false
}

// SetIfAbsent sets the value only if the key does not exist.
// Returns true if the value was set, false if the key already exists.
func (m *Map[K, V]) SetIfAbsent(key K, value V) bool {
	h, d, i := m.lookup(key)
	if i >= 0 {
		return false
	}
	m.insert(key, value, h, d)
	return true
}

// SetIfPresent sets the value only if the key already exists.
// Returns true if the value was set, false if the key does not exist.
func (m *Map[K, V]) SetIfPresent(key K, value V) bool {
	_, d, i := m.lookup(key)
	if i < 0 {
		return false
	}
	m.domains[d][i].value = value
	return true
}

// Pop removes a key and returns its value.
// Returns the value and true if the key existed, zero value and false otherwise.
func (m *Map[K, V]) Pop(key K) (V, bool) {
	_, d, i := m.lookup(key)
	if i < 0 {
		var zero V
		return zero, false
	}
	val := m.domains[d][i].value
	m.tombstone(d, i)
	return val, true
}

// Update stores fn(current, exists) under key and returns it.
func (m *Map[K, V]) Update(key K, fn func(value V, exists bool) V) V {
	h, d, i := m.lookup(key)
	if i >= 0 {
		e := m.domains[d][i]
		e.value = fn(e.value, true)
		return e.value
	}
	var zero V
	v := fn(zero, false)
	m.insert(key, v, h, d)
	return v
}
