// Package orderedmap реализует map, сохраняющую порядок первой вставки ключей
package orderedmap

// Map отображение с порядком итерации по первой вставке ключа
// Повторная запись существующего ключа не меняет его позицию
type Map[K comparable, V any] struct {
	keys  []K
	items map[K]V
}

// New создает пустое отображение
func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{
		items: make(map[K]V),
	}
}

// Get возвращает значение по ключу
func (m *Map[K, V]) Get(key K) (V, bool) {
	v, ok := m.items[key]
	return v, ok
}

// Set записывает значение; новый ключ добавляется в конец порядка
func (m *Map[K, V]) Set(key K, value V) {
	if _, ok := m.items[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.items[key] = value
}

// Len количество ключей
func (m *Map[K, V]) Len() int {
	return len(m.keys)
}

// Keys ключи в порядке первой вставки
func (m *Map[K, V]) Keys() []K {
	keys := make([]K, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Values значения в порядке первой вставки ключей
func (m *Map[K, V]) Values() []V {
	values := make([]V, 0, len(m.keys))
	for _, k := range m.keys {
		values = append(values, m.items[k])
	}
	return values
}
