package memory

// table is a keyed collection that remembers insertion order.
// It is not safe for concurrent use; Store guards every table with its mutex.
type table[T any] struct {
	rows  map[string]T
	order []string
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[string]T)}
}

func (t *table[T]) get(id string) (T, bool) {
	row, ok := t.rows[id]
	return row, ok
}

func (t *table[T]) has(id string) bool {
	_, ok := t.rows[id]
	return ok
}

func (t *table[T]) insert(id string, row T) {
	if _, ok := t.rows[id]; !ok {
		t.order = append(t.order, id)
	}
	t.rows[id] = row
}

// replace overwrites an existing row and reports whether it was present.
func (t *table[T]) replace(id string, row T) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	t.rows[id] = row
	return true
}

// find returns the first row in insertion order matching pred.
func (t *table[T]) find(pred func(T) bool) (T, bool) {
	for _, id := range t.order {
		if row := t.rows[id]; pred(row) {
			return row, true
		}
	}
	var zero T
	return zero, false
}

// filter returns rows in insertion order. A nil predicate keeps every row.
func (t *table[T]) filter(pred func(T) bool) []T {
	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		row := t.rows[id]
		if pred == nil || pred(row) {
			out = append(out, row)
		}
	}
	return out
}

func (t *table[T]) len() int {
	return len(t.rows)
}
