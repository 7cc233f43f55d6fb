package library

import "slices"

// registry is a map which remembers insertion order.
// Re-putting an existing ID replaces the value but keeps the original position.
type registry[T any] struct {
	byID  map[string]*T
	order []string
}

func newRegistry[T any]() *registry[T] {
	return &registry[T]{
		byID:  make(map[string]*T),
		order: make([]string, 0),
	}
}

func (r *registry[T]) get(id string) (*T, bool) {
	v, ok := r.byID[id]
	return v, ok
}

func (r *registry[T]) has(id string) bool {
	_, ok := r.byID[id]
	return ok
}

func (r *registry[T]) put(id string, v *T) {
	if !r.has(id) {
		r.order = append(r.order, id)
	}

	r.byID[id] = v
}

func (r *registry[T]) delete(id string) {
	if !r.has(id) {
		return
	}

	delete(r.byID, id)
	r.order = slices.DeleteFunc(r.order, func(o string) bool { return o == id })
}

func (r *registry[T]) len() int {
	return len(r.order)
}

// each visits the values in insertion order.
func (r *registry[T]) each(visit func(v *T)) {
	for _, id := range r.order {
		visit(r.byID[id])
	}
}
