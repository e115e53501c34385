package form

// IntegralTable stores subdomain-registered integral factories for one
// entity kind plus an optional default. Concrete forms embed one table per
// entity kind; T is one of the five integral interfaces.
type IntegralTable[T any] struct {
	Factories map[int]func() T
	Default   func() T
}

// Lookup returns the factory registered for the given subdomain id.
func (t IntegralTable[T]) Lookup(subdomainID int) (T, bool) {
	if f, ok := t.Factories[subdomainID]; ok {
		return f(), true
	}
	var zero T
	return zero, false
}

// CreateDefault returns a kernel from the default factory, or the zero
// value when no default is registered.
func (t IntegralTable[T]) CreateDefault() (T, bool) {
	if t.Default != nil {
		return t.Default(), true
	}
	var zero T
	return zero, false
}

// MaxSubdomainID returns the exclusive upper bound on registered ids.
func (t IntegralTable[T]) MaxSubdomainID() int {
	max := 0
	for id := range t.Factories {
		if id+1 > max {
			max = id + 1
		}
	}
	return max
}

// Present reports whether the table holds any factory at all.
func (t IntegralTable[T]) Present() bool {
	return len(t.Factories) > 0 || t.Default != nil
}
