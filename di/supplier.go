package di

// ToStaticProvider wraps an already built value into a provider, so it can be
// registered like any other component.
func ToStaticProvider[T any](value T) func() T {
	return func() T {
		return value
	}
}
