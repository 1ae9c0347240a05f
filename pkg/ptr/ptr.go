package ptr

// Ptr retorna un puntero al valor recibido
func Ptr[T any](v T) *T {
	return &v
}

// Deref retorna el valor apuntado o el zero value si el puntero es nil
func Deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
