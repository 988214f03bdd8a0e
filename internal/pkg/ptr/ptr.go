package ptr

func Of[T any](v T) *T {
	return &v
}

// Clone copies the pointee so callers cannot alias entity state.
func Clone[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
