package units

// ResolveLevel computes the hierarchy level of a candidate unit from its type
// and its already-persisted provider. It runs before every create and before
// every update that touches the type or the provider, so persisted levels stay
// correct by induction and never need a global re-walk.
func ResolveLevel(t Type, provider *Unit) (int, error) {
	switch {
	case t == TypeManufacture:
		if provider != nil {
			return 0, ErrInvalidHierarchy
		}
		return 0, nil
	case provider == nil:
		return 0, ErrMissingProvider
	case provider.Type == TypeManufacture:
		return 1, nil
	default:
		return provider.Level + 1, nil
	}
}
