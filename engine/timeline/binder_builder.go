package timeline

// BinderBuilderOption is a functional option used to configure a Binder during construction.
type BinderBuilderOption func(*binder)

// WithDefaults sets the values reported for properties the object does not animate.
// Without it position.z defaults to 5 and everything else to 0.
//
// Parameters:
//   - v: the default values
//
// Returns:
//   - BinderBuilderOption: a function that sets the defaults
func WithDefaults(v CameraValues) BinderBuilderOption {
	return func(b *binder) {
		b.defaults = v
	}
}
