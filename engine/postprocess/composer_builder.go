package postprocess

// ComposerBuilderOption is a functional option used to configure a Composer during construction.
type ComposerBuilderOption func(*composer)

// WithLabel sets the label prefix of the composer's render targets.
//
// Parameters:
//   - label: the label prefix
//
// Returns:
//   - ComposerBuilderOption: a function that sets the label
func WithLabel(label string) ComposerBuilderOption {
	return func(c *composer) {
		c.label = label
	}
}

// WithPasses appends passes to the chain at construction.
//
// Parameters:
//   - passes: the passes in run order
//
// Returns:
//   - ComposerBuilderOption: a function that appends the passes
func WithPasses(passes ...Pass) ComposerBuilderOption {
	return func(c *composer) {
		c.passes = append(c.passes, passes...)
	}
}
