package postprocess

// OutputPassBuilderOption is a functional option used to configure an OutputPass during construction.
type OutputPassBuilderOption func(*outputPass)

// WithExposure sets the initial exposure.
//
// Parameters:
//   - exposure: the exposure multiplier
//
// Returns:
//   - OutputPassBuilderOption: a function that sets the exposure
func WithExposure(exposure float32) OutputPassBuilderOption {
	return func(p *outputPass) {
		p.mat.exposure = exposure
	}
}

// WithToneMapping sets the tone mapping operator.
//
// Parameters:
//   - t: the operator
//
// Returns:
//   - OutputPassBuilderOption: a function that sets the tone mapping
func WithToneMapping(t ToneMapping) OutputPassBuilderOption {
	return func(p *outputPass) {
		p.mat.toneMapping = t
	}
}
