package viewer

// StoreBuilderOption is a functional option used to configure a Store during construction.
type StoreBuilderOption func(*storeConfig)

// WithCameraProjection sets the projection of both cameras.
//
// Parameters:
//   - fov: vertical field of view in radians
//   - near: near clip distance
//   - far: far clip distance
//
// Returns:
//   - StoreBuilderOption: a function that sets the projection
func WithCameraProjection(fov, near, far float32) StoreBuilderOption {
	return func(c *storeConfig) {
		c.fov, c.near, c.far = fov, near, far
	}
}

// WithCameraPosition sets the initial position of both cameras.
//
// Parameters:
//   - x, y, z: the position
//
// Returns:
//   - StoreBuilderOption: a function that sets the position
func WithCameraPosition(x, y, z float32) StoreBuilderOption {
	return func(c *storeConfig) {
		c.position = [3]float32{x, y, z}
	}
}

// WithAspect sets the initial aspect ratio of both cameras.
//
// Parameters:
//   - aspect: width over height
//
// Returns:
//   - StoreBuilderOption: a function that sets the aspect ratio
func WithAspect(aspect float32) StoreBuilderOption {
	return func(c *storeConfig) {
		c.aspect = aspect
	}
}

// WithWorkers sets the worker count used for mesh generation; values below 1 pick one from the CPU count.
//
// Parameters:
//   - n: the worker count
//
// Returns:
//   - StoreBuilderOption: a function that sets the worker count
func WithWorkers(n int) StoreBuilderOption {
	return func(c *storeConfig) {
		c.workers = n
	}
}
