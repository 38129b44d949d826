package model

import (
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

// GeometrySpec names a geometry generator to run during BuildModels.
type GeometrySpec struct {
	// Name becomes the Model name.
	Name string
	// Build generates the geometry. It must be safe to call from any goroutine.
	Build func() Geometry
}

// BuildModels generates every spec's geometry in parallel on a worker pool and wraps each in a Model.
// The call blocks until all geometry is built; results keep the order of specs.
//
// Parameters:
//   - specs: the geometries to build
//   - workers: the worker count; values below 1 use NumCPU-1 (minimum 1)
//
// Returns:
//   - []Model: one model per spec, in spec order
func BuildModels(specs []GeometrySpec, workers int) []Model {
	if workers < 1 {
		workers = max(runtime.NumCPU()-1, 1)
	}
	pool := worker.NewDynamicWorkerPool(workers, max(len(specs), 1), 1*time.Second)

	models := make([]Model, len(specs))
	var wg sync.WaitGroup
	for i, spec := range specs {
		wg.Add(1)
		idx, s := i, spec
		pool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				models[idx] = NewModelFromGeometry(s.Name, s.Build())
				return nil, nil
			},
		})
	}
	wg.Wait()
	return models
}
