// pre_processor.go implements the Oxy WGSL shader pre-processor. It scans shader
// source code for "// @oxy:include <name>" lines and replaces each with the registered
// WGSL source of that name. The canonical GPU struct definitions live next to the Go
// types that mirror them (camera, light, model), so a shader never restates a layout.
package shader

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-portal/engine/camera"
	"github.com/Carmen-Shannon/oxy-portal/engine/light"
	"github.com/Carmen-Shannon/oxy-portal/engine/model"
)

// includeDirective is the comment prefix recognised by the pre-processor.
const includeDirective = "@oxy:include"

// maxIncludeDepth bounds nested includes.
const maxIncludeDepth = 4

// preProcessor is the implementation of the PreProcessor interface.
type preProcessor struct {
	// registry maps include names to their WGSL source.
	registry map[string]string
}

// PreProcessor expands @oxy:include directives in WGSL source.
type PreProcessor interface {
	// Process replaces every include directive with the registered source, recursively.
	// Each name is included at most once per Process call; repeated includes expand to nothing.
	//
	// Parameters:
	//   - source: the raw WGSL shader source
	//
	// Returns:
	//   - string: the expanded WGSL source
	//   - error: an error if a directive is malformed, names an unknown include, or nests too deeply
	Process(source string) (string, error)

	// Register adds or replaces an include.
	//
	// Parameters:
	//   - name: the include name used in directives
	//   - source: the WGSL source to inject
	Register(name, source string)
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a new PreProcessor with the engine's GPU struct sources pre-registered:
// camera, light, model_data, vertex and scene_common.
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor instance
func NewPreProcessor() PreProcessor {
	return &preProcessor{
		registry: map[string]string{
			"camera":       camera.GPUCameraUniformSource,
			"light":        light.GPULightSource,
			"model_data":   model.GPUModelDataSource,
			"vertex":       model.GPUVertexSource,
			"scene_common": sceneCommonSource,
		},
	}
}

func (p *preProcessor) Register(name, source string) {
	p.registry[name] = source
}

func (p *preProcessor) Process(source string) (string, error) {
	seen := make(map[string]bool)
	return p.expand(source, seen, 0)
}

func (p *preProcessor) expand(source string, seen map[string]bool, depth int) (string, error) {
	if depth > maxIncludeDepth {
		return "", fmt.Errorf("includes nested deeper than %d", maxIncludeDepth)
	}

	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		name, ok, err := parseInclude(line)
		if err != nil {
			return "", fmt.Errorf("line %d: %w", i+1, err)
		}
		if !ok {
			out = append(out, line)
			continue
		}
		if seen[name] {
			continue
		}
		src, found := p.registry[name]
		if !found {
			return "", fmt.Errorf("line %d: unknown include %q", i+1, name)
		}
		seen[name] = true
		expanded, err := p.expand(src, seen, depth+1)
		if err != nil {
			return "", fmt.Errorf("include %q: %w", name, err)
		}
		out = append(out, expanded)
	}
	return strings.Join(out, "\n"), nil
}

// parseInclude reports whether line is an include directive and returns the included name.
func parseInclude(line string) (string, bool, error) {
	trimmed := strings.TrimSpace(line)
	rest, ok := strings.CutPrefix(trimmed, "//")
	if !ok {
		return "", false, nil
	}
	rest, ok = strings.CutPrefix(strings.TrimSpace(rest), includeDirective)
	if !ok {
		return "", false, nil
	}
	fields := strings.Fields(rest)
	if len(fields) != 1 {
		return "", false, fmt.Errorf("%s expects exactly one name, got %d", includeDirective, len(fields))
	}
	return fields[0], true, nil
}
