// Package viewer is the portal viewer application: two scenes, one shared camera, a portal in the
// primary scene that shows the secondary one, and a frame driver tying them to the renderer.
package viewer

// SceneID identifies one of the two scenes.
type SceneID int

const (
	// ScenePrimary is the scene containing the portal.
	ScenePrimary SceneID = iota
	// SceneSecondary is the scene seen through the portal.
	SceneSecondary
)

// SelectionThreshold is the camera depth below which the secondary scene is shown.
const SelectionThreshold float32 = -3.5

func (id SceneID) String() string {
	switch id {
	case ScenePrimary:
		return "primary"
	case SceneSecondary:
		return "secondary"
	default:
		return "unknown"
	}
}

// SelectScene picks the scene to composite from the camera depth. The cut is hard: depths strictly
// below SelectionThreshold select the secondary scene, everything else (the threshold included)
// the primary one.
//
// Parameters:
//   - depth: the camera position on the z axis
//
// Returns:
//   - SceneID: the selected scene
func SelectScene(depth float32) SceneID {
	if depth < SelectionThreshold {
		return SceneSecondary
	}
	return ScenePrimary
}
