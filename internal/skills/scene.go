// Package skills turns the skill graph into a renderable 3D scene
// description and holds the per-frame camera and node motion rules the
// WebGL client follows.
package skills

import (
	"fmt"
	"math"
	"strings"

	"github.com/kiriseka/portfolio/internal/content"
)

// Palette shared with the stylesheet.
const (
	ColorPrimary   = "#a6e22e" // olive
	ColorSecondary = "#ffb000" // sepia
	ColorLink      = "#704214" // muted sepia
)

// Camera and motion constants.
const (
	FOV             = 45.0
	DesktopDistance = 8.0
	MobileDistance  = 18.0
	MobileWidth     = 600
	LerpFactor      = 0.05
	ParallaxScale   = 2.0
	BobAmplitude    = 0.1
)

type Vec3 [3]float64

type Material struct {
	Color             string  `json:"color"`
	Emissive          string  `json:"emissive"`
	EmissiveIntensity float64 `json:"emissive_intensity"`
	Roughness         float64 `json:"roughness"`
	Metalness         float64 `json:"metalness"`
}

type Light struct {
	Kind      string  `json:"kind"`
	Position  *Vec3   `json:"position,omitempty"`
	Color     string  `json:"color,omitempty"`
	Intensity float64 `json:"intensity"`
	Distance  float64 `json:"distance,omitempty"`
}

type Text struct {
	Value    string  `json:"value"`
	OffsetY  float64 `json:"offset_y"`
	FontSize float64 `json:"font_size"`
	Color    string  `json:"color"`
}

// NodeMesh is one labelled sphere with its halo light.
type NodeMesh struct {
	ID       string   `json:"id"`
	Position Vec3     `json:"position"`
	Radius   float64  `json:"radius"`
	Material Material `json:"material"`
	Halo     Light    `json:"halo"`
	Label    Text     `json:"label"`
	Caption  Text     `json:"caption"`
}

type Segment struct {
	Source  string  `json:"source"`
	Target  string  `json:"target"`
	Points  [2]Vec3 `json:"points"`
	Color   string  `json:"color"`
	Width   float64 `json:"width"`
	Opacity float64 `json:"opacity"`
}

type Camera struct {
	Position Vec3    `json:"position"`
	FOV      float64 `json:"fov"`
}

type Scene struct {
	Camera Camera     `json:"camera"`
	Lights []Light    `json:"lights"`
	Nodes  []NodeMesh `json:"nodes"`
	Links  []Segment  `json:"links"`
	Motion Motion     `json:"motion"`
}

// Motion carries the animation parameters so the client and server
// agree on them.
type Motion struct {
	LerpFactor      float64 `json:"lerp_factor"`
	ParallaxScale   float64 `json:"parallax_scale"`
	BobAmplitude    float64 `json:"bob_amplitude"`
	MobileWidth     int     `json:"mobile_width"`
	MobileDistance  float64 `json:"mobile_distance"`
	DesktopDistance float64 `json:"desktop_distance"`
}

// IsPrimary reports whether a category uses the primary colour.
func IsPrimary(category string) bool {
	return category == content.CategoryLanguages || category == content.CategoryBackend
}

// ColorFor returns the node colour for a category.
func ColorFor(category string) string {
	if IsPrimary(category) {
		return ColorPrimary
	}
	return ColorSecondary
}

// BuildScene resolves the graph into meshes and line segments. A link to
// an unknown node is an error.
func BuildScene(g content.Graph) (Scene, error) {
	byID := make(map[string]content.Node, len(g.Nodes))
	for _, n := range g.Nodes {
		byID[n.ID] = n
	}

	scene := Scene{
		Camera: Camera{Position: Vec3{0, 0, DesktopDistance}, FOV: FOV},
		Lights: []Light{
			{Kind: "ambient", Intensity: 0.5},
			{Kind: "point", Position: &Vec3{10, 10, 10}, Intensity: 1},
		},
		Nodes: make([]NodeMesh, 0, len(g.Nodes)),
		Links: make([]Segment, 0, len(g.Links)),
		Motion: Motion{
			LerpFactor:      LerpFactor,
			ParallaxScale:   ParallaxScale,
			BobAmplitude:    BobAmplitude,
			MobileWidth:     MobileWidth,
			MobileDistance:  MobileDistance,
			DesktopDistance: DesktopDistance,
		},
	}

	for _, n := range g.Nodes {
		color := ColorFor(n.Category)
		scene.Nodes = append(scene.Nodes, NodeMesh{
			ID:       n.ID,
			Position: Vec3{n.X, n.Y, n.Z},
			Radius:   0.15,
			Material: Material{
				Color:             color,
				Emissive:          color,
				EmissiveIntensity: 0.8,
				Roughness:         0.2,
				Metalness:         0.8,
			},
			Halo:    Light{Kind: "point", Color: color, Intensity: 2, Distance: 1.5},
			Label:   Text{Value: n.Label, OffsetY: 0.4, FontSize: 0.25, Color: "white"},
			Caption: Text{Value: strings.ToUpper(n.Category), OffsetY: 0.2, FontSize: 0.12, Color: color},
		})
	}

	for i, l := range g.Links {
		src, ok := byID[l.Source]
		if !ok {
			return Scene{}, fmt.Errorf("link %d: source %q: %w", i, l.Source, content.ErrNotFound)
		}
		dst, ok := byID[l.Target]
		if !ok {
			return Scene{}, fmt.Errorf("link %d: target %q: %w", i, l.Target, content.ErrNotFound)
		}
		scene.Links = append(scene.Links, Segment{
			Source:  l.Source,
			Target:  l.Target,
			Points:  [2]Vec3{{src.X, src.Y, src.Z}, {dst.X, dst.Y, dst.Z}},
			Color:   ColorLink,
			Width:   1,
			Opacity: 0.3,
		})
	}
	return scene, nil
}

// Bob is a node's y coordinate t seconds into the animation.
func Bob(n content.Node, t float64) float64 {
	return n.Y + math.Sin(t+n.X)*BobAmplitude
}

// Lerp moves a toward b by fraction f.
func Lerp(a, b, f float64) float64 {
	return a + (b-a)*f
}

// Pointer is the normalised pointer position, each axis in [-1, 1].
type Pointer struct {
	X, Y float64
}

// TargetDistance is the camera z the scene eases toward for a viewport.
func TargetDistance(viewportWidth int) float64 {
	if viewportWidth < MobileWidth {
		return MobileDistance
	}
	return DesktopDistance
}

// CameraStep advances the camera by one frame: x and y ease toward the
// scaled pointer, z toward the distance for the viewport. The camera
// always looks at the origin, so only the position changes.
func CameraStep(pos Vec3, p Pointer, viewportWidth int) Vec3 {
	return Vec3{
		Lerp(pos[0], p.X*ParallaxScale, LerpFactor),
		Lerp(pos[1], p.Y*ParallaxScale, LerpFactor),
		Lerp(pos[2], TargetDistance(viewportWidth), LerpFactor),
	}
}
