package sim

import (
	"fmt"
	"os"

	"github.com/mj1618/a11y-bridge/internal/model"
	"gopkg.in/yaml.v3"
)

// DefaultSDKVersion is the API level reported when a scene does not set one.
const DefaultSDKVersion = 34

// Scene describes the simulated screen.
type Scene struct {
	// Activity is the foreground activity class announced on load.
	Activity string `yaml:"activity"`
	// SDK is the reported host API level.
	SDK int `yaml:"sdk,omitempty"`
	// Screen is the display rectangle; defaults to the root bounds.
	Screen model.Rect `yaml:"screen,omitempty"`
	// Root is the active window's node tree.
	Root model.Element `yaml:"root"`
}

// ParseScene decodes a YAML scene and fills defaults.
func ParseScene(data []byte) (*Scene, error) {
	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	s.applyDefaults()
	return &s, nil
}

// LoadScene reads and decodes a scene file.
func LoadScene(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	return ParseScene(data)
}

func (s *Scene) applyDefaults() {
	if s.SDK == 0 {
		s.SDK = DefaultSDKVersion
	}
	if s.Screen.Empty() {
		s.Screen = s.Root.Bounds
	}
	if s.Screen.Empty() {
		s.Screen = model.Rect{Right: 1080, Bottom: 2400}
	}
}

// DefaultScene is a small launcher-like screen with a search field.
func DefaultScene() *Scene {
	s := &Scene{
		Activity: "com.example.launcher.HomeActivity",
		Root: model.Element{
			Class:   "android.widget.FrameLayout",
			Package: "com.example.launcher",
			Bounds:  model.Rect{Right: 1080, Bottom: 2400},
			Children: []model.Element{
				{
					Class:      "android.widget.LinearLayout",
					Package:    "com.example.launcher",
					ResourceID: "com.example.launcher:id/search_bar",
					Bounds:     model.Rect{Left: 40, Top: 120, Right: 1040, Bottom: 260},
					Clickable:  true,
					Children: []model.Element{
						{
							Class:       "android.widget.EditText",
							Package:     "com.example.launcher",
							ResourceID:  "com.example.launcher:id/search_input",
							ContentDesc: "Search",
							Bounds:      model.Rect{Left: 60, Top: 140, Right: 1020, Bottom: 240},
							Clickable:   true,
							Editable:    true,
						},
					},
				},
				{
					Class:       "android.widget.TextView",
					Package:     "com.example.launcher",
					Text:        "Settings",
					ContentDesc: "Settings",
					Bounds:      model.Rect{Left: 60, Top: 2000, Right: 300, Bottom: 2240},
					Clickable:   true,
				},
				{
					Class:       "android.widget.TextView",
					Package:     "com.example.launcher",
					Text:        "Camera",
					ContentDesc: "Camera",
					Bounds:      model.Rect{Left: 420, Top: 2000, Right: 660, Bottom: 2240},
					Clickable:   true,
				},
			},
		},
	}
	s.applyDefaults()
	return s
}
