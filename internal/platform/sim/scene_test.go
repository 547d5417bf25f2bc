package sim

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mj1618/a11y-bridge/internal/model"
	"github.com/mj1618/a11y-bridge/internal/platform"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const loginScene = `
activity: com.example.app.LoginActivity
sdk: 33
root:
  class: android.widget.FrameLayout
  package: com.example.app
  bounds: "[0,0][720,1280]"
  children:
    - class: android.widget.LinearLayout
      bounds: [0, 0, 720, 200]
      children:
        - class: android.widget.EditText
          resource-id: com.example.app:id/user
          bounds: "[10,10][710,90]"
          editable: true
`

func TestParseScene(t *testing.T) {
	s, err := ParseScene([]byte(loginScene))
	require.NoError(t, err)
	assert.Equal(t, "com.example.app.LoginActivity", s.Activity)
	assert.Equal(t, 33, s.SDK)
	assert.Equal(t, model.Rect{Right: 720, Bottom: 1280}, s.Screen)
	require.Len(t, s.Root.Children, 1)
	assert.Equal(t, model.Rect{Right: 720, Bottom: 200}, s.Root.Children[0].Bounds)
	assert.True(t, s.Root.Children[0].Children[0].Editable)
}

func TestParseScene_Defaults(t *testing.T) {
	s, err := ParseScene([]byte("root:\n  class: X\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultSDKVersion, s.SDK)
	assert.Equal(t, model.Rect{Right: 1080, Bottom: 2400}, s.Screen)
}

func TestParseScene_Invalid(t *testing.T) {
	_, err := ParseScene([]byte("root: [unclosed"))
	assert.Error(t, err)
}

func TestNewProvider_LoadsAndWatchesScene(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte(loginScene), 0o644))

	p, err := NewProvider(platform.Options{Scene: path, Logger: zerolog.Nop()})
	require.NoError(t, err)
	defer p.Close()
	assert.Equal(t, 33, p.SDKVersion)

	drain := func(want string) {
		t.Helper()
		deadline := time.After(3 * time.Second)
		for {
			select {
			case e := <-p.Events.Events():
				if e.Type == platform.EventWindowStateChanged && e.ClassName == want {
					return
				}
			case <-deadline:
				t.Fatalf("no window-state-changed for %s", want)
			}
		}
	}
	drain("com.example.app.LoginActivity")

	updated := "activity: com.example.app.HomeActivity\nroot:\n  class: android.widget.FrameLayout\n  bounds: \"[0,0][720,1280]\"\n"
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o644))
	drain("com.example.app.HomeActivity")

	root, err := p.Tree.RootInActiveWindow()
	require.NoError(t, err)
	require.NotNil(t, root)
	defer root.Recycle()
	assert.Equal(t, 0, root.ChildCount())
}

func TestNewProvider_SDKOverride(t *testing.T) {
	p, err := NewProvider(platform.Options{SDKVersion: 28, Logger: zerolog.Nop()})
	require.NoError(t, err)
	defer p.Close()
	assert.Equal(t, 28, p.SDKVersion)
}

func TestNewProvider_MissingScene(t *testing.T) {
	_, err := NewProvider(platform.Options{Scene: filepath.Join(t.TempDir(), "nope.yaml")})
	assert.Error(t, err)
}
