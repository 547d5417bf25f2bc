package platform

import (
	"errors"
	"io"

	"github.com/rs/zerolog"
)

// Provider bundles the host capabilities consumed by the bridge.
type Provider struct {
	Tree     TreeReader
	Gestures GestureInjector
	Screen   Screenshotter
	Events   EventSource

	// SDKVersion is the host platform API level. Screen capture requires 30+.
	SDKVersion int

	// Closer, if set, releases backend resources (watchers, event streams).
	Closer io.Closer
}

// Close releases backend resources.
func (p *Provider) Close() error {
	if p == nil || p.Closer == nil {
		return nil
	}
	return p.Closer.Close()
}

// MinScreenshotSDK is the first host API level with asynchronous capture.
const MinScreenshotSDK = 30

// SupportsScreenshot reports whether the host can capture the screen.
func (p *Provider) SupportsScreenshot() bool {
	return p != nil && p.Screen != nil && p.SDKVersion >= MinScreenshotSDK
}

// ErrUnsupported is returned when no host backend has been registered.
var ErrUnsupported = errors.New("no accessibility host backend registered")

// Options configures backend construction.
type Options struct {
	// Scene is a backend-specific description of the initial screen,
	// e.g. a scene file path for the simulated host.
	Scene string
	// SDKVersion overrides the reported host API level (0 = backend default).
	SDKVersion int
	// Logger receives backend diagnostics.
	Logger zerolog.Logger
}

// NewProviderFunc is set by backend packages via init().
// See internal/platform/sim/init.go for the simulated host registration.
var NewProviderFunc func(opts Options) (*Provider, error)

// NewProvider returns a Provider from the registered backend.
func NewProvider(opts Options) (*Provider, error) {
	if NewProviderFunc == nil {
		return nil, ErrUnsupported
	}
	return NewProviderFunc(opts)
}
