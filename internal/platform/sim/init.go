package sim

import "github.com/mj1618/a11y-bridge/internal/platform"

func init() {
	platform.NewProviderFunc = NewProvider
}

// NewProvider builds a simulated host from opts and connects it. When
// opts.Scene names a file it is loaded and watched for changes.
func NewProvider(opts platform.Options) (*platform.Provider, error) {
	scene := DefaultScene()
	if opts.Scene != "" {
		s, err := LoadScene(opts.Scene)
		if err != nil {
			return nil, err
		}
		scene = s
	}
	if opts.SDKVersion > 0 {
		scene.SDK = opts.SDKVersion
	}

	host := NewHost(scene, opts.Logger)
	if opts.Scene != "" {
		if err := host.WatchScene(opts.Scene); err != nil {
			host.Close()
			return nil, err
		}
	}
	host.Connect()
	return host.Provider(), nil
}
