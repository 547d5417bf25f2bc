package platform

import "testing"

func TestNewProvider_Unregistered(t *testing.T) {
	orig := NewProviderFunc
	NewProviderFunc = nil
	defer func() { NewProviderFunc = orig }()

	_, err := NewProvider(Options{})
	if err == nil {
		t.Fatal("expected error with no registered backend")
	}
	if err != ErrUnsupported {
		t.Errorf("expected ErrUnsupported, got: %v", err)
	}
}

func TestNewProvider_Registered(t *testing.T) {
	orig := NewProviderFunc
	defer func() { NewProviderFunc = orig }()

	var got Options
	NewProviderFunc = func(opts Options) (*Provider, error) {
		got = opts
		return &Provider{SDKVersion: opts.SDKVersion}, nil
	}
	p, err := NewProvider(Options{Scene: "home.yaml", SDKVersion: 33})
	if err != nil {
		t.Fatal(err)
	}
	if got.Scene != "home.yaml" {
		t.Errorf("scene not forwarded: %q", got.Scene)
	}
	if p.SDKVersion != 33 {
		t.Errorf("sdk: got %d, want 33", p.SDKVersion)
	}
}

func TestSupportsScreenshot(t *testing.T) {
	var nilProvider *Provider
	if nilProvider.SupportsScreenshot() {
		t.Error("nil provider should not support screenshots")
	}
	p := &Provider{SDKVersion: 29}
	if p.SupportsScreenshot() {
		t.Error("provider without Screen should not support screenshots")
	}
}
