// Package sim implements a simulated accessibility host.
//
// The screen is described by a YAML scene file. Node handles are reference
// counted so callers can verify that every handle they obtain is recycled
// exactly once. Gestures hit-test the scene, and screenshots are rendered
// from it.
package sim
