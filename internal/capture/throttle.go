// Package capture takes rate-limited screenshots through the host.
package capture

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mj1618/a11y-bridge/internal/logging"
	"github.com/mj1618/a11y-bridge/internal/platform"
	"github.com/rs/zerolog"
)

// MinInterval is the minimum spacing between capture submissions.
const MinInterval = 1100 * time.Millisecond

var (
	// ErrUnsupported is returned when the host cannot capture the screen.
	ErrUnsupported = errors.New("screen capture requires host API level 30 or later")
	// ErrInterrupted is returned when the caller's context ends while a
	// capture is pending.
	ErrInterrupted = errors.New("screen capture interrupted")
	// ErrNoPath is returned when no output path was given.
	ErrNoPath = errors.New("screenshot path is empty")
)

// Throttle serializes screen captures and spaces their submissions at
// least MinInterval apart. The throttle wait, the submission and the wait
// for completion all happen under one lock, so concurrent callers queue.
type Throttle struct {
	screen platform.Screenshotter
	sdk    int
	log    zerolog.Logger

	clock func() time.Time
	sleep func(context.Context, time.Duration) error

	mu   sync.Mutex // guards last and spans the whole capture sequence, up to host completion
	last time.Time
}

// NewThrottle returns a Throttle capturing through screen on a host
// reporting API level sdk.
func NewThrottle(screen platform.Screenshotter, sdk int, log zerolog.Logger) *Throttle {
	return NewThrottleWithClock(screen, sdk, log, time.Now, sleepContext)
}

// NewThrottleWithClock returns a Throttle with an injectable clock and
// sleep, for tests that control time.
func NewThrottleWithClock(screen platform.Screenshotter, sdk int, log zerolog.Logger, clock func() time.Time, sleep func(context.Context, time.Duration) error) *Throttle {
	return &Throttle{
		screen: screen,
		sdk:    sdk,
		log:    logging.For(log, "capture"),
		clock:  clock,
		sleep:  sleep,
	}
}

// Supported reports whether captures can succeed on this host.
func (t *Throttle) Supported() bool {
	return t.screen != nil && t.sdk >= platform.MinScreenshotSDK
}

// Capture takes a screenshot of the default display and writes it to path
// encoded as format. It blocks until the capture completes, the image is
// written, and the host bitmap is released. Context cancellation during the
// throttle wait or the completion wait fails the capture. A capture abandoned
// while the host is still working writes nothing, and the next capture is not
// submitted until the host has completed it.
func (t *Throttle) Capture(ctx context.Context, path, format string) error {
	if !t.Supported() {
		return ErrUnsupported
	}
	f, err := ParseFormat(format)
	if err != nil {
		return err
	}
	if path == "" {
		return ErrNoPath
	}

	t.mu.Lock()

	elapsed := t.clock().Sub(t.last)
	if elapsed >= 0 && elapsed < MinInterval {
		wait := MinInterval - elapsed
		t.log.Debug().Dur("wait", wait).Msg("throttling capture")
		if err := t.sleep(ctx, wait); err != nil {
			t.mu.Unlock()
			return fmt.Errorf("%w: %w", ErrInterrupted, err)
		}
	}
	t.last = t.clock()

	req := &request{path: path, format: f, done: make(chan error, 1)}
	t.screen.TakeScreenshot(0, req.complete)

	select {
	case err := <-req.done:
		t.mu.Unlock()
		return err
	case <-ctx.Done():
	}

	if !req.abandon() {
		// The image is already being written; report that outcome.
		err := <-req.done
		t.mu.Unlock()
		return err
	}
	t.log.Debug().Err(ctx.Err()).Msg("capture abandoned, holding until the host completes")
	go func() {
		<-req.done
		t.mu.Unlock()
	}()
	return fmt.Errorf("%w: %w", ErrInterrupted, ctx.Err())
}

// request is one submitted capture. Exactly one value is sent on done once
// the host completes it.
type request struct {
	path   string
	format Format
	done   chan error

	mu        sync.Mutex
	abandoned bool
	claimed   bool
}

// complete is the host completion callback.
func (r *request) complete(shot platform.Screenshot, err error) {
	if err != nil {
		r.done <- fmt.Errorf("capture failed: %w", err)
		return
	}
	r.mu.Lock()
	if r.abandoned {
		r.mu.Unlock()
		if shot.Release != nil {
			shot.Release()
		}
		r.done <- ErrInterrupted
		return
	}
	r.claimed = true
	r.mu.Unlock()
	r.done <- save(shot, r.path, r.format)
}

// abandon marks the request as no longer wanted. It reports false when the
// completion has already started writing the image.
func (r *request) abandon() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.claimed {
		return false
	}
	r.abandoned = true
	return true
}

// save writes the captured image and always releases the host bitmap.
func save(shot platform.Screenshot, path string, f Format) error {
	if shot.Release != nil {
		defer shot.Release()
	}
	if shot.Image == nil {
		return errors.New("capture returned no image")
	}
	return WriteFile(path, shot.Image, f)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
