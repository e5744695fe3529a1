// Package clipboard implements the copy-to-clipboard action used by code
// blocks. The action extracts its text lazily on every activation, flips to
// a transient "copied" state, and falls back to idle after a fixed delay.
package clipboard

import (
	"context"
	"os/exec"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/TM9657/flowdoc/utils"
)

// State is the visible phase of a copy action.
type State string

const (
	StateIdle   State = "idle"
	StateCopied State = "copied"

	// DefaultResetDelay is how long the copied confirmation stays visible.
	DefaultResetDelay = 2 * time.Second
)

// Writer abstracts the destination clipboard.
type Writer interface {
	WriteText(ctx context.Context, text string) error
}

// MemoryWriter stores the last written text. Used by tests and the HTTP API.
type MemoryWriter struct {
	mu   sync.Mutex
	last string
	n    int
}

func (w *MemoryWriter) WriteText(_ context.Context, text string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.last = text
	w.n++
	return nil
}

// Last returns the most recently written text and the total write count.
func (w *MemoryWriter) Last() (string, int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.last, w.n
}

// NopWriter discards writes. Useful when no system clipboard is available.
type NopWriter struct{}

func (NopWriter) WriteText(context.Context, string) error { return nil }

// CommandWriter shells out to the platform clipboard utility.
type CommandWriter struct {
	// Command overrides platform detection, e.g. []string{"xclip", "-selection", "clipboard"}.
	Command []string
}

func (w *CommandWriter) WriteText(ctx context.Context, text string) error {
	argv := w.Command
	if len(argv) == 0 {
		switch runtime.GOOS {
		case "darwin":
			argv = []string{"pbcopy"}
		case "windows":
			argv = []string{"clip"}
		default:
			argv = []string{"xclip", "-selection", "clipboard"}
		}
	}
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = strings.NewReader(text)
	if out, err := cmd.CombinedOutput(); err != nil {
		return utils.Errorf("clipboard write via %s failed: %v (%s)", argv[0], err, strings.TrimSpace(string(out)))
	}
	return nil
}

// CopyAction is the state machine behind a copy button. The text producer is
// invoked on every activation so the copied text always reflects the current
// document, never a cached snapshot.
type CopyAction struct {
	mu       sync.Mutex
	state    State
	timer    *time.Timer
	producer func() string
	writer   Writer
	delay    time.Duration
	onChange func(State)
	closed   bool
}

// Option configures a CopyAction.
type Option func(*CopyAction)

// WithResetDelay overrides the copied-to-idle delay.
func WithResetDelay(d time.Duration) Option {
	return func(a *CopyAction) { a.delay = d }
}

// WithStateChange installs a callback fired on every state transition.
func WithStateChange(fn func(State)) Option {
	return func(a *CopyAction) { a.onChange = fn }
}

// NewCopyAction builds an action around a text producer and a clipboard
// writer. A nil writer falls back to NopWriter.
func NewCopyAction(producer func() string, writer Writer, opts ...Option) *CopyAction {
	if writer == nil {
		writer = NopWriter{}
	}
	a := &CopyAction{
		state:    StateIdle,
		producer: producer,
		writer:   writer,
		delay:    DefaultResetDelay,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// State returns the current phase.
func (a *CopyAction) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Activate runs one copy cycle: extract the text, flip to copied, write to
// the clipboard in the background, and arm the reset timer. Activating while
// already copied restarts the timer. The transition is optimistic; a failed
// write is logged but does not roll the state back.
func (a *CopyAction) Activate(ctx context.Context) {
	text := a.producer()

	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.setStateLocked(StateCopied)
	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(a.delay, a.reset)
	a.mu.Unlock()

	go func() {
		if err := a.writer.WriteText(ctx, text); err != nil {
			utils.Warn("clipboard write failed: %v", err)
		}
	}()
}

func (a *CopyAction) reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed || a.state == StateIdle {
		return
	}
	a.setStateLocked(StateIdle)
}

// Close stops the pending reset timer. Further activations are ignored.
// Mirrors component unmount: the confirmation must not fire afterwards.
func (a *CopyAction) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closed = true
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}

func (a *CopyAction) setStateLocked(s State) {
	if a.state == s {
		return
	}
	a.state = s
	if a.onChange != nil {
		a.onChange(s)
	}
}
