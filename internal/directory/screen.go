package directory

import (
	"context"
	"strings"

	"github.com/agnivade/levenshtein"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Phase is the screen's top-level lifecycle stage.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseReady
	// PhaseError is only entered under ErrorPolicySurface.
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

// ErrorPolicy decides what a failed fetch looks like to the user.
type ErrorPolicy int

const (
	// ErrorPolicyEmpty logs the failure and shows an empty list.
	ErrorPolicyEmpty ErrorPolicy = iota
	// ErrorPolicySurface logs the failure and moves to PhaseError.
	ErrorPolicySurface
)

// Source fetches the collection shown by a screen.
type Source[T any] interface {
	Fetch(ctx context.Context) ([]T, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc[T any] func(ctx context.Context) ([]T, error)

func (f SourceFunc[T]) Fetch(ctx context.Context) ([]T, error) { return f(ctx) }

// LoadedMsg carries a fetch result back into the update loop.
type LoadedMsg[T any] struct {
	Screen string
	Mount  string
	Items  []T
	Err    error
}

// Options configure a Screen.
type Options[T any] struct {
	Policy ErrorPolicy
	// Label names an item for Jump. Without it Jump is a no-op.
	Label  func(T) string
	Logger *zap.Logger
}

// Screen is the view model of one directory tab.
type Screen[T any] struct {
	name   string
	source Source[T]
	label  func(T) string
	policy ErrorPolicy
	logger *zap.Logger

	phase    Phase
	items    []T
	selected int // -1 when nothing is selected
	cursor   int
	err      error

	mount  string
	cancel context.CancelFunc
}

func NewScreen[T any](name string, source Source[T], opts Options[T]) *Screen[T] {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Screen[T]{
		name:     name,
		source:   source,
		label:    opts.Label,
		policy:   opts.Policy,
		logger:   logger,
		phase:    PhaseLoading,
		selected: -1,
	}
}

func (s *Screen[T]) Name() string    { return s.name }
func (s *Screen[T]) Phase() Phase    { return s.phase }
func (s *Screen[T]) Err() error      { return s.err }
func (s *Screen[T]) Cursor() int     { return s.cursor }
func (s *Screen[T]) Mounted() bool   { return s.mount != "" }
func (s *Screen[T]) MountID() string { return s.mount }

// Items returns the fetched records in server order. Callers must not modify it.
func (s *Screen[T]) Items() []T { return s.items }

// Selected returns the record shown in the detail view.
func (s *Screen[T]) Selected() (T, bool) {
	if s.selected < 0 || s.selected >= len(s.items) {
		var zero T
		return zero, false
	}
	return s.items[s.selected], true
}

// Mount starts the one fetch of this mount. It returns nil when already mounted.
func (s *Screen[T]) Mount(parent context.Context) tea.Cmd {
	if s.Mounted() {
		return nil
	}
	ctx, cancel := context.WithCancel(parent)
	s.mount = uuid.NewString()
	s.cancel = cancel
	s.reset()

	name, mount, source, logger := s.name, s.mount, s.source, s.logger
	logger.Debug("mount", zap.String("screen", name), zap.String("mount", mount))
	return func() tea.Msg {
		items, err := source.Fetch(ctx)
		return LoadedMsg[T]{Screen: name, Mount: mount, Items: items, Err: err}
	}
}

// Unmount cancels an in-flight fetch and forgets all view state. A result that
// arrives afterwards is dropped by Apply.
func (s *Screen[T]) Unmount() {
	if s.cancel != nil {
		s.cancel()
	}
	s.cancel = nil
	s.mount = ""
	s.reset()
}

// Remount is Unmount followed by Mount.
func (s *Screen[T]) Remount(parent context.Context) tea.Cmd {
	s.Unmount()
	return s.Mount(parent)
}

// Apply stores a fetch result. It reports false when msg belongs to another
// screen or to a previous mount, or when this mount already resolved.
func (s *Screen[T]) Apply(msg LoadedMsg[T]) bool {
	if msg.Screen != s.name || msg.Mount == "" || msg.Mount != s.mount || s.phase != PhaseLoading {
		return false
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if msg.Err != nil {
		s.logger.Warn("fetch failed",
			zap.String("screen", s.name),
			zap.String("mount", s.mount),
			zap.Error(msg.Err),
		)
		s.items = nil
		s.err = msg.Err
		s.phase = PhaseReady
		if s.policy == ErrorPolicySurface {
			s.phase = PhaseError
		}
		return true
	}
	s.items = msg.Items
	s.err = nil
	s.phase = PhaseReady
	return true
}

// Select opens the detail view for items[index].
func (s *Screen[T]) Select(index int) bool {
	if s.phase != PhaseReady || index < 0 || index >= len(s.items) {
		return false
	}
	s.selected = index
	s.cursor = index
	return true
}

// SelectCursor selects the row under the cursor.
func (s *Screen[T]) SelectCursor() bool {
	return s.Select(s.cursor)
}

// Back returns to the list view. It is a no-op without a selection.
func (s *Screen[T]) Back() {
	s.selected = -1
}

// MoveCursor shifts the list cursor by delta, clamped to the items.
func (s *Screen[T]) MoveCursor(delta int) {
	if len(s.items) == 0 {
		s.cursor = 0
		return
	}
	s.cursor = min(max(s.cursor+delta, 0), len(s.items)-1)
}

// Jump moves the cursor to the item whose label is closest to query by edit
// distance, measured against the whole label and against its leading runes.
// Ties go to the earlier row. Leading spaces are ignored; a trailing space
// counts so "ana " prefers "Ana Vega" over "Anab". It reports whether the
// cursor moved.
func (s *Screen[T]) Jump(query string) bool {
	q := strings.ToLower(strings.TrimLeft(query, " "))
	if q == "" || s.label == nil || len(s.items) == 0 {
		return false
	}
	best, bestDist := 0, -1
	for i, it := range s.items {
		d := labelDistance(q, strings.ToLower(s.label(it)))
		if bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	moved := best != s.cursor
	s.cursor = best
	return moved
}

func labelDistance(query, label string) int {
	d := levenshtein.ComputeDistance(query, label)
	if r := []rune(label); len(r) > len([]rune(query)) {
		d = min(d, levenshtein.ComputeDistance(query, string(r[:len([]rune(query))])))
	}
	return d
}

func (s *Screen[T]) reset() {
	s.phase = PhaseLoading
	s.items = nil
	s.selected = -1
	s.cursor = 0
	s.err = nil
}
