package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Handler renders records as single-line colored text for terminals.
// Color is decided once per writer; secret-bearing attribute values are
// masked before printing.
type Handler struct {
	opts     slog.HandlerOptions
	out      io.Writer
	mu       *sync.Mutex
	attrs    []slog.Attr
	groups   []string
	useColor bool

	timeColor  *color.Color
	levelColor map[slog.Level]*color.Color
	keyColor   *color.Color
}

// NewHandler builds a text handler writing to out. A nil opts means
// the slog defaults (Info level).
func NewHandler(out io.Writer, opts *slog.HandlerOptions) *Handler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}

	h := &Handler{
		opts:     *opts,
		out:      out,
		mu:       &sync.Mutex{},
		useColor: SupportsColor(out),
	}
	if h.useColor {
		h.timeColor = color.New(color.FgHiBlack)
		h.keyColor = color.New(color.FgCyan)
		h.levelColor = map[slog.Level]*color.Color{
			LevelTrace:      color.New(color.FgHiBlack),
			slog.LevelDebug: color.New(color.FgMagenta),
			slog.LevelInfo:  color.New(color.FgGreen),
			slog.LevelWarn:  color.New(color.FgYellow),
			slog.LevelError: color.New(color.FgRed, color.Bold),
		}
	}
	return h
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

// levelLabel names the record's level, giving the trace band its own
// label instead of slog's "DEBUG-4".
func levelLabel(l slog.Level) string {
	if l < slog.LevelDebug {
		return "TRACE"
	}
	return l.String()
}

// bandFloor maps a level to the nearest named band at or below it, so
// INFO+2 and similar offsets still pick a color.
func bandFloor(l slog.Level) slog.Level {
	switch {
	case l >= slog.LevelError:
		return slog.LevelError
	case l >= slog.LevelWarn:
		return slog.LevelWarn
	case l >= slog.LevelInfo:
		return slog.LevelInfo
	case l >= slog.LevelDebug:
		return slog.LevelDebug
	default:
		return LevelTrace
	}
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !r.Time.IsZero() {
		t := r.Time.Format(time.Kitchen)
		if h.useColor {
			t = h.timeColor.Sprint(t)
		}
		fmt.Fprintf(h.out, "%s ", t)
	}

	label := levelLabel(r.Level)
	if h.useColor {
		if c, ok := h.levelColor[bandFloor(r.Level)]; ok {
			label = c.Sprint(label)
		}
	}
	fmt.Fprintf(h.out, "%-5s %s", label, r.Message)

	for _, a := range h.attrs {
		h.appendAttr(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		h.appendAttr(a)
		return true
	})

	fmt.Fprintln(h.out)
	return nil
}

func (h *Handler) appendAttr(a slog.Attr) {
	key := a.Key
	if h.useColor {
		key = h.keyColor.Sprint(key)
	}

	value := a.Value.Any()
	if shouldMask(a.Key) {
		value = maskValue(fmt.Sprint(value))
	}
	fmt.Fprintf(h.out, " %s=%v", key, value)
}

// maskedKeys are attribute keys whose values are never printed in full.
// Store URLs can embed credentials, so they are masked too.
var maskedKeys = map[string]struct{}{
	"token":     {},
	"password":  {},
	"secret":    {},
	"api_key":   {},
	"store_url": {},
}

func shouldMask(key string) bool {
	_, ok := maskedKeys[strings.ToLower(key)]
	return ok
}

// maskValue keeps the first and last two characters of the value and
// hides everything in between.
func maskValue(v string) string {
	if len(v) <= 4 {
		return "****"
	}
	return v[:2] + strings.Repeat("*", len(v)-4) + v[len(v)-2:]
}

// WithAttrs returns a copy carrying the extra attributes. The slice is
// reallocated so derived handlers never share backing arrays.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newH := *h
	newH.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	newH.attrs = append(newH.attrs, h.attrs...)
	newH.attrs = append(newH.attrs, attrs...)
	return &newH
}

// WithGroup records the group name. Groups are currently flattened
// rather than rendered as key prefixes.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	newH := *h
	newH.groups = append(append([]string(nil), h.groups...), name)
	return &newH
}
