// Package hero computes the typewriter schedule for the landing section.
package hero

import (
	"context"
	"encoding/json"
	"strings"
	"time"
)

// Timings of the boot sequence.
const (
	BootStep     = 30 * time.Millisecond
	Pause        = 300 * time.Millisecond
	IdentityStep = 40 * time.Millisecond
	CursorBlink  = 530 * time.Millisecond

	// RevealAfter is how many characters of the first line must be shown
	// before the second line's area appears.
	RevealAfter = 5

	identityPrefix = "User detected: "
)

// Frame is one visible state of a line. Second-line frames also carry
// the text split into the plain prefix and the highlighted identity.
type Frame struct {
	Line     int           `json:"line"`
	Text     string        `json:"text"`
	Prefix   string        `json:"prefix,omitempty"`
	Identity string        `json:"identity,omitempty"`
	At       time.Duration `json:"-"`
}

// MarshalJSON encodes the offset in milliseconds for browser timers.
func (f Frame) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Line     int    `json:"line"`
		Text     string `json:"text"`
		Prefix   string `json:"prefix,omitempty"`
		Identity string `json:"identity,omitempty"`
		AtMS     int64  `json:"at_ms"`
	}{f.Line, f.Text, f.Prefix, f.Identity, f.At.Milliseconds()})
}

// Frames returns every prefix of text, from empty to complete, each
// offset by step from the previous one. Prefixes are cut on rune
// boundaries.
func Frames(text string, step time.Duration) []Frame {
	runes := []rune(text)
	out := make([]Frame, 0, len(runes)+1)
	for i := 0; i <= len(runes); i++ {
		out = append(out, Frame{Text: string(runes[:i]), At: time.Duration(i) * step})
	}
	return out
}

// Sequence is the full schedule: line 1, a pause, then line 2. Offsets
// are measured from the start of the sequence. Every line-1 frame is held
// for BootStep, so the pause starts one step after the last one. name is
// the part of the identity line that gets highlighted.
func Sequence(boot, identity, name string) []Frame {
	first := Frames(boot, BootStep)
	for i := range first {
		first[i].Line = 1
	}

	start := first[len(first)-1].At + BootStep + Pause
	second := Frames(identity, IdentityStep)
	for i := range second {
		second[i].Line = 2
		second[i].At += start
		second[i].Prefix, second[i].Identity = SplitIdentity(second[i].Text, name)
	}
	return append(first, second...)
}

// Duration is the offset of the last frame.
func Duration(frames []Frame) time.Duration {
	if len(frames) == 0 {
		return 0
	}
	return frames[len(frames)-1].At
}

// ShowIdentity reports whether the second line's area is visible given
// the current first line.
func ShowIdentity(line1 string) bool {
	return len([]rune(line1)) > RevealAfter
}

// SplitIdentity splits a (possibly partial) second line into the plain
// prefix and the highlighted identity. The identity stays empty until the
// first word of name has been typed in full; from then on it is everything
// after "User detected: ".
func SplitIdentity(line, name string) (prefix, identity string) {
	words := strings.Fields(name)
	if len(words) == 0 {
		return line, ""
	}
	i := strings.Index(line, words[0])
	if i < 0 {
		return line, ""
	}
	if _, rest, ok := strings.Cut(line, identityPrefix); ok {
		return line[:i], rest
	}
	return line[:i], line[i:]
}

// Play emits each frame at its scheduled offset and returns early when
// ctx is done or emit fails.
func Play(ctx context.Context, frames []Frame, emit func(Frame) error) error {
	start := time.Now()
	for _, f := range frames {
		if wait := f.At - time.Since(start); wait > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}
		if err := emit(f); err != nil {
			return err
		}
	}
	return nil
}
