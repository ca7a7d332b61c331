package hero

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestFrames(t *testing.T) {
	frames := Frames("abc", 30*time.Millisecond)
	require.Len(t, frames, 4)

	assert.Equal(t, "", frames[0].Text)
	assert.Equal(t, time.Duration(0), frames[0].At)
	assert.Equal(t, "abc", frames[3].Text)
	assert.Equal(t, 90*time.Millisecond, frames[3].At)
}

func TestFrames_Runes(t *testing.T) {
	frames := Frames("héé", time.Millisecond)
	require.Len(t, frames, 4)
	assert.Equal(t, "hé", frames[2].Text)
}

func TestSequence(t *testing.T) {
	boot := "Initialising system sequence..."
	identity := "User detected: Maulana Hamdani | Fullstack Developer"

	frames := Sequence(boot, identity, "Maulana Hamdani")
	require.Len(t, frames, len(boot)+1+len(identity)+1)

	lastBoot := frames[len(boot)]
	assert.Equal(t, 1, lastBoot.Line)
	assert.Equal(t, boot, lastBoot.Text)
	assert.Equal(t, time.Duration(len(boot))*BootStep, lastBoot.At)

	firstIdentity := frames[len(boot)+1]
	assert.Equal(t, 2, firstIdentity.Line)
	assert.Equal(t, "", firstIdentity.Text)
	assert.Equal(t, lastBoot.At+BootStep+Pause, firstIdentity.At)
	assert.Equal(t, 960*time.Millisecond+300*time.Millisecond, firstIdentity.At)

	want := firstIdentity.At + time.Duration(len(identity))*IdentityStep
	assert.Equal(t, want, Duration(frames))
	last := frames[len(frames)-1]
	assert.Equal(t, identity, last.Text)
	assert.Equal(t, "User detected: ", last.Prefix)
	assert.Equal(t, "Maulana Hamdani | Fullstack Developer", last.Identity)

	partial := frames[len(boot)+1+len("User detected: Maul")]
	assert.Equal(t, "User detected: Maul", partial.Prefix)
	assert.Empty(t, partial.Identity)
}

func TestDuration_Empty(t *testing.T) {
	assert.Equal(t, time.Duration(0), Duration(nil))
}

func TestShowIdentity(t *testing.T) {
	assert.False(t, ShowIdentity(""))
	assert.False(t, ShowIdentity("Initi"))
	assert.True(t, ShowIdentity("Initia"))
}

func TestSplitIdentity(t *testing.T) {
	tests := []struct {
		line, name    string
		prefix, ident string
	}{
		{"User det", "Maulana Hamdani", "User det", ""},
		{"User detected: ", "Maulana Hamdani", "User detected: ", ""},
		{"User detected: Maul", "Maulana Hamdani", "User detected: Maul", ""},
		{"User detected: Maulana", "Maulana Hamdani", "User detected: ", "Maulana"},
		{"User detected: Maulana H", "Maulana Hamdani", "User detected: ", "Maulana H"},
		{"User detected: Ada", "", "User detected: Ada", ""},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			prefix, id := SplitIdentity(tt.line, tt.name)
			assert.Equal(t, tt.prefix, prefix)
			assert.Equal(t, tt.ident, id)
		})
	}
}

func TestPlay(t *testing.T) {
	frames := Frames("hey", time.Millisecond)

	var got []string
	err := Play(context.Background(), frames, func(f Frame) error {
		got = append(got, f.Text)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"", "h", "he", "hey"}, got)
}

func TestPlay_Cancelled(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	frames := Frames("slow", time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	var n int
	err := Play(ctx, frames, func(Frame) error {
		n++
		cancel()
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, n)
}

func TestPlay_EmitError(t *testing.T) {
	boom := errors.New("client gone")
	err := Play(context.Background(), Frames("ab", 0), func(Frame) error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestFrame_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(Frame{Line: 2, Text: "Us", At: 1500 * time.Millisecond})
	require.NoError(t, err)
	assert.JSONEq(t, `{"line":2,"text":"Us","at_ms":1500}`, string(data))

	data, err = json.Marshal(Frame{Line: 2, Text: "x: Ada", Prefix: "x: ", Identity: "Ada", At: time.Second})
	require.NoError(t, err)
	assert.JSONEq(t, `{"line":2,"text":"x: Ada","prefix":"x: ","identity":"Ada","at_ms":1000}`, string(data))
}
