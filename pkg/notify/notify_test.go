package notify

import (
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/icarus-vfx/icshared/pkg/config"
	"github.com/icarus-vfx/icshared/pkg/errors"
	"github.com/icarus-vfx/icshared/pkg/platform"
)

type messages struct {
	got []string
}

func (m *messages) Message(msg string) { m.got = append(m.got, msg) }

func TestNew(t *testing.T) {
	s := config.Default(platform.Linux)
	m := &messages{}

	t.Run("enabled gives desktop", func(t *testing.T) {
		n := New(s, m)
		d, ok := n.(*Desktop)
		require.True(t, ok)
		assert.Equal(t, 5*time.Second, d.Timeout)
	})

	t.Run("disabled gives fallback", func(t *testing.T) {
		off := *s
		off.Notifications = false
		n := New(&off, m)
		_, ok := n.(Fallback)
		assert.True(t, ok)
	})
}

func TestFallback(t *testing.T) {
	m := &messages{}
	f := Fallback{Reporter: m}

	require.NoError(t, f.Notify("icshared", "copy finished"))
	require.NoError(t, f.Notify("", "bare"))

	assert.Equal(t, []string{"icshared: copy finished", "bare"}, m.got)
	assert.NoError(t, Fallback{}.Notify("t", "m"))
}

func TestDesktop(t *testing.T) {
	t.Run("delivers", func(t *testing.T) {
		m := &messages{}
		var gotIcon string
		d := &Desktop{
			Icon:     "/icons/ic.png",
			Timeout:  time.Second,
			Fallback: Fallback{Reporter: m},
			send: func(title, message string, icon string) error {
				gotIcon = icon
				return nil
			},
		}

		require.NoError(t, d.Notify("t", "m"))
		assert.Equal(t, "/icons/ic.png", gotIcon)
		assert.Empty(t, m.got)
	})

	t.Run("failure falls back", func(t *testing.T) {
		m := &messages{}
		d := &Desktop{
			Fallback: Fallback{Reporter: m},
			send: func(string, string, string) error {
				return stderrors.New("dbus unavailable")
			},
		}

		err := d.Notify("t", "m")
		assert.True(t, errors.IsErrorCode(err, errors.ErrEnvironment))
		assert.Equal(t, []string{"t: m"}, m.got)
	})

	t.Run("timeout falls back", func(t *testing.T) {
		m := &messages{}
		block := make(chan struct{})
		defer close(block)
		d := &Desktop{
			Timeout:  10 * time.Millisecond,
			Fallback: Fallback{Reporter: m},
			send: func(string, string, string) error {
				<-block
				return nil
			},
		}

		err := d.Notify("t", "slow")
		assert.True(t, errors.IsErrorCode(err, errors.ErrEnvironment))
		assert.Equal(t, []string{"t: slow"}, m.got)
	})

	t.Run("missing backend", func(t *testing.T) {
		m := &messages{}
		d := &Desktop{Fallback: Fallback{Reporter: m}}
		assert.Error(t, d.Notify("t", "m"))
		assert.Len(t, m.got, 1)
	})
}
