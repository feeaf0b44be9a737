package status

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idursun/mandelbrot/internal/state"
	"github.com/idursun/mandelbrot/internal/ui/common"
	"github.com/idursun/mandelbrot/internal/view"
	"github.com/idursun/mandelbrot/test"
)

func newModel(timeout time.Duration) *Model {
	return New(common.NewPalette(nil), timeout)
}

func TestView_ShowsMessageAndState(t *testing.T) {
	m := newModel(0)
	m.SetWidth(60)
	m.SetFrame(state.Running, view.Default)
	assert.Nil(t, m.SetMessage(state.ZoomText(0), true))

	out := test.Plain(m.View())
	assert.Equal(t, 60, len([]rune(out)))
	assert.Contains(t, out, "Zoom level 0")
	assert.Contains(t, out, "running")
	assert.Contains(t, out, "-0.75+0i")
	assert.Contains(t, out, "2^0")
}

func TestView_TruncatesLongMessage(t *testing.T) {
	m := newModel(0)
	m.SetWidth(30)
	m.SetMessage("a very long message that cannot possibly fit on this line", true)

	out := test.Plain(m.View())
	assert.Equal(t, 30, len([]rune(out)))
	assert.Contains(t, out, "…")
	assert.Contains(t, out, "2^0")
}

func TestSetMessage_Hidden(t *testing.T) {
	m := newModel(time.Second)
	m.SetMessage("Paused", true)
	assert.Nil(t, m.SetMessage("", false))
	assert.Empty(t, m.Text())
}

func TestSetMessage_Expires(t *testing.T) {
	m := newModel(time.Millisecond)
	cmd := m.SetMessage("Exported", true)
	require.NotNil(t, cmd)

	first := cmd()
	m.SetMessage("Saved", true)
	m.Update(first)
	assert.Equal(t, "Saved", m.Text(), "stale expiry is ignored")

	m.Update(expireMsg{id: m.id})
	assert.Empty(t, m.Text())
}
