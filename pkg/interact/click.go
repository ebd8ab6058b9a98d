package interact

import "github.com/matzehuels/semichord/pkg/shape"

// ClickManager tracks which shape, if any, a click has pinned. While a
// shape is pinned, hover interactions leave the highlight alone.
type ClickManager struct {
	pinned   *shape.Shape
	disabled func() bool
	reset    func()
}

// NewClickManager returns an unpinned manager. disabled reports whether
// interactions are turned off; reset clears highlights and is called on
// every accepted click.
func NewClickManager(disabled func() bool, reset func()) *ClickManager {
	return &ClickManager{disabled: disabled, reset: reset}
}

// Click toggles the pin on s. Clicking the pinned shape unpins it and
// resets highlights. Clicking any other shape resets highlights, runs
// invoke and pins s. Clicks do nothing while interactions are disabled.
func (c *ClickManager) Click(s *shape.Shape, invoke func()) {
	if c.disabled() {
		return
	}
	if c.pinned == s {
		c.pinned = nil
		c.reset()
		return
	}
	c.pinned = nil
	c.reset()
	if invoke != nil {
		invoke()
	}
	c.pinned = s
}

// Pinned reports whether a shape is pinned. It always reports true while
// interactions are disabled, which keeps hover highlighting inert.
func (c *ClickManager) Pinned() bool {
	if c.disabled() {
		return true
	}
	return c.pinned != nil
}

// PinnedShape returns the pinned shape, or nil.
func (c *ClickManager) PinnedShape() *shape.Shape { return c.pinned }

// Reset unpins without touching highlights.
func (c *ClickManager) Reset() { c.pinned = nil }
