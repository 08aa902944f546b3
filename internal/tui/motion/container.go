package motion

// Container tracks the inline style overrides applied to one editor region
// while a reveal or dismiss runs. In its natural state (no overrides) the
// region renders at full height and opacity; the thread renderer consumes
// the override values when one is active. Removed containers render nothing.
type Container struct {
	opacity    float64
	heightFrac float64
	overridden bool
	removed    bool
}

// NewContainer returns a container in its natural, unstyled state.
func NewContainer() *Container {
	return &Container{opacity: 1, heightFrac: 1}
}

// SetMotion implements Target for the opacity and height properties.
func (c *Container) SetMotion(p Property, v float64) {
	switch p {
	case PropOpacity:
		c.opacity = clamp01(v)
	case PropHeight:
		c.heightFrac = clamp01(v)
	}
}

// BeginReveal applies the reveal pre-state: hidden and collapsed, with
// overrides active.
func (c *Container) BeginReveal() {
	c.overridden = true
	c.opacity = 0
	c.heightFrac = 0
}

// Freeze pins the container's current rendered extent as explicit values,
// stabilizing the starting point of a collapse.
func (c *Container) Freeze() {
	c.overridden = true
	c.opacity = 1
	c.heightFrac = 1
}

// ClearOverrides returns the container to its natural visible state.
func (c *Container) ClearOverrides() {
	c.overridden = false
	c.opacity = 1
	c.heightFrac = 1
}

// Remove detaches the container; a removed container stays removed.
func (c *Container) Remove() { c.removed = true }

// Opacity returns the effective opacity (1 when natural).
func (c *Container) Opacity() float64 { return c.opacity }

// HeightFrac returns the effective height fraction (1 when natural).
func (c *Container) HeightFrac() float64 { return c.heightFrac }

// Overridden reports whether inline overrides are active.
func (c *Container) Overridden() bool { return c.overridden }

// Removed reports whether the container has been detached.
func (c *Container) Removed() bool { return c.removed }

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
