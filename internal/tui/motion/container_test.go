package motion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainerNaturalState(t *testing.T) {
	c := NewContainer()

	assert.Equal(t, 1.0, c.Opacity())
	assert.Equal(t, 1.0, c.HeightFrac())
	assert.False(t, c.Overridden())
	assert.False(t, c.Removed())
}

func TestContainerBeginReveal(t *testing.T) {
	c := NewContainer()
	c.BeginReveal()

	assert.True(t, c.Overridden())
	assert.Equal(t, 0.0, c.Opacity())
	assert.Equal(t, 0.0, c.HeightFrac())
}

func TestContainerFreezeAndClear(t *testing.T) {
	c := NewContainer()
	c.BeginReveal()
	c.SetMotion(PropOpacity, 0.4)

	c.Freeze()
	assert.True(t, c.Overridden())
	assert.Equal(t, 1.0, c.Opacity())
	assert.Equal(t, 1.0, c.HeightFrac())

	c.ClearOverrides()
	assert.False(t, c.Overridden())
	assert.Equal(t, 1.0, c.Opacity())
	assert.Equal(t, 1.0, c.HeightFrac())
}

func TestContainerSetMotionClamps(t *testing.T) {
	c := NewContainer()

	c.SetMotion(PropOpacity, 1.4)
	assert.Equal(t, 1.0, c.Opacity())

	c.SetMotion(PropHeight, -0.2)
	assert.Equal(t, 0.0, c.HeightFrac())
}

func TestContainerRemoveIsSticky(t *testing.T) {
	c := NewContainer()
	c.Remove()
	c.ClearOverrides()

	assert.True(t, c.Removed())
}
