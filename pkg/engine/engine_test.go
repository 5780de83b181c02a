package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phosphor/pkg/config"
)

func TestKeyBindingsReferenceRealSliders(t *testing.T) {
	c, err := NewControls(config.DefaultConfig())
	require.NoError(t, err)

	for _, b := range keyBindings {
		assert.NotNil(t, c.Slider(b.slider), "binding for key %v targets unknown slider %q", b.key, b.slider)
		assert.NotZero(t, b.steps)
	}
}

func TestKeyBindingsCoverEverySliderPair(t *testing.T) {
	// Every slider should be reachable in both directions from the keyboard
	dirs := make(map[string]map[int]bool)
	for _, b := range keyBindings {
		if dirs[b.slider] == nil {
			dirs[b.slider] = make(map[int]bool)
		}
		dirs[b.slider][b.steps] = true
	}

	c, err := NewControls(config.DefaultConfig())
	require.NoError(t, err)
	for _, name := range []string{
		SliderDistortion, SliderZoom, SliderNoise, SliderScanlines,
		SliderVignette, SliderFontSize, SliderLineSpacing,
	} {
		require.NotNil(t, c.Slider(name))
		assert.True(t, dirs[name][+1], "slider %q has no increase key", name)
		assert.True(t, dirs[name][-1], "slider %q has no decrease key", name)
	}
}
