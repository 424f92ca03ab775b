package exchange

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	for _, name := range []string{"virtex", "VirtEx", "VIRTEX"} {
		normalizer, err := Get(name)
		require.NoError(t, err, name)
		assert.Equal(t, "VirtEx", normalizer.GetName())
	}

	_, err := Get("luno")
	var unknown *UnknownExchangeError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "luno", unknown.Name)
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"virtex"}, Names())
}
