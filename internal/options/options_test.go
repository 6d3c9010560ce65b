package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

type testConfig struct {
	Depth int
	Tag   string
}

func withDepth(d int) Option[*testConfig] {
	return New(func(c *testConfig) error {
		if d <= 0 {
			return errors.New("depth must be positive")
		}
		c.Depth = d

		return nil
	})
}

func withTag(tag string) Option[*testConfig] {
	return NoError(func(c *testConfig) {
		c.Tag = tag
	})
}

func TestApply(t *testing.T) {
	t.Run("applies in order", func(t *testing.T) {
		cfg := &testConfig{}
		err := Apply(cfg, withDepth(3), withTag("a"), withTag("b"), nil)
		require.NoError(t, err)
		require.Equal(t, 3, cfg.Depth)
		require.Equal(t, "b", cfg.Tag)
	})

	t.Run("stops at first error", func(t *testing.T) {
		cfg := &testConfig{}
		err := Apply(cfg, withDepth(-1), withTag("never"))
		require.Error(t, err)
		require.Empty(t, cfg.Tag)
	})
}

func TestApplyAll(t *testing.T) {
	cfg := &testConfig{}
	err := ApplyAll(cfg, withDepth(0), withTag("kept"), withDepth(-2))
	require.Error(t, err)
	require.Len(t, multierr.Errors(err), 2)
	require.Equal(t, "kept", cfg.Tag)

	require.NoError(t, ApplyAll(cfg, withDepth(5)))
	require.Equal(t, 5, cfg.Depth)
}
