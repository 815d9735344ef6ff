package logging_test

import (
	"testing"

	"github.com/katalvlaran/oavi/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_Levels(t *testing.T) {
	for _, json := range []bool{false, true} {
		l, err := logging.New("warn", json)
		require.NoError(t, err)
		assert.False(t, l.Core().Enabled(zap.InfoLevel))
		assert.True(t, l.Core().Enabled(zap.WarnLevel))
	}
}

func TestNew_UnknownLevel(t *testing.T) {
	_, err := logging.New("loud", false)
	assert.ErrorIs(t, err, logging.ErrUnknownLevel)
}
