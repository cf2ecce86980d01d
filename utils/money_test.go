package utils_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"atelier-backend/utils"
)

func TestRound2(t *testing.T) {
	require.InDelta(t, 10.20, utils.Round2(10.2001), 1e-9)
	require.InDelta(t, 10.21, utils.Round2(10.205), 1e-9)
	require.InDelta(t, -3.33, utils.Round2(-3.3349), 1e-9)
	require.Zero(t, utils.Round2(0))
}

func TestRound2StableOnCents(t *testing.T) {
	require.InDelta(t, 340.68, utils.Round2(340.68), 1e-9)
	require.InDelta(t, 24.48, utils.Round2(24.48), 1e-9)
}
