package quadtree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpsideIsInvolution(t *testing.T) {
	for s := N; s <= W; s++ {
		require.Truef(t, OPSIDE[OPSIDE[s]] == s, "OPSIDE[OPSIDE[%v]] = %v, want %v", s, OPSIDE[OPSIDE[s]], s)
	}
}

func TestNeighbourTableMatchesS3(t *testing.T) {
	// S3: SW and SE siblings share side E/W within the same parent.
	require.Equal(t, int(SE), NEIGHBOUR[E][SW])
	require.Equal(t, int(SW), NEIGHBOUR[W][SE])
}

func TestNeighbourTableOutsideParentIsNegative(t *testing.T) {
	// NE has no sibling to its own N or E: both neighbors lie outside the
	// parent (spec S6 starts from exactly this fact).
	require.Equal(t, -1, NEIGHBOUR[N][NE])
	require.Equal(t, -1, NEIGHBOUR[E][NE])
}

func TestOppartMirrorsAcrossSide(t *testing.T) {
	// Mirroring NE across E should land on NW (S6's expected descent step).
	require.Equal(t, int(NW), OPPART[E][NE])

	// Mirroring twice across the same side is an involution.
	for _, side := range []Side{N, E, S, W} {
		for _, part := range []Child{NW, NE, SW, SE} {
			once := OPPART[side][part]
			twice := OPPART[side][once]
			require.Equalf(t, int(part), twice, "OPPART[%v][OPPART[%v][%v]]", side, side, part)
		}
	}
}
