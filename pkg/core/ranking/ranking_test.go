package ranking

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/nurse-roster/pkg/core/model"
)

func mustPosition(t *testing.T, id int, skills ...int) *model.Position {
	t.Helper()
	p, err := model.NewPosition(id, skills)
	require.NoError(t, err)
	return p
}

func TestRankPositions_Example(t *testing.T) {
	p1 := mustPosition(t, 1, 1, 2)
	p2 := mustPosition(t, 2, 1, 2, 3)
	p3 := mustPosition(t, 3, 4)

	result, err := RankPositions([]*model.Position{p1, p2, p3})
	require.NoError(t, err)

	assert.Equal(t, 0, result.Rank(2))
	assert.Equal(t, 1, result.Rank(1))
	assert.Equal(t, 0, result.Rank(3))
	assert.Equal(t, 2, result.NbRanks)

	assert.Equal(t, []int{1}, result.Node(2).Below)
	assert.Equal(t, []int{2}, result.Node(1).Above)
	assert.Empty(t, result.Node(3).Above)
	assert.Empty(t, result.Node(3).Below)
}

func TestRankPositions_Chain(t *testing.T) {
	positions := []*model.Position{
		mustPosition(t, 0, 0),
		mustPosition(t, 1, 0, 1),
		mustPosition(t, 2, 0, 1, 2),
		mustPosition(t, 3, 0, 1, 2, 3),
	}

	result, err := RankPositions(positions)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Rank(0))
	assert.Equal(t, 2, result.Rank(1))
	assert.Equal(t, 1, result.Rank(2))
	assert.Equal(t, 0, result.Rank(3))
	assert.Equal(t, []int{3, 2, 1, 0}, result.Order)
	assert.ElementsMatch(t, []int{0, 1, 2}, result.Node(3).Below)
	assert.ElementsMatch(t, []int{1, 2, 3}, result.Node(0).Above)
}

func TestRankPositions_EmptySkillsRankZero(t *testing.T) {
	positions := []*model.Position{
		mustPosition(t, 0),
		mustPosition(t, 1, 0, 1),
		mustPosition(t, 2, 1),
	}

	result, err := RankPositions(positions)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Rank(0))
	assert.Empty(t, result.Node(0).Above)
	assert.Empty(t, result.Node(0).Below)
	assert.Equal(t, 1, result.Rank(2))
}

func TestRankPositions_InvalidPopulation(t *testing.T) {
	_, err := RankPositions([]*model.Position{mustPosition(t, 0, 1), mustPosition(t, 0, 2)})
	assert.ErrorIs(t, err, ErrDuplicatePosition)

	_, err = RankPositions([]*model.Position{mustPosition(t, 0, 1), nil})
	assert.ErrorIs(t, err, ErrNilPosition)
}

func TestRankPositions_Empty(t *testing.T) {
	result, err := RankPositions(nil)
	require.NoError(t, err)
	assert.Empty(t, result.Order)
	assert.Equal(t, 0, result.NbRanks)
	assert.Empty(t, result.ByRank())
	assert.Nil(t, result.Node(3))
	assert.Equal(t, -1, result.Rank(3))
}

func TestRankPositions_RarityBreaksTies(t *testing.T) {
	// skill 0 in three positions, skill 1 in one, skill 2 in two
	positions := []*model.Position{
		mustPosition(t, 0, 0),
		mustPosition(t, 1, 0, 2),
		mustPosition(t, 2, 0, 1),
		mustPosition(t, 3, 2),
	}

	result, err := RankPositions(positions)
	require.NoError(t, err)

	assert.InDelta(t, 1.0/3, result.Rarity[0], 1e-9)
	assert.InDelta(t, 1.0, result.Rarity[1], 1e-9)
	assert.InDelta(t, 0.5, result.Rarity[2], 1e-9)

	assert.Equal(t, []float64{1, 1.0 / 3}, result.Node(2).SkillRarity)
	assert.Equal(t, []float64{0.5, 1.0 / 3}, result.Node(1).SkillRarity)

	// ranks: 1 and 2 dominate 0; 1 dominates 3
	assert.Equal(t, [][]int{{2, 1}, {3, 0}}, result.ByRank())
	assert.Equal(t, []int{2, 1, 3, 0}, result.Order)
	assert.True(t, result.Less(2, 1))
	assert.False(t, result.Less(1, 2))
}

func TestRankPositions_IdBreaksEqualRarity(t *testing.T) {
	positions := []*model.Position{
		mustPosition(t, 5, 3),
		mustPosition(t, 2, 4),
	}

	result, err := RankPositions(positions)
	require.NoError(t, err)

	assert.Equal(t, []int{2, 5}, result.Order)
}

func TestRankPositions_DoesNotMutatePositions(t *testing.T) {
	positions := []*model.Position{
		mustPosition(t, 0, 0, 1),
		mustPosition(t, 1, 1),
	}

	_, err := RankPositions(positions)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1}, positions[0].Skills)
	assert.Equal(t, []int{1}, positions[1].Skills)
}

// randomPopulation draws positions over a small skill universe so that dominance is frequent
func randomPopulation(t *testing.T, rng *rand.Rand, size, nbSkills int) []*model.Position {
	positions := make([]*model.Position, size)
	for i := range positions {
		var skills []int
		for sk := 0; sk < nbSkills; sk++ {
			if rng.Intn(2) == 0 {
				skills = append(skills, sk)
			}
		}
		positions[i] = mustPosition(t, i, skills...)
	}
	return positions
}

func TestRankPositions_LayeringProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 50; round++ {
		positions := randomPopulation(t, rng, 1+rng.Intn(25), 6)

		result, err := RankPositions(positions)
		require.NoError(t, err)
		require.Len(t, result.Order, len(positions))

		for _, p := range positions {
			node := result.Node(p.ID)
			require.NotNil(t, node)

			// every position is ranked
			assert.GreaterOrEqual(t, node.Rank, 0)

			// rank is one more than the highest dominating rank
			expected := 0
			for _, aboveID := range node.Above {
				expected = max(expected, result.Rank(aboveID)+1)
			}
			assert.Equal(t, expected, node.Rank, "position %d %v", p.ID, p.Skills)

			// adjacency matches pairwise dominance
			for _, q := range positions {
				switch p.Compare(q) {
				case model.Dominates:
					assert.Contains(t, node.Below, q.ID)
					assert.Contains(t, result.Node(q.ID).Above, p.ID)
				case model.Incomparable:
					assert.NotContains(t, node.Below, q.ID)
					assert.NotContains(t, node.Above, q.ID)
				}
			}
		}

		// order is sorted by rank
		for i := 1; i < len(result.Order); i++ {
			assert.LessOrEqual(t, result.Rank(result.Order[i-1]), result.Rank(result.Order[i]))
		}
	}
}

func TestResult_LessUnknownIDs(t *testing.T) {
	result, err := RankPositions([]*model.Position{
		mustPosition(t, 0, 0, 1),
		mustPosition(t, 1, 1),
	})
	require.NoError(t, err)

	assert.True(t, result.Less(1, 99))
	assert.False(t, result.Less(99, 0))
	assert.True(t, result.Less(98, 99))
	assert.False(t, result.Less(99, 98))
}

func TestNode_Adjacency(t *testing.T) {
	node := &Node{PositionID: 1}
	node.AddBelow(2)
	node.AddBelow(3)
	node.AddAbove(0)

	assert.Equal(t, 2, node.NbBelow())
	assert.Equal(t, 1, node.NbAbove())

	node.ResetBelow()
	node.ResetAbove()
	assert.Equal(t, 0, node.NbBelow())
	assert.Equal(t, 0, node.NbAbove())
}

func TestNode_UpdateRarities(t *testing.T) {
	node := &Node{}
	node.UpdateRarities([]int{0, 1, 2}, Rarity{0: 0.25, 1: 1, 2: 0.5})

	assert.Equal(t, []float64{1, 0.5, 0.25}, node.SkillRarity)

	node.UpdateRarities([]int{7}, Rarity{})
	assert.Equal(t, []float64{0}, node.SkillRarity)
}

func TestCompareRarity(t *testing.T) {
	assert.Negative(t, compareRarity([]float64{1, 0.5}, []float64{0.5, 0.5}))
	assert.Positive(t, compareRarity([]float64{0.5}, []float64{1}))
	assert.Negative(t, compareRarity([]float64{1, 0.5}, []float64{1}))
	assert.Zero(t, compareRarity([]float64{1}, []float64{1}))
}
