package ranking

import (
	"slices"
)

// Rarity maps each skill to its rarity score (higher means rarer)
type Rarity map[int]float64

// Node holds the derived ranking data of one position: the positions directly
// compared below and above it, its dominance rank and its skill rarity vector.
// Adjacency is stored as position ids so that a node never references a Position.
type Node struct {
	PositionID int

	// Below lists the positions dominated by this one, Above those dominating it
	Below []int
	Above []int

	// Rank 0 contains the positions dominated by nothing; rank k the positions
	// whose dominating positions all have a rank smaller than k
	Rank int

	// SkillRarity is the rarity of each skill of the position, sorted decreasingly.
	// It carries no record of the skill it comes from: it only orders positions of equal rank.
	SkillRarity []float64
}

func (n *Node) AddBelow(positionID int) {
	n.Below = append(n.Below, positionID)
}

func (n *Node) AddAbove(positionID int) {
	n.Above = append(n.Above, positionID)
}

func (n *Node) ResetBelow() {
	n.Below = nil
}

func (n *Node) ResetAbove() {
	n.Above = nil
}

func (n *Node) NbBelow() int { return len(n.Below) }
func (n *Node) NbAbove() int { return len(n.Above) }

// UpdateRarities projects the population rarity onto the given skills and keeps
// the values sorted decreasingly. Skills missing from the population count as 0.
func (n *Node) UpdateRarities(skills []int, all Rarity) {
	n.SkillRarity = make([]float64, len(skills))
	for i, sk := range skills {
		n.SkillRarity[i] = all[sk]
	}
	slices.SortStableFunc(n.SkillRarity, func(a, b float64) int {
		switch {
		case a > b:
			return -1
		case a < b:
			return 1
		default:
			return 0
		}
	})
}

// compareRarity orders two rarity vectors lexicographically, rarer first.
// When one vector is a prefix of the other, the longer one comes first.
// Returns a negative number when a should come before b.
func compareRarity(a, b []float64) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] > b[i] {
				return -1
			}
			return 1
		}
	}
	return len(b) - len(a)
}
