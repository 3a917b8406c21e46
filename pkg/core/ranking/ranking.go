package ranking

import (
	"errors"
	"fmt"
	"sort"

	"github.com/jakechorley/nurse-roster/pkg/core/model"
)

var (
	// ErrDuplicatePosition indicates two positions sharing the same id
	ErrDuplicatePosition = errors.New("ranking: duplicate position id")

	// ErrNilPosition indicates a nil position in the population
	ErrNilPosition = errors.New("ranking: nil position")

	// ErrDominanceCycle indicates the layering could not rank every position.
	// Dominance is a strict partial order so this only happens on corrupted input.
	ErrDominanceCycle = errors.New("ranking: dominance relation contains a cycle")
)

// Result is the ranking of a whole position population
type Result struct {
	// Nodes in the order of the input positions
	Nodes []*Node

	// Rarity of every skill present in the population
	Rarity Rarity

	// Order lists the position ids by rank, then rarer skills, then id
	Order []int

	// NbRanks is the number of dominance layers
	NbRanks int

	index map[int]int
}

// RankPositions computes the dominance relation between all the positions, ranks
// them by layers of the dominance graph and breaks ties with the rarity of their skills.
// The positions are not modified: calling it again after the population changes
// recomputes every derived value.
func RankPositions(positions []*model.Position) (*Result, error) {
	result := &Result{
		Nodes: make([]*Node, len(positions)),
		index: make(map[int]int, len(positions)),
	}

	for i, p := range positions {
		if p == nil {
			return nil, fmt.Errorf("position at index %d: %w", i, ErrNilPosition)
		}
		if _, exists := result.index[p.ID]; exists {
			return nil, fmt.Errorf("position %d: %w", p.ID, ErrDuplicatePosition)
		}
		result.index[p.ID] = i
		result.Nodes[i] = &Node{PositionID: p.ID, Rank: -1}
	}

	// Step 1: full pairwise dominance
	for i, p := range positions {
		for j := i + 1; j < len(positions); j++ {
			q := positions[j]
			switch p.Compare(q) {
			case model.Dominates:
				result.Nodes[i].AddBelow(q.ID)
				result.Nodes[j].AddAbove(p.ID)
			case model.Dominated:
				result.Nodes[j].AddBelow(p.ID)
				result.Nodes[i].AddAbove(q.ID)
			}
		}
	}

	// Step 2: layered ranks
	if err := result.assignRanks(); err != nil {
		return nil, err
	}

	// Step 3: population rarity, injected in every node
	result.Rarity = ComputeRarity(positions)
	for i, p := range positions {
		result.Nodes[i].UpdateRarities(p.Skills, result.Rarity)
	}

	// Step 4: tie-broken order
	result.Order = make([]int, len(positions))
	for i, p := range positions {
		result.Order[i] = p.ID
	}
	sort.SliceStable(result.Order, func(i, j int) bool {
		return result.Less(result.Order[i], result.Order[j])
	})

	return result, nil
}

// assignRanks layers the dominance graph: a node joins layer k once every node
// above it has been ranked in an earlier layer
func (r *Result) assignRanks() error {
	remaining := make([]int, len(r.Nodes))
	for i, node := range r.Nodes {
		remaining[i] = len(node.Above)
	}

	var layer []int
	for i, count := range remaining {
		if count == 0 {
			layer = append(layer, i)
		}
	}

	ranked := 0
	for rank := 0; len(layer) > 0; rank++ {
		var next []int
		for _, i := range layer {
			r.Nodes[i].Rank = rank
			ranked++
		}
		for _, i := range layer {
			for _, belowID := range r.Nodes[i].Below {
				j := r.index[belowID]
				remaining[j]--
				if remaining[j] == 0 {
					next = append(next, j)
				}
			}
		}
		r.NbRanks = rank + 1
		layer = next
	}

	if ranked != len(r.Nodes) {
		return fmt.Errorf("%d of %d positions ranked: %w", ranked, len(r.Nodes), ErrDominanceCycle)
	}
	return nil
}

// Node returns the ranking node of a position, or nil if the id is unknown
func (r *Result) Node(positionID int) *Node {
	i, ok := r.index[positionID]
	if !ok {
		return nil
	}
	return r.Nodes[i]
}

// Rank returns the rank of a position, or -1 if the id is unknown
func (r *Result) Rank(positionID int) int {
	node := r.Node(positionID)
	if node == nil {
		return -1
	}
	return node.Rank
}

// Less reports whether position a should be considered before position b:
// smaller rank first, then rarer skills, then smaller id. Ids unknown to the
// result come after every ranked position, ordered by id.
func (r *Result) Less(a, b int) bool {
	na, nb := r.Node(a), r.Node(b)
	switch {
	case na == nil && nb == nil:
		return a < b
	case na == nil:
		return false
	case nb == nil:
		return true
	}
	if na.Rank != nb.Rank {
		return na.Rank < nb.Rank
	}
	if c := compareRarity(na.SkillRarity, nb.SkillRarity); c != 0 {
		return c < 0
	}
	return a < b
}

// ByRank groups the position ids of Order by rank
func (r *Result) ByRank() [][]int {
	layers := make([][]int, r.NbRanks)
	for _, id := range r.Order {
		rank := r.Node(id).Rank
		layers[rank] = append(layers[rank], id)
	}
	return layers
}

// ComputeRarity returns, for each skill present in the positions, the inverse of
// the number of positions requiring it
func ComputeRarity(positions []*model.Position) Rarity {
	counts := make(map[int]int)
	for _, p := range positions {
		for _, sk := range p.Skills {
			counts[sk]++
		}
	}

	rarity := make(Rarity, len(counts))
	for sk, count := range counts {
		rarity[sk] = 1 / float64(count)
	}
	return rarity
}
