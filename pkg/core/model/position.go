package model

import (
	"fmt"
	"slices"
)

// Dominance is the outcome of comparing the skill sets of two positions
type Dominance int

const (
	Incomparable Dominance = iota
	Dominates
	Dominated
)

func (d Dominance) String() string {
	switch d {
	case Dominates:
		return "dominates"
	case Dominated:
		return "dominated"
	default:
		return "incomparable"
	}
}

// Position is a job defined by a set of skills that a nurse may possess.
// Skills are kept sorted so that dominance reduces to a merge-style subset test.
type Position struct {
	ID     int
	Skills []int
}

// NewPosition creates a position from an ascending, duplicate-free skill list.
// The list is copied; an unsorted list is rejected with ErrUnsortedSkills.
func NewPosition(id int, skills []int) (*Position, error) {
	if err := checkSkills(skills); err != nil {
		return nil, fmt.Errorf("position %d: %w", id, err)
	}
	return &Position{
		ID:     id,
		Skills: slices.Clone(skills),
	}, nil
}

// NbSkills returns the number of skills of the position
func (p *Position) NbSkills() int {
	return len(p.Skills)
}

// Skill returns the i-th skill in ascending order
func (p *Position) Skill(i int) int {
	return p.Skills[i]
}

// Compare returns Dominates if the skills of p strictly contain those of other,
// Dominated in the symmetric case and Incomparable otherwise.
// A position without skills is incomparable to every position.
func (p *Position) Compare(other *Position) Dominance {
	n, m := len(p.Skills), len(other.Skills)
	if n == m || n == 0 || m == 0 {
		return Incomparable
	}
	if n > m {
		if containsAll(p.Skills, other.Skills) {
			return Dominates
		}
		return Incomparable
	}
	if containsAll(other.Skills, p.Skills) {
		return Dominated
	}
	return Incomparable
}

// ShareSkill returns true if the position shares at least one skill with other
func (p *Position) ShareSkill(other *Position) bool {
	i, j := 0, 0
	for i < len(p.Skills) && j < len(other.Skills) {
		switch {
		case p.Skills[i] == other.Skills[j]:
			return true
		case p.Skills[i] < other.Skills[j]:
			i++
		default:
			j++
		}
	}
	return false
}

// String renders the position id and skills
func (p *Position) String() string {
	return fmt.Sprintf("Position %d: %d skill(s) %v", p.ID, len(p.Skills), p.Skills)
}

// containsAll reports whether every element of sub is in super, both sorted ascending
func containsAll(super, sub []int) bool {
	i := 0
	for _, sk := range sub {
		for i < len(super) && super[i] < sk {
			i++
		}
		if i == len(super) || super[i] != sk {
			return false
		}
		i++
	}
	return true
}
