package model

import (
	"fmt"
	"slices"
	"strings"
)

// Nurse combines an identity, a sorted skill list and a shared contract.
// Every constraint bound is read from the contract; a nurse has no bound of its own.
// Copying a Nurse copies the contract pointer, never the contract.
type Nurse struct {
	ID       int
	Name     string
	Skills   []int
	Contract *Contract
}

// NewNurse creates a nurse. Skills must be sorted ascending without duplicates.
func NewNurse(id int, name string, skills []int, contract *Contract) (*Nurse, error) {
	if contract == nil {
		return nil, fmt.Errorf("nurse %d (%s): %w", id, name, ErrNilContract)
	}
	if err := checkSkills(skills); err != nil {
		return nil, fmt.Errorf("nurse %d (%s): %w", id, name, err)
	}
	return &Nurse{
		ID:       id,
		Name:     name,
		Skills:   slices.Clone(skills),
		Contract: contract,
	}, nil
}

func (n *Nurse) MinTotalShifts() int        { return n.Contract.MinTotalShifts }
func (n *Nurse) MaxTotalShifts() int        { return n.Contract.MaxTotalShifts }
func (n *Nurse) MinConsDaysWork() int       { return n.Contract.MinConsDaysWork }
func (n *Nurse) MaxConsDaysWork() int       { return n.Contract.MaxConsDaysWork }
func (n *Nurse) MinConsDaysOff() int        { return n.Contract.MinConsDaysOff }
func (n *Nurse) MaxConsDaysOff() int        { return n.Contract.MaxConsDaysOff }
func (n *Nurse) MaxTotalWeekends() int      { return n.Contract.MaxTotalWeekends }
func (n *Nurse) NeedCompleteWeekends() bool { return n.Contract.NeedCompleteWeekends }
func (n *Nurse) ContractName() string       { return n.Contract.Name }

// NbSkills returns the number of skills of the nurse
func (n *Nurse) NbSkills() int {
	return len(n.Skills)
}

// HasSkill returns true if the nurse possesses the given skill
func (n *Nurse) HasSkill(skill int) bool {
	_, found := slices.BinarySearch(n.Skills, skill)
	return found
}

// String renders the nurse with its skills and contract name
func (n *Nurse) String() string {
	skills := make([]string, len(n.Skills))
	for i, sk := range n.Skills {
		skills[i] = fmt.Sprint(sk)
	}
	return fmt.Sprintf("Nurse %d: %-12s contract=%s skills=[%s]",
		n.ID, n.Name, n.ContractName(), strings.Join(skills, " "))
}
