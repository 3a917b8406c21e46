package model

import "errors"

// Sentinel errors for contract violations when building the model
var (
	// ErrUnsortedSkills indicates a skill list that is not strictly ascending
	ErrUnsortedSkills = errors.New("model: skills must be sorted ascending without duplicates")

	// ErrInvalidSkill indicates a negative skill identifier
	ErrInvalidSkill = errors.New("model: invalid skill identifier")

	// ErrNilContract indicates a nurse built without a contract
	ErrNilContract = errors.New("model: nurse requires a contract")

	// ErrOutOfRange indicates a nurse, day or shift index outside the preferences dimensions
	ErrOutOfRange = errors.New("model: index out of range")
)

// checkSkills verifies that skills are non-negative and strictly ascending
func checkSkills(skills []int) error {
	for i, sk := range skills {
		if sk < 0 {
			return ErrInvalidSkill
		}
		if i > 0 && skills[i-1] >= sk {
			return ErrUnsortedSkills
		}
	}
	return nil
}
