package model

import (
	"fmt"
	"strings"
)

// Contract holds the regulatory bounds shared by every nurse working under it.
// Values are stored as given; bound consistency is checked by whoever loads the
// problem instance (see the validate tags).
type Contract struct {
	ID   int    `yaml:"id" validate:"min=0"`
	Name string `yaml:"name" validate:"required"`

	// Minimum and maximum total number of shifts over the horizon
	MinTotalShifts int `yaml:"minTotalShifts" validate:"min=0"`
	MaxTotalShifts int `yaml:"maxTotalShifts" validate:"min=0,gtefield=MinTotalShifts"`

	// Minimum and maximum number of consecutive days worked
	MinConsDaysWork int `yaml:"minConsDaysWork" validate:"min=0"`
	MaxConsDaysWork int `yaml:"maxConsDaysWork" validate:"min=0,gtefield=MinConsDaysWork"`

	// Minimum and maximum number of consecutive days off
	MinConsDaysOff int `yaml:"minConsDaysOff" validate:"min=0"`
	MaxConsDaysOff int `yaml:"maxConsDaysOff" validate:"min=0,gtefield=MinConsDaysOff"`

	// Maximum number of weekends worked, and complete weekend constraint
	MaxTotalWeekends     int  `yaml:"maxTotalWeekends" validate:"min=0"`
	NeedCompleteWeekends bool `yaml:"needCompleteWeekends"`
}

// NewContract creates a contract from all of its bounds
func NewContract(id int, name string, minTotalShifts, maxTotalShifts, minConsDaysWork, maxConsDaysWork,
	minConsDaysOff, maxConsDaysOff, maxTotalWeekends int, needCompleteWeekends bool) *Contract {
	return &Contract{
		ID:                   id,
		Name:                 name,
		MinTotalShifts:       minTotalShifts,
		MaxTotalShifts:       maxTotalShifts,
		MinConsDaysWork:      minConsDaysWork,
		MaxConsDaysWork:      maxConsDaysWork,
		MinConsDaysOff:       minConsDaysOff,
		MaxConsDaysOff:       maxConsDaysOff,
		MaxTotalWeekends:     maxTotalWeekends,
		NeedCompleteWeekends: needCompleteWeekends,
	}
}

// String renders the contract name and each bound on its own line
func (c *Contract) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Contract %d: %s\n", c.ID, c.Name)
	fmt.Fprintf(&b, "  total shifts:          [%d, %d]\n", c.MinTotalShifts, c.MaxTotalShifts)
	fmt.Fprintf(&b, "  consecutive days work: [%d, %d]\n", c.MinConsDaysWork, c.MaxConsDaysWork)
	fmt.Fprintf(&b, "  consecutive days off:  [%d, %d]\n", c.MinConsDaysOff, c.MaxConsDaysOff)
	fmt.Fprintf(&b, "  max total weekends:    %d\n", c.MaxTotalWeekends)
	fmt.Fprintf(&b, "  complete weekends:     %t\n", c.NeedCompleteWeekends)
	return b.String()
}
