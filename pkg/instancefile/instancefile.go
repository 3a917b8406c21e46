package instancefile

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/jakechorley/nurse-roster/pkg/core/model"
	"github.com/jakechorley/nurse-roster/pkg/core/scenario"
)

const dateLayout = "2006-01-02"

// NurseEntry describes a nurse; its id is its position in the list
type NurseEntry struct {
	Name     string   `yaml:"name" validate:"required"`
	Contract string   `yaml:"contract" validate:"required"`
	Skills   []string `yaml:"skills" validate:"required,min=1"`
}

// WishEntry is a wish off for a day, or for a single shift when Shift is set
type WishEntry struct {
	Nurse string `yaml:"nurse" validate:"required"`
	Day   int    `yaml:"day" validate:"min=0"`
	Shift string `yaml:"shift,omitempty"`
}

// RecurringWishEntry is a wish off repeated on every date matched by an RRule
type RecurringWishEntry struct {
	Nurse string `yaml:"nurse" validate:"required"`
	RRule string `yaml:"rrule" validate:"required"`
	Shift string `yaml:"shift,omitempty"`
}

// File is the YAML representation of a problem instance
type File struct {
	Name            string               `yaml:"name" validate:"required"`
	NbWeeks         int                  `yaml:"nbWeeks" validate:"min=1"`
	HorizonStart    string               `yaml:"horizonStart,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Skills          []string             `yaml:"skills" validate:"required,min=1,unique"`
	Shifts          []string             `yaml:"shifts" validate:"required,min=1,unique"`
	Contracts       []model.Contract     `yaml:"contracts" validate:"required,min=1,dive"`
	Nurses          []NurseEntry         `yaml:"nurses" validate:"dive"`
	Positions       [][]string           `yaml:"positions,omitempty"`
	Wishes          []WishEntry          `yaml:"wishes,omitempty" validate:"dive"`
	RecurringWishes []RecurringWishEntry `yaml:"recurringWishes,omitempty" validate:"dive"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load reads, validates and converts an instance file into a scenario
func Load(path string) (*scenario.Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read instance file: %w", err)
	}
	return Parse(data)
}

// Parse converts YAML instance data into a scenario
func Parse(data []byte) (*scenario.Scenario, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse instance file: %w", err)
	}

	input, err := f.ToInput()
	if err != nil {
		return nil, err
	}

	s, err := scenario.New(*input)
	if err != nil {
		return nil, fmt.Errorf("invalid instance %s: %w", f.Name, err)
	}
	return s, nil
}

// Validate validates the instance structure and the syntax of its rrules
func (f *File) Validate() error {
	if err := validate.Struct(f); err != nil {
		return fmt.Errorf("instance validation failed: %w", err)
	}
	for i, wish := range f.RecurringWishes {
		if _, err := rrule.StrToRRule(wish.RRule); err != nil {
			return fmt.Errorf("invalid rrule in recurringWishes[%d]: %w", i, err)
		}
	}
	if len(f.RecurringWishes) > 0 && f.HorizonStart == "" {
		return fmt.Errorf("recurringWishes require horizonStart")
	}
	return nil
}

// ToInput resolves names into indices and expands recurring wishes over the horizon
func (f *File) ToInput() (*scenario.Input, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	input := &scenario.Input{
		Name:      f.Name,
		NbWeeks:   f.NbWeeks,
		Skills:    f.Skills,
		Shifts:    f.Shifts,
		Contracts: f.Contracts,
	}

	if f.HorizonStart != "" {
		start, err := time.Parse(dateLayout, f.HorizonStart)
		if err != nil {
			return nil, fmt.Errorf("invalid horizonStart: %w", err)
		}
		input.HorizonStart = start
	}

	skillIndex := indexOf(f.Skills)
	shiftIndex := indexOf(f.Shifts)
	contractIndex := make(map[string]int, len(f.Contracts))
	for _, c := range f.Contracts {
		if _, exists := contractIndex[c.Name]; exists {
			return nil, fmt.Errorf("duplicate contract name %q", c.Name)
		}
		contractIndex[c.Name] = c.ID
	}

	nurseIndex := make(map[string]int, len(f.Nurses))
	for i, entry := range f.Nurses {
		if _, exists := nurseIndex[entry.Name]; exists {
			return nil, fmt.Errorf("duplicate nurse name %q", entry.Name)
		}
		nurseIndex[entry.Name] = i

		contractID, ok := contractIndex[entry.Contract]
		if !ok {
			return nil, fmt.Errorf("nurse %q refers to unknown contract %q", entry.Name, entry.Contract)
		}
		skills, err := resolveSkills(entry.Skills, skillIndex)
		if err != nil {
			return nil, fmt.Errorf("nurse %q: %w", entry.Name, err)
		}
		input.Nurses = append(input.Nurses, scenario.NurseInput{
			ID:         i,
			Name:       entry.Name,
			Skills:     skills,
			ContractID: contractID,
		})
	}

	for i, names := range f.Positions {
		skills, err := resolveSkills(names, skillIndex)
		if err != nil {
			return nil, fmt.Errorf("positions[%d]: %w", i, err)
		}
		input.Positions = append(input.Positions, skills)
	}

	for i, entry := range f.Wishes {
		wish, err := resolveWish(entry.Nurse, entry.Shift, nurseIndex, shiftIndex)
		if err != nil {
			return nil, fmt.Errorf("wishes[%d]: %w", i, err)
		}
		wish.Day = entry.Day
		input.Wishes = append(input.Wishes, wish)
	}

	nbDays := f.NbWeeks * scenario.DaysPerWeek
	for i, entry := range f.RecurringWishes {
		template, err := resolveWish(entry.Nurse, entry.Shift, nurseIndex, shiftIndex)
		if err != nil {
			return nil, fmt.Errorf("recurringWishes[%d]: %w", i, err)
		}
		days, err := ExpandRRule(entry.RRule, input.HorizonStart, nbDays)
		if err != nil {
			return nil, fmt.Errorf("recurringWishes[%d]: %w", i, err)
		}
		for _, day := range days {
			wish := template
			wish.Day = day
			input.Wishes = append(input.Wishes, wish)
		}
	}

	return input, nil
}

// ExpandRRule returns the horizon days, counted from start, matched by the rule
func ExpandRRule(rule string, start time.Time, nbDays int) ([]int, error) {
	r, err := rrule.StrToRRule(rule)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rrule: %w", err)
	}
	if nbDays <= 0 {
		return nil, nil
	}

	end := start.AddDate(0, 0, nbDays-1)
	r.DTStart(start)

	var days []int
	for _, occurrence := range r.Between(start, end, true) {
		day := int(occurrence.Sub(start).Hours() / 24)
		if day >= 0 && day < nbDays {
			days = append(days, day)
		}
	}
	return days, nil
}

func resolveWish(nurse, shift string, nurseIndex, shiftIndex map[string]int) (scenario.Wish, error) {
	id, ok := nurseIndex[nurse]
	if !ok {
		return scenario.Wish{}, fmt.Errorf("unknown nurse %q", nurse)
	}
	wish := scenario.Wish{Nurse: id}
	if shift != "" {
		s, ok := shiftIndex[shift]
		if !ok {
			return scenario.Wish{}, fmt.Errorf("unknown shift %q", shift)
		}
		wish.Shift = &s
	}
	return wish, nil
}

func resolveSkills(names []string, skillIndex map[string]int) ([]int, error) {
	skills := make([]int, 0, len(names))
	for _, name := range names {
		sk, ok := skillIndex[name]
		if !ok {
			return nil, fmt.Errorf("unknown skill %q", name)
		}
		skills = append(skills, sk)
	}
	return skills, nil
}

func indexOf(names []string) map[string]int {
	index := make(map[string]int, len(names))
	for i, name := range names {
		index[name] = i
	}
	return index
}
