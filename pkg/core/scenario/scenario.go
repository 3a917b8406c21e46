package scenario

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jakechorley/nurse-roster/pkg/core/model"
	"github.com/jakechorley/nurse-roster/pkg/core/ranking"
)

// DaysPerWeek is the number of days in a scheduling week
const DaysPerWeek = 7

var validate = validator.New()

// NurseInput describes a nurse before it is bound to its contract
type NurseInput struct {
	ID         int
	Name       string
	Skills     []int
	ContractID int
}

// Wish is a shift (or whole day when Shift is nil) a nurse wishes to have off
type Wish struct {
	Nurse int
	Day   int
	Shift *int
}

// Input contains the raw data needed to build a scenario
type Input struct {
	Name    string
	NbWeeks int

	// NbDays overrides NbWeeks when positive, for horizons cut mid-week
	NbDays int

	HorizonStart time.Time
	Skills       []string
	Shifts       []string
	Contracts    []model.Contract
	Nurses       []NurseInput

	// Positions are the skill sets of the jobs to fill.
	// When empty, one position is created per distinct nurse skill set.
	Positions [][]int

	Wishes []Wish
}

// Scenario owns every entity of one problem instance. Nurses point to contracts
// owned here and positions are addressed by id; nothing outlives the scenario.
type Scenario struct {
	Name         string
	NbDays       int
	HorizonStart time.Time
	Skills       []string
	Shifts       []string
	Contracts    []*model.Contract
	Nurses       []model.Nurse
	Positions    []*model.Position
	Preferences  *model.Preferences

	contractIndex map[int]*model.Contract
}

// New builds a scenario from raw input.
//
// Returns an error if:
//   - a contract has inconsistent bounds or a duplicate id
//   - a nurse id is not its index, or refers to an unknown contract or skill
//   - a position or wish refers to an unknown skill, nurse, day or shift
func New(input Input) (*Scenario, error) {
	if input.NbWeeks < 0 {
		return nil, fmt.Errorf("number of weeks must not be negative, got %d", input.NbWeeks)
	}

	nbDays := input.NbWeeks * DaysPerWeek
	if input.NbDays > 0 {
		nbDays = input.NbDays
	}

	s := &Scenario{
		Name:          input.Name,
		NbDays:        nbDays,
		HorizonStart:  input.HorizonStart,
		Skills:        slices.Clone(input.Skills),
		Shifts:        slices.Clone(input.Shifts),
		contractIndex: make(map[int]*model.Contract),
	}

	// Step 1: contracts
	for i := range input.Contracts {
		c := input.Contracts[i]
		if err := validate.Struct(c); err != nil {
			return nil, fmt.Errorf("contract %d (%s) validation failed: %w", c.ID, c.Name, err)
		}
		if _, exists := s.contractIndex[c.ID]; exists {
			return nil, fmt.Errorf("duplicate contract id %d", c.ID)
		}
		contract := model.NewContract(c.ID, c.Name, c.MinTotalShifts, c.MaxTotalShifts,
			c.MinConsDaysWork, c.MaxConsDaysWork, c.MinConsDaysOff, c.MaxConsDaysOff,
			c.MaxTotalWeekends, c.NeedCompleteWeekends)
		s.Contracts = append(s.Contracts, contract)
		s.contractIndex[c.ID] = contract
	}

	// Step 2: nurses
	s.Nurses = make([]model.Nurse, 0, len(input.Nurses))
	for i, in := range input.Nurses {
		if in.ID != i {
			return nil, fmt.Errorf("nurse %s has id %d, expected %d", in.Name, in.ID, i)
		}
		contract, ok := s.contractIndex[in.ContractID]
		if !ok {
			return nil, fmt.Errorf("nurse %d (%s) refers to unknown contract %d", in.ID, in.Name, in.ContractID)
		}
		skills, err := s.normalizeSkills(in.Skills)
		if err != nil {
			return nil, fmt.Errorf("nurse %d (%s): %w", in.ID, in.Name, err)
		}
		nurse, err := model.NewNurse(in.ID, in.Name, skills, contract)
		if err != nil {
			return nil, err
		}
		s.Nurses = append(s.Nurses, *nurse)
	}

	// Step 3: positions
	skillSets := input.Positions
	if len(skillSets) == 0 {
		skillSets = distinctSkillSets(s.Nurses)
	}
	for id, raw := range skillSets {
		skills, err := s.normalizeSkills(raw)
		if err != nil {
			return nil, fmt.Errorf("position %d: %w", id, err)
		}
		position, err := model.NewPosition(id, skills)
		if err != nil {
			return nil, err
		}
		s.Positions = append(s.Positions, position)
	}

	// Step 4: preferences
	prefs, err := model.NewPreferencesForNurses(s.Nurses, s.NbDays, len(s.Shifts))
	if err != nil {
		return nil, fmt.Errorf("failed to create preferences: %w", err)
	}
	for _, wish := range input.Wishes {
		if wish.Shift == nil {
			err = prefs.AddDayOff(wish.Nurse, wish.Day)
		} else {
			err = prefs.AddShiftOff(wish.Nurse, wish.Day, *wish.Shift)
		}
		if err != nil {
			return nil, fmt.Errorf("invalid wish off: %w", err)
		}
	}
	s.Preferences = prefs

	return s, nil
}

// normalizeSkills sorts and deduplicates raw skills and checks they are known
func (s *Scenario) normalizeSkills(raw []int) ([]int, error) {
	skills := slices.Clone(raw)
	slices.Sort(skills)
	skills = slices.Compact(skills)
	for _, sk := range skills {
		if sk < 0 || sk >= len(s.Skills) {
			return nil, fmt.Errorf("skill %d not in [0,%d): %w", sk, len(s.Skills), model.ErrInvalidSkill)
		}
	}
	return skills, nil
}

// distinctSkillSets returns the skill sets of the nurses in first-seen order
func distinctSkillSets(nurses []model.Nurse) [][]int {
	seen := make(map[string]bool)
	var sets [][]int
	for _, n := range nurses {
		key := fmt.Sprint(n.Skills)
		if seen[key] {
			continue
		}
		seen[key] = true
		sets = append(sets, n.Skills)
	}
	return sets
}

// NbWeeks returns the number of complete weeks in the horizon
func (s *Scenario) NbWeeks() int {
	return s.NbDays / DaysPerWeek
}

// ContractByID returns the contract with the given id, or nil
func (s *Scenario) ContractByID(id int) *model.Contract {
	return s.contractIndex[id]
}

// NurseByID returns the nurse with the given id, or nil
func (s *Scenario) NurseByID(id int) *model.Nurse {
	if id < 0 || id >= len(s.Nurses) {
		return nil
	}
	return &s.Nurses[id]
}

// PositionOf returns the id of the position whose skills equal the nurse's skills, or -1
func (s *Scenario) PositionOf(nurseID int) int {
	nurse := s.NurseByID(nurseID)
	if nurse == nil {
		return -1
	}
	for _, p := range s.Positions {
		if slices.Equal(p.Skills, nurse.Skills) {
			return p.ID
		}
	}
	return -1
}

// NursesByPosition maps each position id to the nurses holding exactly its skills
func (s *Scenario) NursesByPosition() map[int][]int {
	result := make(map[int][]int, len(s.Positions))
	for _, p := range s.Positions {
		result[p.ID] = []int{}
	}
	for _, n := range s.Nurses {
		if id := s.PositionOf(n.ID); id >= 0 {
			result[id] = append(result[id], n.ID)
		}
	}
	return result
}

// Rank runs the dominance ranking over every position of the scenario
func (s *Scenario) Rank() (*ranking.Result, error) {
	return ranking.RankPositions(s.Positions)
}

// Slice returns a scenario sharing every entity with s except the preferences,
// which are restricted to the days in [begin, end)
func (s *Scenario) Slice(begin, end int) (*Scenario, error) {
	prefs, err := s.Preferences.Keep(begin, end)
	if err != nil {
		return nil, err
	}
	sliced := *s
	sliced.NbDays = end - begin
	if !s.HorizonStart.IsZero() {
		sliced.HorizonStart = s.HorizonStart.AddDate(0, 0, begin)
	}
	sliced.Preferences = prefs
	return &sliced, nil
}

// Append extends the horizon of s with the days of next. Both scenarios must
// describe the same nurses and shifts, and when both horizon starts are known
// next must start the day after s ends.
func (s *Scenario) Append(next *Scenario) error {
	if len(next.Nurses) != len(s.Nurses) {
		return fmt.Errorf("cannot append a scenario with %d nurses to one with %d nurses",
			len(next.Nurses), len(s.Nurses))
	}
	if !slices.Equal(next.Shifts, s.Shifts) {
		return fmt.Errorf("cannot append a scenario with shifts %v to one with shifts %v",
			next.Shifts, s.Shifts)
	}
	if !s.HorizonStart.IsZero() && !next.HorizonStart.IsZero() {
		expected := s.HorizonStart.AddDate(0, 0, s.NbDays)
		if !next.HorizonStart.Equal(expected) {
			return fmt.Errorf("cannot append a horizon starting %s to one ending before %s",
				next.HorizonStart.Format("2006-01-02"), expected.Format("2006-01-02"))
		}
	}
	if err := s.Preferences.PushBack(next.Preferences); err != nil {
		return fmt.Errorf("failed to append preferences: %w", err)
	}
	s.NbDays += next.NbDays
	return nil
}

// String renders the scenario entities
func (s *Scenario) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Scenario %s: %d days, %d skills, %d shifts\n", s.Name, s.NbDays, len(s.Skills), len(s.Shifts))
	if !s.HorizonStart.IsZero() {
		fmt.Fprintf(&b, "Horizon start: %s\n", s.HorizonStart.Format("2006-01-02 (Monday)"))
	}
	b.WriteString("\n")
	for _, c := range s.Contracts {
		b.WriteString(c.String())
	}
	b.WriteString("\n")
	for _, p := range s.Positions {
		b.WriteString(p.String() + "\n")
	}
	b.WriteString("\n")
	for i := range s.Nurses {
		b.WriteString(s.Nurses[i].String() + "\n")
	}
	b.WriteString("\n")
	b.WriteString(s.Preferences.String())
	return b.String()
}

// ToInput converts the scenario back into raw input, with every wish off
// expressed as a single shift
func (s *Scenario) ToInput() Input {
	input := Input{
		Name:         s.Name,
		NbDays:       s.NbDays,
		HorizonStart: s.HorizonStart,
		Skills:       slices.Clone(s.Skills),
		Shifts:       slices.Clone(s.Shifts),
	}
	for _, c := range s.Contracts {
		input.Contracts = append(input.Contracts, *c)
	}
	for _, n := range s.Nurses {
		input.Nurses = append(input.Nurses, NurseInput{
			ID:         n.ID,
			Name:       n.Name,
			Skills:     slices.Clone(n.Skills),
			ContractID: n.Contract.ID,
		})
	}
	for _, p := range s.Positions {
		input.Positions = append(input.Positions, slices.Clone(p.Skills))
	}
	for _, n := range s.Nurses {
		wishes := s.Preferences.NurseWishesOff(n.ID)
		days := make([]int, 0, len(wishes))
		for day := range wishes {
			days = append(days, day)
		}
		slices.Sort(days)
		for _, day := range days {
			for _, shift := range wishes[day] {
				input.Wishes = append(input.Wishes, Wish{Nurse: n.ID, Day: day, Shift: &shift})
			}
		}
	}
	return input
}
