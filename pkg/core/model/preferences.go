package model

import (
	"fmt"
	"slices"
	"strings"
)

// Preferences describes the shifts each nurse wishes to have off over a horizon.
// For each nurse, days map to the set of shifts wished off on that day.
type Preferences struct {
	nbNurses int
	nbDays   int
	nbShifts int

	wishesOff map[int]map[int]map[int]bool
}

// NewPreferences creates empty preferences with fixed dimensions
func NewPreferences(nbNurses, nbDays, nbShifts int) (*Preferences, error) {
	if nbNurses < 0 || nbDays < 0 || nbShifts < 0 {
		return nil, fmt.Errorf("negative preferences dimensions (%d nurses, %d days, %d shifts): %w",
			nbNurses, nbDays, nbShifts, ErrOutOfRange)
	}
	return &Preferences{
		nbNurses:  nbNurses,
		nbDays:    nbDays,
		nbShifts:  nbShifts,
		wishesOff: make(map[int]map[int]map[int]bool),
	}, nil
}

// NewPreferencesForNurses creates preferences for the given nurses with no wish off.
// Nurse ids are expected to be their index in the slice.
func NewPreferencesForNurses(nurses []Nurse, nbDays, nbShifts int) (*Preferences, error) {
	p, err := NewPreferences(len(nurses), nbDays, nbShifts)
	if err != nil {
		return nil, err
	}
	for _, n := range nurses {
		if n.ID < 0 || n.ID >= len(nurses) {
			return nil, fmt.Errorf("nurse id %d not in [0,%d): %w", n.ID, len(nurses), ErrOutOfRange)
		}
		p.wishesOff[n.ID] = make(map[int]map[int]bool)
	}
	return p, nil
}

func (p *Preferences) NbNurses() int { return p.nbNurses }
func (p *Preferences) NbDays() int   { return p.nbDays }
func (p *Preferences) NbShifts() int { return p.nbShifts }

func (p *Preferences) checkNurseDay(nurse, day int) error {
	if nurse < 0 || nurse >= p.nbNurses {
		return fmt.Errorf("nurse %d not in [0,%d): %w", nurse, p.nbNurses, ErrOutOfRange)
	}
	if day < 0 || day >= p.nbDays {
		return fmt.Errorf("day %d not in [0,%d): %w", day, p.nbDays, ErrOutOfRange)
	}
	return nil
}

// dayShifts returns the shift set of a nurse on a day, creating it on demand
func (p *Preferences) dayShifts(nurse, day int) map[int]bool {
	days, ok := p.wishesOff[nurse]
	if !ok {
		days = make(map[int]map[int]bool)
		p.wishesOff[nurse] = days
	}
	shifts, ok := days[day]
	if !ok {
		shifts = make(map[int]bool)
		days[day] = shifts
	}
	return shifts
}

// AddShiftOff adds the shift of the given day to the nurse's wishes off
func (p *Preferences) AddShiftOff(nurse, day, shift int) error {
	if err := p.checkNurseDay(nurse, day); err != nil {
		return err
	}
	if shift < 0 || shift >= p.nbShifts {
		return fmt.Errorf("shift %d not in [0,%d): %w", shift, p.nbShifts, ErrOutOfRange)
	}
	p.dayShifts(nurse, day)[shift] = true
	return nil
}

// AddDayOff adds every shift of the given day to the nurse's wishes off
func (p *Preferences) AddDayOff(nurse, day int) error {
	if err := p.checkNurseDay(nurse, day); err != nil {
		return err
	}
	shifts := p.dayShifts(nurse, day)
	for s := 0; s < p.nbShifts; s++ {
		shifts[s] = true
	}
	return nil
}

// WantsTheShiftOff returns true if the nurse wishes the shift off on that day
func (p *Preferences) WantsTheShiftOff(nurse, day, shift int) bool {
	return p.wishesOff[nurse][day][shift]
}

// WantsTheDayOff returns true if the nurse wishes every shift of the day off
func (p *Preferences) WantsTheDayOff(nurse, day int) bool {
	if p.nbShifts == 0 {
		return false
	}
	shifts := p.wishesOff[nurse][day]
	for s := 0; s < p.nbShifts; s++ {
		if !shifts[s] {
			return false
		}
	}
	return true
}

// HowManyShiftsOff returns the total number of shifts the nurse wishes off
func (p *Preferences) HowManyShiftsOff(nurse int) int {
	total := 0
	for _, shifts := range p.wishesOff[nurse] {
		total += len(shifts)
	}
	return total
}

// HowManyDaysOff returns the number of whole days off wished by the nurse in [dayMin, dayMax)
func (p *Preferences) HowManyDaysOff(nurse, dayMin, dayMax int) int {
	count := 0
	for day := range p.wishesOff[nurse] {
		if day >= dayMin && day < dayMax && p.WantsTheDayOff(nurse, day) {
			count++
		}
	}
	return count
}

// NurseWishesOff returns a copy of the nurse's wishes: day -> sorted shifts
func (p *Preferences) NurseWishesOff(nurse int) map[int][]int {
	result := make(map[int][]int)
	for day, shifts := range p.wishesOff[nurse] {
		if len(shifts) == 0 {
			continue
		}
		result[day] = sortedKeys(shifts)
	}
	return result
}

// PushBack appends the days of other after the last day of p.
// Both preferences must use the same number of shifts.
func (p *Preferences) PushBack(other *Preferences) error {
	if other.nbShifts != p.nbShifts {
		return fmt.Errorf("cannot append preferences with %d shifts to preferences with %d shifts: %w",
			other.nbShifts, p.nbShifts, ErrOutOfRange)
	}
	// Collect before writing: other may be p itself.
	type wish struct{ nurse, day, shift int }
	var wishes []wish
	for nurse, days := range other.wishesOff {
		for day, shifts := range days {
			for s := range shifts {
				wishes = append(wishes, wish{nurse, day, s})
			}
		}
	}

	offset := p.nbDays
	for _, w := range wishes {
		p.dayShifts(w.nurse, w.day+offset)[w.shift] = true
	}
	p.nbNurses = max(p.nbNurses, other.nbNurses)
	p.nbDays += other.nbDays
	return nil
}

// Keep returns new preferences restricted to the days in [begin, end), reindexed from 0
func (p *Preferences) Keep(begin, end int) (*Preferences, error) {
	if begin < 0 || end < begin || end > p.nbDays {
		return nil, fmt.Errorf("cannot keep days [%d,%d) of a %d-day horizon: %w",
			begin, end, p.nbDays, ErrOutOfRange)
	}
	kept, err := NewPreferences(p.nbNurses, end-begin, p.nbShifts)
	if err != nil {
		return nil, err
	}
	for nurse, days := range p.wishesOff {
		kept.wishesOff[nurse] = make(map[int]map[int]bool)
		for day, shifts := range days {
			if day < begin || day >= end || len(shifts) == 0 {
				continue
			}
			target := kept.dayShifts(nurse, day-begin)
			for s := range shifts {
				target[s] = true
			}
		}
	}
	return kept, nil
}

// RemoveNFirstDay returns new preferences without the first n days
func (p *Preferences) RemoveNFirstDay(n int) (*Preferences, error) {
	return p.Keep(n, p.nbDays)
}

// Equal returns true if both preferences have the same dimensions and wishes
func (p *Preferences) Equal(other *Preferences) bool {
	if p.nbNurses != other.nbNurses || p.nbDays != other.nbDays || p.nbShifts != other.nbShifts {
		return false
	}
	for nurse := range p.nurseIDs(other) {
		a, b := p.NurseWishesOff(nurse), other.NurseWishesOff(nurse)
		if len(a) != len(b) {
			return false
		}
		for day, shifts := range a {
			if !slices.Equal(shifts, b[day]) {
				return false
			}
		}
	}
	return true
}

// nurseIDs returns the union of nurses with wishes in p and other
func (p *Preferences) nurseIDs(other *Preferences) map[int]bool {
	ids := make(map[int]bool)
	for nurse := range p.wishesOff {
		ids[nurse] = true
	}
	for nurse := range other.wishesOff {
		ids[nurse] = true
	}
	return ids
}

// String renders the wishes off of every nurse, one nurse per line
func (p *Preferences) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Preferences: %d nurses, %d days, %d shifts\n", p.nbNurses, p.nbDays, p.nbShifts)
	nurses := sortedKeys(p.nurseIDs(p))
	for _, nurse := range nurses {
		wishes := p.NurseWishesOff(nurse)
		if len(wishes) == 0 {
			continue
		}
		fmt.Fprintf(&b, "  nurse %d:", nurse)
		days := make([]int, 0, len(wishes))
		for day := range wishes {
			days = append(days, day)
		}
		slices.Sort(days)
		for _, day := range days {
			fmt.Fprintf(&b, " d%d%v", day, wishes[day])
		}
		b.WriteString("\n")
	}
	return b.String()
}

func sortedKeys(set map[int]bool) []int {
	keys := make([]int, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
