package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/nurse-roster/internal/config"
	"github.com/jakechorley/nurse-roster/pkg/core/model"
	"github.com/jakechorley/nurse-roster/pkg/core/scenario"
	"github.com/jakechorley/nurse-roster/pkg/db"
	"github.com/jakechorley/nurse-roster/pkg/instancefile"
)

func testScenario(t *testing.T) *scenario.Scenario {
	t.Helper()
	night := 3
	s, err := scenario.New(scenario.Input{
		Name:         "ward-a",
		NbWeeks:      2,
		HorizonStart: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		Skills:       []string{"HeadNurse", "Nurse", "Caretaker"},
		Shifts:       []string{"Early", "Day", "Late", "Night"},
		Contracts: []model.Contract{
			*model.NewContract(0, "FullTime", 15, 22, 3, 5, 2, 3, 2, true),
			*model.NewContract(1, "PartTime", 7, 15, 3, 5, 2, 5, 2, false),
		},
		Nurses: []scenario.NurseInput{
			{ID: 0, Name: "Patrick", Skills: []int{0, 1}, ContractID: 0},
			{ID: 1, Name: "Andrea", Skills: []int{1}, ContractID: 1},
			{ID: 2, Name: "Stefaan", Skills: []int{2}, ContractID: 1},
		},
		Wishes: []scenario.Wish{
			{Nurse: 0, Day: 2},
			{Nurse: 1, Day: 9, Shift: &night},
		},
	})
	require.NoError(t, err)
	return s
}

// mockStore implements every store interface used by the services
type mockStore struct {
	scenarios map[string]*scenario.Scenario
	ranks     map[string][]db.PositionRank
	summaries []db.ScenarioSummary
	insertErr error
	getErr    error
	saveErr   error
	nextID    int
}

func newMockStore() *mockStore {
	return &mockStore{
		scenarios: make(map[string]*scenario.Scenario),
		ranks:     make(map[string][]db.PositionRank),
	}
}

func (m *mockStore) InsertScenario(ctx context.Context, s *scenario.Scenario) (string, error) {
	if m.insertErr != nil {
		return "", m.insertErr
	}
	m.nextID++
	id := fmt.Sprintf("scn-%d", m.nextID)
	m.scenarios[id] = s
	return id, nil
}

func (m *mockStore) GetScenario(ctx context.Context, id string) (*scenario.Scenario, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	s, ok := m.scenarios[id]
	if !ok {
		return nil, fmt.Errorf("scenario %s not found", id)
	}
	return s, nil
}

func (m *mockStore) ListScenarios(ctx context.Context) ([]db.ScenarioSummary, error) {
	return m.summaries, nil
}

func (m *mockStore) GetPositionRanks(ctx context.Context, scenarioID string) ([]db.PositionRank, error) {
	return m.ranks[scenarioID], nil
}

func (m *mockStore) SavePositionRanks(ctx context.Context, scenarioID string, ranks []db.PositionRank) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.ranks[scenarioID] = ranks
	return nil
}

// mockReader implements InstanceReader
type mockReader struct {
	contracts []model.Contract
	nurses    []instancefile.NurseEntry
	wishes    []instancefile.WishEntry
	err       error
}

func (m *mockReader) ListContracts(cfg config.SheetsConfig) ([]model.Contract, error) {
	return m.contracts, m.err
}

func (m *mockReader) ListNurses(cfg config.SheetsConfig) ([]instancefile.NurseEntry, error) {
	return m.nurses, nil
}

func (m *mockReader) ListWishes(cfg config.SheetsConfig) ([]instancefile.WishEntry, error) {
	return m.wishes, nil
}

func TestRankScenario(t *testing.T) {
	result, err := RankScenario(context.Background(), zap.NewNop(), testScenario(t))
	require.NoError(t, err)

	// {HeadNurse, Nurse} dominates {Nurse}; {Caretaker} is incomparable to both
	assert.Equal(t, []int{0, 2, 1}, result.Ranking.Order)
	assert.Equal(t, [][]int{{0, 2}, {1}}, result.Ranking.ByRank())
	assert.Equal(t, map[int][]int{0: {0}, 1: {1}, 2: {2}}, result.NursesByPosition)
}

func TestRankScenario_Errors(t *testing.T) {
	_, err := RankScenario(context.Background(), zap.NewNop(), nil)
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = RankScenario(ctx, zap.NewNop(), testScenario(t))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSlicePreferences(t *testing.T) {
	scn := testScenario(t)

	sliced, err := SlicePreferences(context.Background(), zap.NewNop(), scn, 7, -1)
	require.NoError(t, err)

	assert.Equal(t, 7, sliced.NbDays)
	assert.Equal(t, "2026-01-12", sliced.HorizonStart.Format("2006-01-02"))
	assert.True(t, sliced.Preferences.WantsTheShiftOff(1, 2, 3))
	assert.Equal(t, 0, sliced.Preferences.HowManyShiftsOff(0))
	assert.Equal(t, 14, scn.NbDays)

	_, err = SlicePreferences(context.Background(), zap.NewNop(), scn, 5, 30)
	assert.ErrorIs(t, err, model.ErrOutOfRange)
}

func TestExtendHorizon(t *testing.T) {
	scn := testScenario(t)
	first, err := SlicePreferences(context.Background(), zap.NewNop(), scn, 0, 7)
	require.NoError(t, err)
	second, err := SlicePreferences(context.Background(), zap.NewNop(), scn, 7, 14)
	require.NoError(t, err)

	require.NoError(t, ExtendHorizon(context.Background(), zap.NewNop(), first, second))
	assert.Equal(t, 14, first.NbDays)
	assert.True(t, scn.Preferences.Equal(first.Preferences))
}

func TestExtendHorizon_Self(t *testing.T) {
	scn := testScenario(t)
	err := ExtendHorizon(context.Background(), zap.NewNop(), scn, scn)
	assert.ErrorContains(t, err, "cannot append a horizon starting")
	assert.Equal(t, 14, scn.NbDays)

	scn.HorizonStart = time.Time{}
	require.NoError(t, ExtendHorizon(context.Background(), zap.NewNop(), scn, scn))
	assert.Equal(t, 28, scn.NbDays)
	assert.True(t, scn.Preferences.WantsTheDayOff(0, 16))
	assert.True(t, scn.Preferences.WantsTheShiftOff(1, 23, 3))
	assert.Equal(t, 2, scn.Preferences.HowManyDaysOff(0, 0, 28))
}

func TestImportScenario(t *testing.T) {
	store := newMockStore()
	scn := testScenario(t)

	id, err := ImportScenario(context.Background(), store, zap.NewNop(), scn)
	require.NoError(t, err)
	assert.Equal(t, "scn-1", id)
	assert.Same(t, scn, store.scenarios[id])

	store.insertErr = fmt.Errorf("connection refused")
	_, err = ImportScenario(context.Background(), store, zap.NewNop(), scn)
	assert.ErrorContains(t, err, "connection refused")
}

func TestListScenarios(t *testing.T) {
	store := newMockStore()
	store.summaries = []db.ScenarioSummary{{ID: "scn-1", Name: "ward-a", NbDays: 14, NbNurses: 3}}

	summaries, err := ListScenarios(context.Background(), store, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, store.summaries, summaries)
}

func TestRankStoredScenario(t *testing.T) {
	store := newMockStore()
	store.scenarios["scn-7"] = testScenario(t)

	result, err := RankStoredScenario(context.Background(), store, zap.NewNop(), "scn-7")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 1}, result.Ranking.Order)

	ranks := store.ranks["scn-7"]
	require.Len(t, ranks, 3)
	assert.Equal(t, 0, ranks[0].PositionID)
	assert.Equal(t, []int{1}, ranks[0].Below)
	assert.Equal(t, 1, ranks[2].PositionID)
	assert.Equal(t, 1, ranks[2].Rank)
	assert.Equal(t, 2, ranks[2].OrderIndex)
	assert.Equal(t, []int{0}, ranks[2].Above)
}

func TestGetStoredRanking(t *testing.T) {
	store := newMockStore()
	store.scenarios["scn-7"] = testScenario(t)

	_, err := GetStoredRanking(context.Background(), store, zap.NewNop(), "scn-7")
	assert.ErrorContains(t, err, "has not been ranked yet")

	_, err = RankStoredScenario(context.Background(), store, zap.NewNop(), "scn-7")
	require.NoError(t, err)

	ranks, err := GetStoredRanking(context.Background(), store, zap.NewNop(), "scn-7")
	require.NoError(t, err)
	require.Len(t, ranks, 3)
	assert.Equal(t, []int{0, 2, 1}, []int{ranks[0].PositionID, ranks[1].PositionID, ranks[2].PositionID})
}

func TestRankStoredScenario_Errors(t *testing.T) {
	store := newMockStore()
	_, err := RankStoredScenario(context.Background(), store, zap.NewNop(), "missing")
	assert.ErrorContains(t, err, "failed to load scenario")

	store.scenarios["scn-1"] = testScenario(t)
	store.saveErr = fmt.Errorf("disk full")
	_, err = RankStoredScenario(context.Background(), store, zap.NewNop(), "scn-1")
	assert.ErrorContains(t, err, "disk full")
}

func sheetsConfig() *config.Config {
	return &config.Config{
		DatabaseURL: "postgres://localhost/roster",
		Sheets: config.SheetsConfig{
			SpreadsheetID: "sheet", ContractsTab: "Contracts", NursesTab: "Nurses", WishesTab: "Wishes",
		},
		Horizon: config.HorizonConfig{
			NbWeeks:      1,
			HorizonStart: "2026-01-05",
			Skills:       []string{"HeadNurse", "Nurse"},
			Shifts:       []string{"Early", "Late"},
		},
	}
}

func TestImportSheet(t *testing.T) {
	reader := &mockReader{
		contracts: []model.Contract{*model.NewContract(0, "FullTime", 4, 6, 1, 5, 1, 3, 1, true)},
		nurses: []instancefile.NurseEntry{
			{Name: "Patrick", Contract: "FullTime", Skills: []string{"Nurse", "HeadNurse"}},
			{Name: "Andrea", Contract: "FullTime", Skills: []string{"Nurse"}},
		},
		wishes: []instancefile.WishEntry{
			{Nurse: "Andrea", Day: 6},
			{Nurse: "Patrick", Day: 1, Shift: "Late"},
		},
	}
	store := newMockStore()

	id, scn, err := ImportSheet(context.Background(), reader, store, zap.NewNop(), sheetsConfig(), "ward-a")
	require.NoError(t, err)
	assert.Equal(t, "scn-1", id)

	assert.Equal(t, "ward-a", scn.Name)
	assert.Equal(t, 7, scn.NbDays)
	assert.Equal(t, []int{0, 1}, scn.Nurses[0].Skills)
	assert.True(t, scn.Preferences.WantsTheDayOff(1, 6))
	assert.True(t, scn.Preferences.WantsTheShiftOff(0, 1, 1))
	assert.False(t, scn.Preferences.WantsTheShiftOff(0, 1, 0))
}

func TestImportSheet_Errors(t *testing.T) {
	cfg := sheetsConfig()
	cfg.Sheets.WishesTab = ""
	_, _, err := ImportSheet(context.Background(), &mockReader{}, newMockStore(), zap.NewNop(), cfg, "ward-a")
	assert.ErrorContains(t, err, "sheets import requires")

	_, _, err = ImportSheet(context.Background(), &mockReader{err: fmt.Errorf("quota exceeded")},
		newMockStore(), zap.NewNop(), sheetsConfig(), "ward-a")
	assert.ErrorContains(t, err, "quota exceeded")

	reader := &mockReader{
		contracts: []model.Contract{*model.NewContract(0, "FullTime", 4, 6, 1, 5, 1, 3, 1, true)},
		nurses:    []instancefile.NurseEntry{{Name: "Patrick", Contract: "PartTime", Skills: []string{"Nurse"}}},
	}
	_, _, err = ImportSheet(context.Background(), reader, newMockStore(), zap.NewNop(), sheetsConfig(), "ward-a")
	assert.ErrorContains(t, err, "unknown contract")
}
