package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/jakechorley/nurse-roster/pkg/core/scenario"
	"github.com/jakechorley/nurse-roster/pkg/core/services"
	"github.com/jakechorley/nurse-roster/pkg/db"
)

// skillNames renders skill indices with their names
func skillNames(scn *scenario.Scenario, skills []int) string {
	names := make([]string, len(skills))
	for i, sk := range skills {
		if sk >= 0 && sk < len(scn.Skills) {
			names[i] = scn.Skills[sk]
		} else {
			names[i] = fmt.Sprintf("#%d", sk)
		}
	}
	return strings.Join(names, ", ")
}

// formatRanking renders the positions in ranking order with their nurses
func formatRanking(result *services.RankResult) string {
	var b strings.Builder
	scn := result.Scenario

	skillsByID := make(map[int][]int, len(scn.Positions))
	for _, p := range scn.Positions {
		skillsByID[p.ID] = p.Skills
	}

	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tPosition\tRank\tSkills\tRarity\tNurses")
	for i, id := range result.Ranking.Order {
		node := result.Ranking.Node(id)

		rarities := make([]string, len(node.SkillRarity))
		for j, r := range node.SkillRarity {
			rarities[j] = fmt.Sprintf("%.2f", r)
		}

		var nurses []string
		for _, nurseID := range result.NursesByPosition[id] {
			nurses = append(nurses, scn.Nurses[nurseID].Name)
		}

		fmt.Fprintf(w, "%d\t%d\t%d\t%s\t%s\t%s\n",
			i+1, id, node.Rank, skillNames(scn, skillsByID[id]),
			strings.Join(rarities, " "), strings.Join(nurses, ", "))
	}
	w.Flush()

	return b.String()
}

// formatSummaries renders stored scenarios as a table
func formatSummaries(summaries []db.ScenarioSummary) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tName\tStart\tDays\tNurses\tCreated")
	for _, s := range summaries {
		start := s.HorizonStart
		if start == "" {
			start = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
			s.ID, s.Name, start, s.NbDays, s.NbNurses, s.CreatedAt.Format("2006-01-02 15:04"))
	}
	w.Flush()
	return b.String()
}
