package format

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/higexxp/issuedash/internal/deps"
	"github.com/higexxp/issuedash/internal/timetrack"
)

// TextRenderer renders dashboard resources as ASCII text.
type TextRenderer struct{}

// --- Dependency Rendering ---

func (r *TextRenderer) RenderDependencies(dependencies []deps.IssueDependency) string {
	if len(dependencies) == 0 {
		return "No dependencies found."
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("DEPENDENCIES (%d)\n", len(dependencies)))
	b.WriteString(line(40))
	b.WriteString("\n")

	for _, d := range dependencies {
		verb := "depends on"
		if d.Type == deps.Blocks {
			verb = "blocks"
		}
		b.WriteString(fmt.Sprintf("  %s %s", verb, refLabel(d.Repository, d.IssueNumber)))
		if d.Description != "" {
			b.WriteString(" (" + d.Description + ")")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (r *TextRenderer) RenderValidation(v *deps.Validation) string {
	if v == nil {
		return ""
	}

	var b strings.Builder
	if v.IsValid {
		b.WriteString("VALID\n")
	} else {
		b.WriteString("INVALID\n")
	}
	for _, e := range v.Errors {
		b.WriteString("  error: " + e + "\n")
	}
	for _, w := range v.Warnings {
		b.WriteString("  warning: " + w + "\n")
	}
	return b.String()
}

func (r *TextRenderer) RenderGraph(g *deps.Graph) string {
	if g == nil || len(g.Nodes) == 0 {
		return "Empty graph."
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("GRAPH (%d nodes, %d edges)\n", len(g.Nodes), len(g.Edges)))
	b.WriteString(line(40))
	b.WriteString("\n")

	// Group nodes by level, deepest prerequisites first.
	byLevel := make(map[int][]deps.Node)
	for _, n := range g.Nodes {
		byLevel[n.Level] = append(byLevel[n.Level], n)
	}
	levels := make([]int, 0, len(byLevel))
	for lv := range byLevel {
		levels = append(levels, lv)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(levels)))

	for _, lv := range levels {
		nodes := byLevel[lv]
		sort.Slice(nodes, func(i, j int) bool {
			if nodes[i].Repository != nodes[j].Repository {
				return nodes[i].Repository < nodes[j].Repository
			}
			return nodes[i].IssueNumber < nodes[j].IssueNumber
		})
		b.WriteString(fmt.Sprintf("Level %d:\n", lv))
		for _, n := range nodes {
			b.WriteString("  " + refLabel(n.Repository, n.IssueNumber))
			if n.Title != "" {
				b.WriteString(" " + n.Title)
			}
			if n.State != "" {
				b.WriteString(" [" + n.State + "]")
			}
			b.WriteString("\n")
		}
	}

	if len(g.Cycles) > 0 {
		b.WriteString(line(40))
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("CYCLES (%d)\n", len(g.Cycles)))
		for _, cycle := range g.Cycles {
			parts := make([]string, len(cycle))
			for i, n := range cycle {
				parts[i] = "#" + strconv.Itoa(n)
			}
			b.WriteString("  " + strings.Join(parts, " -> ") + "\n")
		}
	}

	if len(g.Order) > 0 {
		parts := make([]string, len(g.Order))
		for i, n := range g.Order {
			parts[i] = "#" + strconv.Itoa(n)
		}
		b.WriteString("Work order: " + strings.Join(parts, ", ") + "\n")
	}
	return b.String()
}

// --- Time Tracking Rendering ---

func (r *TextRenderer) RenderSession(s *timetrack.Session) string {
	if s == nil {
		return "No active session."
	}

	status := "paused"
	if s.IsActive {
		status = "active"
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s [%s] %s\n", refLabel(s.Repository, s.IssueNumber), status, s.UserID))
	b.WriteString("  started " + s.StartTime.Format("2006-01-02 15:04") + "\n")
	if s.Description != "" {
		b.WriteString("  " + s.Description + "\n")
	}
	return b.String()
}

func (r *TextRenderer) RenderEntryList(entries []timetrack.Entry) string {
	if len(entries) == 0 {
		return "No entries found."
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("ENTRIES (%d)\n", len(entries)))
	b.WriteString(line(40))
	b.WriteString("\n")
	for _, e := range entries {
		b.WriteString(fmt.Sprintf("  %s %s %dm %s",
			e.Day(), e.IssueKey(), e.Duration, e.UserID))
		if e.Description != "" {
			b.WriteString(" (" + e.Description + ")")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (r *TextRenderer) RenderReport(rep *timetrack.Report) string {
	if rep == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("TIME REPORT (%s)\n", rep.Period.Type))
	b.WriteString(fmt.Sprintf("%s to %s\n",
		rep.Period.Start.Format("2006-01-02"), rep.Period.End.Format("2006-01-02")))
	b.WriteString(line(40))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Total: %dm (%.2fh) across %d entries, %d active days\n",
		rep.Summary.TotalMinutes, rep.Summary.TotalHours,
		rep.Summary.EntriesCount, rep.Summary.ActiveDays))
	if rep.Summary.EntriesCount > 0 {
		b.WriteString(fmt.Sprintf("Sessions: avg %.2fm, longest %dm, shortest %dm\n",
			rep.Summary.AverageSessionMinutes,
			rep.Summary.LongestSessionMinutes, rep.Summary.ShortestSessionMinutes))
	}

	writeGroup := func(title string, groups map[string]timetrack.Summary) {
		if len(groups) == 0 {
			return
		}
		keys := make([]string, 0, len(groups))
		for k := range groups {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString(title + ":\n")
		for _, k := range keys {
			b.WriteString(fmt.Sprintf("  %s: %dm (%d entries)\n",
				k, groups[k].TotalMinutes, groups[k].EntriesCount))
		}
	}
	writeGroup("By issue", rep.ByIssue)
	writeGroup("By user", rep.ByUser)
	writeGroup("By day", rep.ByDay)
	return b.String()
}
