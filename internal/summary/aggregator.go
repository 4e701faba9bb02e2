// Package summary builds the read-side daily and per-project reports from
// a snapshot of persisted tasks. Aggregation is pure; the service layer
// owns the reporting window.
package summary

import (
	"sort"
	"time"

	"github.com/dailyworklog/server/internal/models"
)

// ProjectDuration is one project bucket inside an employee's daily summary.
type ProjectDuration struct {
	Project  string `json:"project"`
	Duration int    `json:"duration"`
}

// EmployeeSummary is the per-employee roll-up of a day's work.
type EmployeeSummary struct {
	EmployeeID    string            `json:"employeeId"`
	UserName      string            `json:"user_name"`
	Projects      []ProjectDuration `json:"projects"`
	TotalDuration int               `json:"totalDuration"`
}

// ProjectTotal is one row of the project-wise report.
type ProjectTotal struct {
	Project        string `json:"project"`
	TotalTimeSpent int    `json:"totalTimeSpent"`
}

// DailyWindow returns the reporting window for a date: local midnight up to,
// but not including, 18:00. The 18:00 cutoff is a business-hours boundary,
// not end-of-day.
func DailyWindow(asOf time.Time) (start, end time.Time) {
	start = time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, asOf.Location())
	end = start.Add(18 * time.Hour)
	return start, end
}

// BuildDailySummary groups tasks by (employeeId, user_name, project) and
// rolls the project sums up per employee. A task listing several projects
// contributes its entire TotalTimeSpent to every one of them; time is not
// split proportionally. Output is sorted by employee name ascending, with
// each employee's project buckets sorted by project name.
func BuildDailySummary(tasks []models.Task) []EmployeeSummary {
	type key struct{ employeeID, userName string }

	buckets := make(map[key]map[string]int)
	order := make([]key, 0)

	for _, t := range tasks {
		k := key{employeeID: t.EmployeeID, userName: t.UserName}
		if _, ok := buckets[k]; !ok {
			buckets[k] = make(map[string]int)
			order = append(order, k)
		}
		for _, project := range t.Projects {
			buckets[k][project] += t.TotalTimeSpent
		}
	}

	out := make([]EmployeeSummary, 0, len(order))
	for _, k := range order {
		es := EmployeeSummary{EmployeeID: k.employeeID, UserName: k.userName}
		projects := make([]string, 0, len(buckets[k]))
		for p := range buckets[k] {
			projects = append(projects, p)
		}
		sort.Strings(projects)
		for _, p := range projects {
			d := buckets[k][p]
			es.Projects = append(es.Projects, ProjectDuration{Project: p, Duration: d})
			es.TotalDuration += d
		}
		out = append(out, es)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].UserName != out[j].UserName {
			return out[i].UserName < out[j].UserName
		}
		return out[i].EmployeeID < out[j].EmployeeID
	})
	return out
}

// BuildProjectSummary totals TotalTimeSpent per project across all tasks,
// independent of employee, with the same full-attribution rule as
// BuildDailySummary. Output is sorted by project name ascending.
func BuildProjectSummary(tasks []models.Task) []ProjectTotal {
	totals := make(map[string]int)
	for _, t := range tasks {
		for _, project := range t.Projects {
			totals[project] += t.TotalTimeSpent
		}
	}

	out := make([]ProjectTotal, 0, len(totals))
	for p, d := range totals {
		out = append(out, ProjectTotal{Project: p, TotalTimeSpent: d})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Project < out[j].Project })
	return out
}
