// Package calendar lays a month's tasks out on a Monday-first grid.
package calendar

import (
	"time"

	"github.com/amitkumarsingh01/ACS-Cyber/internal/model"
)

// DayState classifies a day cell for display, mirroring the dashboard's
// color coding.
type DayState string

const (
	// StateNone marks days without tasks due.
	StateNone DayState = ""
	// StateCompleted marks days whose leading task is done.
	StateCompleted DayState = "completed"
	// StateUpcoming marks days due in more than a week.
	StateUpcoming DayState = "upcoming"
	// StateDueSoon marks days due within a week or already past.
	StateDueSoon DayState = "due-soon"
)

// Day is one cell of the grid. Day zero is a padding cell outside the month.
type Day struct {
	Day   int          `json:"day"`
	State DayState     `json:"state,omitempty"`
	Tasks []model.Task `json:"tasks,omitempty"`
}

// Month is a full month grid plus the tasks that fell inside it.
type Month struct {
	Year  int          `json:"year"`
	Month time.Month   `json:"month"`
	Weeks [][]Day      `json:"weeks"`
	Tasks []model.Task `json:"tasks"`
}

// MonthGrid builds the grid for year/month. Weeks start on Monday; cells
// outside the month carry day zero. Tasks are matched to days by parsing
// their stored due-date strings; tasks that do not parse into the given
// month are dropped.
func MonthGrid(year int, month time.Month, tasks []model.Task, today time.Time) Month {
	byDay := make(map[int][]model.Task)
	var inMonth []model.Task
	for _, task := range tasks {
		due, err := task.Due()
		if err != nil || due.IsZero() {
			continue
		}
		if due.Year() != year || due.Month() != month {
			continue
		}
		byDay[due.Day()] = append(byDay[due.Day()], task)
		inMonth = append(inMonth, task)
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	lead := (int(first.Weekday()) + 6) % 7 // Monday-first offset
	total := daysInMonth(month, year)

	var weeks [][]Day
	week := make([]Day, 0, 7)
	for i := 0; i < lead; i++ {
		week = append(week, Day{})
	}
	for day := 1; day <= total; day++ {
		cell := Day{Day: day, Tasks: byDay[day]}
		cell.State = dayState(cell.Tasks, time.Date(year, month, day, 0, 0, 0, 0, time.UTC), today)
		week = append(week, cell)
		if len(week) == 7 {
			weeks = append(weeks, week)
			week = make([]Day, 0, 7)
		}
	}
	if len(week) > 0 {
		for len(week) < 7 {
			week = append(week, Day{})
		}
		weeks = append(weeks, week)
	}

	return Month{Year: year, Month: month, Weeks: weeks, Tasks: inMonth}
}

// dayState follows the original coloring: the first task of the day decides,
// completed wins, then the seven-day due window.
func dayState(tasks []model.Task, due, today time.Time) DayState {
	if len(tasks) == 0 {
		return StateNone
	}
	if tasks[0].Completed {
		return StateCompleted
	}
	if due.Sub(today) > 7*24*time.Hour {
		return StateUpcoming
	}
	return StateDueSoon
}

func daysInMonth(month time.Month, year int) int {
	// Move to next month, roll back a day.
	firstOfMonth := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	lastOfMonth := firstOfMonth.AddDate(0, 1, -1)
	return lastOfMonth.Day()
}
