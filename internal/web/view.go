package web

import (
	"strings"

	"minikadimlar/internal/attendance"
	"minikadimlar/internal/student"
)

const (
	placeholderCard   = "https://via.placeholder.com/70"
	placeholderDetail = "https://via.placeholder.com/180"
)

// RosterCard is one student tile on the panel.
type RosterCard struct {
	ID        int64
	Name      string
	NameLower string
	PhotoURL  string
	Time      string
	Present   bool
}

// RosterView feeds panel.html: the full student set partitioned by the
// presence flag, ordering inherited from the repository.
type RosterView struct {
	Present      []RosterCard
	Absent       []RosterCard
	PresentCount int
	AbsentCount  int
}

func buildRoster(students []student.Student) RosterView {
	var v RosterView
	for _, s := range students {
		card := RosterCard{
			ID:        s.ID,
			Name:      s.Name,
			NameLower: strings.ToLower(s.Name),
			PhotoURL:  photoURL(s.PhotoRef, placeholderCard),
			Time:      "--:--",
			Present:   s.Present,
		}
		if s.LastChange != nil {
			card.Time = s.LastChange.Format("15:04")
		}
		if s.Present {
			v.Present = append(v.Present, card)
			v.PresentCount++
		} else {
			v.Absent = append(v.Absent, card)
			v.AbsentCount++
		}
	}
	return v
}

// LogRow is one movement-log line on the detail page.
type LogRow struct {
	Date     string
	CheckIn  string
	CheckOut string
	Duration string
}

// DetailView feeds detail.html.
type DetailView struct {
	Student  student.Student
	PhotoURL string
	Rows     []LogRow
}

func buildDetail(s student.Student, entries []attendance.Entry) DetailView {
	v := DetailView{
		Student:  s,
		PhotoURL: photoURL(s.PhotoRef, placeholderDetail),
	}
	for _, e := range entries {
		row := LogRow{
			Date:     e.Date.Format("02.01.2006"),
			CheckIn:  orDash(e.CheckIn),
			CheckOut: orDash(e.CheckOut),
			Duration: e.Duration(),
		}
		v.Rows = append(v.Rows, row)
	}
	return v
}

func photoURL(ref, placeholder string) string {
	if ref == "" {
		return placeholder
	}
	return "/uploads/" + ref
}

func orDash(clock string) string {
	if clock == "" {
		return "--"
	}
	return clock
}
