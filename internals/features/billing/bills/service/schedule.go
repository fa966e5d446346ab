package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"digischool_backend/internals/constants"
)

// ScheduleEntry = satu slot tagihan pada kalender tahun ajaran.
type ScheduleEntry struct {
	Month   string
	Year    int
	DueDate time.Time
}

// ParsePeriodName memecah nama tahun ajaran "YYYY/YYYY" menjadi tahun awal
// dan tahun akhir. Keduanya wajib bilangan bulat.
func ParsePeriodName(name string) (startYear, endYear int, err error) {
	parts := strings.Split(strings.TrimSpace(name), "/")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("format tahun ajaran tidak valid (harus YYYY/YYYY): %q", name)
	}
	startYear, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("format tahun ajaran tidak valid (harus YYYY/YYYY): %q", name)
	}
	endYear, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("format tahun ajaran tidak valid (harus YYYY/YYYY): %q", name)
	}
	return startYear, endYear, nil
}

// BuildYearSchedule menyusun 12 slot tagihan urut Juli..Juni. Juli–Desember
// jatuh di tahun awal, Januari–Juni di tahun akhir; jatuh tempo selalu
// tanggal 15.
func BuildYearSchedule(startYear, endYear int) []ScheduleEntry {
	entries := make([]ScheduleEntry, 0, len(constants.SchoolYearMonths))
	for i, label := range constants.SchoolYearMonths {
		year := startYear
		if i >= 6 {
			year = endYear
		}
		m, _ := constants.CalendarMonth(label)
		entries = append(entries, ScheduleEntry{
			Month:   label,
			Year:    year,
			DueDate: time.Date(year, m, 15, 0, 0, 0, 0, time.UTC),
		})
	}
	return entries
}
