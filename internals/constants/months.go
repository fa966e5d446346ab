package constants

import "time"

// Urutan bulan tahun ajaran: Juli..Desember ikut tahun awal,
// Januari..Juni ikut tahun akhir.
var SchoolYearMonths = []string{
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
}

// calendarMonth: label bulan → bulan kalender (untuk tanggal jatuh tempo).
var calendarMonth = map[string]time.Month{
	"Januari":   time.January,
	"Februari":  time.February,
	"Maret":     time.March,
	"April":     time.April,
	"Mei":       time.May,
	"Juni":      time.June,
	"Juli":      time.July,
	"Agustus":   time.August,
	"September": time.September,
	"Oktober":   time.October,
	"November":  time.November,
	"Desember":  time.December,
}

// CalendarMonth mengembalikan bulan kalender untuk label bulan SPP.
func CalendarMonth(label string) (time.Month, bool) {
	m, ok := calendarMonth[label]
	return m, ok
}

// SchoolYearOrder: posisi label pada urutan tahun ajaran (1..12), 0 jika tidak dikenal.
func SchoolYearOrder(label string) int {
	for i, m := range SchoolYearMonths {
		if m == label {
			return i + 1
		}
	}
	return 0
}

// IsValidMonth memeriksa label bulan SPP.
func IsValidMonth(label string) bool {
	return SchoolYearOrder(label) != 0
}
