package service

import "strings"

/* ===================== Status pelunasan ===================== */

const (
	StatusLunas = "Lunas"
	StatusBelum = "Belum"
	StatusNone  = "-" // siswa belum punya tagihan pada periode tsb
)

// SettlementStatus menentukan status pelunasan satu siswa dari total
// tagihan vs total terbayar.
func SettlementStatus(billed, paid int64) string {
	if billed <= 0 {
		return StatusNone
	}
	if paid >= billed {
		return StatusLunas
	}
	return StatusBelum
}

/* ===================== Normalisasi nomor HP ===================== */

// NormalizePhone menyeragamkan nomor lokal ke format internasional 628xx
// supaya bisa langsung dipakai untuk link WhatsApp. String kosong dibiarkan.
func NormalizePhone(phone string) string {
	p := strings.TrimSpace(phone)
	p = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(p)
	switch {
	case p == "":
		return ""
	case strings.HasPrefix(p, "+62"):
		return p[1:]
	case strings.HasPrefix(p, "08"):
		return "62" + p[1:]
	default:
		return p
	}
}
