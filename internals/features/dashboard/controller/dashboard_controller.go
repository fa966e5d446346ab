package controller

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
	"gorm.io/gorm"

	helper "digischool_backend/internals/helpers"
)

type DashboardController struct {
	DB *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

// DashboardSummary = angka ringkas untuk halaman depan admin.
// BillBreakdown dihitung per bill_status; filter ?statuses= hanya berlaku
// di sini, angka pending/paid selalu menghitung seluruh tagihan.
type DashboardSummary struct {
	TotalStudents    int64            `json:"total_students"`
	TotalClasses     int64            `json:"total_classes"`
	PendingBills     int64            `json:"pending_bills"`
	PaidBills        int64            `json:"paid_bills"`
	BillBreakdown    map[string]int64 `json:"bill_breakdown"`
	CollectedThisMon int64            `json:"collected_this_month"`
	CollectedTotal   int64            `json:"collected_total"`
}

type statusCount struct {
	Status string
	Total  int64
}

// breakdownMap merapikan hasil GROUP BY bill_status menjadi map siap-JSON.
func breakdownMap(rows []statusCount) map[string]int64 {
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Status] = r.Total
	}
	return out
}

// LatestPayment = satu baris aktivitas pembayaran terbaru.
type LatestPayment struct {
	PaymentID   uint      `json:"payment_id"`
	StudentName string    `json:"student_name"`
	Month       string    `json:"month"`
	Year        int       `json:"year"`
	Method      string    `json:"method"`
	Amount      int64     `json:"amount"`
	Date        time.Time `json:"date"`
}

// csvValues memecah query multi-nilai "cash,qris" menjadi slice untuk ANY().
func csvValues(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// GET /api/a/dashboard?methods=cash,qris&statuses=pending,paid
func (ctrl *DashboardController) Summary(c *fiber.Ctx) error {
	db := ctrl.DB.WithContext(c.UserContext())

	var sum DashboardSummary
	if err := db.Table("student").Count(&sum.TotalStudents).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghitung siswa")
	}
	if err := db.Table("class").Count(&sum.TotalClasses).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghitung kelas")
	}

	if err := db.Table("bill").
		Where("bill_status = ?", "pending").Count(&sum.PendingBills).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghitung tagihan")
	}
	if err := db.Table("bill").
		Where("bill_status = ?", "paid").Count(&sum.PaidBills).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghitung tagihan")
	}

	breakQ := db.Table("bill").
		Select("bill_status AS status, COUNT(*) AS total").
		Group("bill_status")
	if statuses := csvValues(c.Query("statuses")); len(statuses) > 0 {
		// filter status multi-nilai dari query ?statuses=pending,failed
		breakQ = breakQ.Where("bill_status = ANY(?)", pq.Array(statuses))
	}
	var counts []statusCount
	if err := breakQ.Scan(&counts).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghitung tagihan")
	}
	sum.BillBreakdown = breakdownMap(counts)

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	payQ := db.Table("payment")
	if methods := csvValues(c.Query("methods")); len(methods) > 0 {
		payQ = payQ.Where("payment_method = ANY(?)", pq.Array(methods))
	}
	if err := payQ.Session(&gorm.Session{}).
		Select("COALESCE(SUM(payment_amount), 0)").
		Where("payment_date >= ?", monthStart).
		Scan(&sum.CollectedThisMon).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghitung pemasukan")
	}
	if err := payQ.Session(&gorm.Session{}).
		Select("COALESCE(SUM(payment_amount), 0)").
		Scan(&sum.CollectedTotal).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghitung pemasukan")
	}

	latestQ := db.Table("payment AS p").
		Joins("JOIN bill b ON b.bill_id = p.payment_bill_id").
		Joins("JOIN student s ON s.student_id = b.bill_student_id")
	if methods := csvValues(c.Query("methods")); len(methods) > 0 {
		latestQ = latestQ.Where("p.payment_method = ANY(?)", pq.Array(methods))
	}

	var latest []LatestPayment
	if err := latestQ.
		Select(`p.payment_id, s.student_name, b.bill_month AS month, b.bill_year AS year,
			p.payment_method AS method, p.payment_amount AS amount, p.payment_date AS date`).
		Order("p.payment_created_at DESC").
		Limit(5).
		Scan(&latest).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil pembayaran terbaru")
	}

	return helper.Success(c, "Ringkasan dashboard berhasil diambil", fiber.Map{
		"summary":         sum,
		"latest_payments": latest,
	})
}
