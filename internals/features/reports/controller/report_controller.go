package controller

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"digischool_backend/internals/constants"
	"digischool_backend/internals/features/reports/service"
	helper "digischool_backend/internals/helpers"
)

type ReportController struct {
	DB *gorm.DB
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db}
}

// ReportRow = rekap SPP satu siswa pada satu tahun ajaran, termasuk rincian
// status per bulan Juli..Juni.
type ReportRow struct {
	StudentID   uint          `json:"student_id"`
	StudentNIS  string        `json:"student_nis"`
	StudentName string        `json:"student_name"`
	ClassName   string        `json:"class_name"`
	Phone       string        `json:"phone"`
	TotalBilled int64         `json:"total_billed"`
	TotalPaid   int64         `json:"total_paid"`
	Arrears     int64         `json:"arrears"`
	Status      string        `json:"status"`
	Months      []MonthStatus `json:"months"`
}

// MonthStatus = status pelunasan satu bulan; bulan tanpa tagihan berstatus "-".
type MonthStatus struct {
	Month  string `json:"month"`
	Billed int64  `json:"billed"`
	Paid   int64  `json:"paid"`
	Status string `json:"status"`
}

type reportScan struct {
	StudentID   uint
	StudentNIS  string
	StudentName string
	ClassName   string
	Phone       *string
	TotalBilled int64
	TotalPaid   int64
}

func (ctrl *ReportController) queryReport(c *fiber.Ctx, periodID, classID int, limit, offset int) ([]ReportRow, int64, error) {
	base := ctrl.DB.WithContext(c.UserContext()).
		Table("student AS s").
		Joins("LEFT JOIN class k ON k.class_id = s.student_class_id").
		Joins("LEFT JOIN bill b ON b.bill_student_id = s.student_id AND b.bill_period_id = ?", periodID)

	if classID > 0 {
		base = base.Where("s.student_class_id = ?", classID)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).
		Distinct("s.student_id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var scans []reportScan
	q := base.
		Select(`s.student_id, s.student_nis, s.student_name,
			COALESCE(k.class_name, '') AS class_name, s.student_phone AS phone,
			COALESCE(SUM(b.bill_amount), 0) AS total_billed,
			COALESCE(SUM(CASE WHEN b.bill_status = 'paid' THEN b.bill_amount ELSE 0 END), 0) AS total_paid`).
		Group("s.student_id, s.student_nis, s.student_name, k.class_name, s.student_phone").
		Order("s.student_name ASC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	if err := q.Scan(&scans).Error; err != nil {
		return nil, 0, err
	}

	rows := make([]ReportRow, 0, len(scans))
	ids := make([]uint, 0, len(scans))
	for _, sc := range scans {
		phone := ""
		if sc.Phone != nil {
			phone = service.NormalizePhone(*sc.Phone)
		}
		rows = append(rows, ReportRow{
			StudentID:   sc.StudentID,
			StudentNIS:  sc.StudentNIS,
			StudentName: sc.StudentName,
			ClassName:   sc.ClassName,
			Phone:       phone,
			TotalBilled: sc.TotalBilled,
			TotalPaid:   sc.TotalPaid,
			Arrears:     sc.TotalBilled - sc.TotalPaid,
			Status:      service.SettlementStatus(sc.TotalBilled, sc.TotalPaid),
		})
		ids = append(ids, sc.StudentID)
	}

	months, err := ctrl.queryMonthDetail(c, periodID, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range rows {
		rows[i].Months = months[rows[i].StudentID]
	}
	return rows, total, nil
}

type monthScan struct {
	StudentID uint
	Month     string
	Billed    int64
	Paid      int64
}

// queryMonthDetail mengambil rincian per bulan untuk siswa di halaman ini.
// Bulan yang belum punya tagihan tetap muncul dengan status "-".
func (ctrl *ReportController) queryMonthDetail(c *fiber.Ctx, periodID int, studentIDs []uint) (map[uint][]MonthStatus, error) {
	out := make(map[uint][]MonthStatus, len(studentIDs))
	if len(studentIDs) == 0 {
		return out, nil
	}

	var scans []monthScan
	err := ctrl.DB.WithContext(c.UserContext()).
		Table("bill AS b").
		Joins("LEFT JOIN payment p ON p.payment_bill_id = b.bill_id").
		Where("b.bill_period_id = ? AND b.bill_student_id IN ?", periodID, studentIDs).
		Select(`b.bill_student_id AS student_id, b.bill_month AS month,
			b.bill_amount AS billed, COALESCE(p.payment_amount, 0) AS paid`).
		Scan(&scans).Error
	if err != nil {
		return nil, err
	}

	byStudentMonth := make(map[uint]map[string]monthScan, len(studentIDs))
	for _, sc := range scans {
		if byStudentMonth[sc.StudentID] == nil {
			byStudentMonth[sc.StudentID] = make(map[string]monthScan, 12)
		}
		byStudentMonth[sc.StudentID][sc.Month] = sc
	}

	for _, id := range studentIDs {
		cells := make([]MonthStatus, 0, len(constants.SchoolYearMonths))
		for _, m := range constants.SchoolYearMonths {
			sc := byStudentMonth[id][m]
			cells = append(cells, MonthStatus{
				Month:  m,
				Billed: sc.Billed,
				Paid:   sc.Paid,
				Status: service.SettlementStatus(sc.Billed, sc.Paid),
			})
		}
		out[id] = cells
	}
	return out, nil
}

// GET /api/a/reports/spp?period_id=&class_id=&page=&per_page=
func (ctrl *ReportController) SPPReport(c *fiber.Ctx) error {
	periodID := c.QueryInt("period_id")
	if periodID <= 0 {
		return helper.Error(c, fiber.StatusBadRequest, "period_id wajib diisi")
	}
	params := helper.ParseFiber(c, helper.DefaultOpts)

	rows, total, err := ctrl.queryReport(c, periodID, c.QueryInt("class_id"), params.Limit(), params.Offset())
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menyusun laporan SPP")
	}

	return helper.Success(c, "Laporan SPP berhasil disusun", fiber.Map{
		"items": rows,
		"meta":  helper.BuildMeta(total, params),
	})
}

// GET /api/a/reports/spp/export?period_id=&class_id=
//
// Menghasilkan file .xlsx siap unduh; tanpa pagination supaya laporan utuh.
func (ctrl *ReportController) ExportSPPReport(c *fiber.Ctx) error {
	periodID := c.QueryInt("period_id")
	if periodID <= 0 {
		return helper.Error(c, fiber.StatusBadRequest, "period_id wajib diisi")
	}

	rows, _, err := ctrl.queryReport(c, periodID, c.QueryInt("class_id"), 0, 0)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menyusun laporan SPP")
	}

	var periodName string
	ctrl.DB.WithContext(c.UserContext()).
		Table("academic_period").
		Select("academic_period_name").
		Where("academic_period_id = ?", periodID).
		Scan(&periodName)

	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Laporan SPP"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"No", "NIS", "Nama Siswa", "Kelas", "No. HP"}
	headers = append(headers, constants.SchoolYearMonths...)
	headers = append(headers, "Total Tagihan", "Total Dibayar", "Tunggakan", "Status")
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	for i, r := range rows {
		values := []any{i + 1, r.StudentNIS, r.StudentName, r.ClassName, r.Phone}
		for _, m := range r.Months {
			values = append(values, m.Status)
		}
		values = append(values, r.TotalBilled, r.TotalPaid, r.Arrears, r.Status)
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membuat file Excel")
	}

	filename := fmt.Sprintf("laporan-spp-%s-%s.xlsx",
		sanitizeFilename(periodName), time.Now().Format("20060102"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}

func sanitizeFilename(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			out = append(out, r)
		case r == '/' || r == ' ':
			out = append(out, '-')
		}
	}
	if len(out) == 0 {
		return "periode"
	}
	return string(out)
}
