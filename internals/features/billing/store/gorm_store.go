package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apmodel "digischool_backend/internals/features/academics/academic_periods/model"
	studentmodel "digischool_backend/internals/features/academics/students/model"
	billmodel "digischool_backend/internals/features/billing/bills/model"
	gwmodel "digischool_backend/internals/features/billing/gateway/model"
	paymodel "digischool_backend/internals/features/billing/payments/model"
)

// GormLedger implementasi Ledger di atas GORM/Postgres.
type GormLedger struct {
	db *gorm.DB
}

func NewGormLedger(db *gorm.DB) *GormLedger { return &GormLedger{db: db} }

func (s *GormLedger) InTx(ctx context.Context, fn func(Ledger) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormLedger{db: tx})
	})
}

/* ===================== Bills ===================== */

func (s *GormLedger) BillByID(ctx context.Context, id uint) (*billmodel.Bill, error) {
	var b billmodel.Bill
	if err := s.db.WithContext(ctx).First(&b, "bill_id = ?", id).Error; err != nil {
		return nil, mapErr(err)
	}
	return &b, nil
}

func (s *GormLedger) BillByIDLocked(ctx context.Context, id uint) (*billmodel.Bill, error) {
	var b billmodel.Bill
	if err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&b, "bill_id = ?", id).Error; err != nil {
		return nil, mapErr(err)
	}
	return &b, nil
}

func (s *GormLedger) BillByOrderID(ctx context.Context, orderID string) (*billmodel.Bill, error) {
	var b billmodel.Bill
	if err := s.db.WithContext(ctx).First(&b, "bill_midtrans_order_id = ?", orderID).Error; err != nil {
		return nil, mapErr(err)
	}
	return &b, nil
}

func (s *GormLedger) BillByOrderIDLocked(ctx context.Context, orderID string) (*billmodel.Bill, error) {
	var b billmodel.Bill
	if err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&b, "bill_midtrans_order_id = ?", orderID).Error; err != nil {
		return nil, mapErr(err)
	}
	return &b, nil
}

func (s *GormLedger) CountBillsForStudentPeriod(ctx context.Context, studentID, periodID uint) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&billmodel.Bill{}).
		Where("bill_student_id = ? AND bill_period_id = ?", studentID, periodID).
		Count(&n).Error
	return n, err
}

func (s *GormLedger) CountBillsForPeriod(ctx context.Context, periodID uint) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&billmodel.Bill{}).
		Where("bill_period_id = ?", periodID).Count(&n).Error
	return n, err
}

func (s *GormLedger) CountBillsForStudent(ctx context.Context, studentID uint) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&billmodel.Bill{}).
		Where("bill_student_id = ?", studentID).Count(&n).Error
	return n, err
}

func (s *GormLedger) CreateBills(ctx context.Context, bills []*billmodel.Bill) error {
	if err := s.db.WithContext(ctx).Create(bills).Error; err != nil {
		return mapErr(err)
	}
	return nil
}

func (s *GormLedger) SaveBill(ctx context.Context, b *billmodel.Bill) error {
	b.UpdatedAt = time.Now()
	return mapErr(s.db.WithContext(ctx).Save(b).Error)
}

func (s *GormLedger) DeleteBill(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&billmodel.Bill{}, "bill_id = ?", id)
	if res.Error != nil {
		return mapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormLedger) PeriodByID(ctx context.Context, id uint) (*apmodel.AcademicPeriod, error) {
	var p apmodel.AcademicPeriod
	if err := s.db.WithContext(ctx).First(&p, "academic_period_id = ?", id).Error; err != nil {
		return nil, mapErr(err)
	}
	return &p, nil
}

func (s *GormLedger) StudentByID(ctx context.Context, id uint) (*studentmodel.Student, error) {
	var st studentmodel.Student
	if err := s.db.WithContext(ctx).First(&st, "student_id = ?", id).Error; err != nil {
		return nil, mapErr(err)
	}
	return &st, nil
}

/* ===================== Payments ===================== */

func (s *GormLedger) PaymentByID(ctx context.Context, id uint) (*paymodel.Payment, error) {
	var p paymodel.Payment
	if err := s.db.WithContext(ctx).First(&p, "payment_id = ?", id).Error; err != nil {
		return nil, mapErr(err)
	}
	return &p, nil
}

func (s *GormLedger) PaymentByBillID(ctx context.Context, billID uint) (*paymodel.Payment, error) {
	var p paymodel.Payment
	err := s.db.WithContext(ctx).First(&p, "payment_bill_id = ?", billID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (s *GormLedger) CreatePayment(ctx context.Context, p *paymodel.Payment) error {
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return mapErr(err)
	}
	return nil
}

func (s *GormLedger) SavePayment(ctx context.Context, p *paymodel.Payment) error {
	p.UpdatedAt = time.Now()
	return mapErr(s.db.WithContext(ctx).Save(p).Error)
}

func (s *GormLedger) DeletePayment(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&paymodel.Payment{}, "payment_id = ?", id)
	if res.Error != nil {
		return mapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

/* ===================== Gateway events ===================== */

func (s *GormLedger) CreateEvent(ctx context.Context, ev *gwmodel.GatewayEvent) error {
	if err := s.db.WithContext(ctx).Create(ev).Error; err != nil {
		return mapErr(err)
	}
	return nil
}

func (s *GormLedger) MarkEvent(ctx context.Context, orderID, eventType, status string, errMsg *string) error {
	now := time.Now()
	return s.db.WithContext(ctx).Model(&gwmodel.GatewayEvent{}).
		Where("gateway_event_order_id = ? AND gateway_event_type = ?", orderID, eventType).
		Updates(map[string]any{
			"gateway_event_status":       status,
			"gateway_event_error":        errMsg,
			"gateway_event_processed_at": now,
		}).Error
}

/* ===================== Error mapping ===================== */

func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	// fallback untuk driver yang tidak menerjemahkan unique violation
	if strings.Contains(strings.ToLower(err.Error()), "duplicate") {
		return ErrDuplicate
	}
	return err
}
