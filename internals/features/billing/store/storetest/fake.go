// Package storetest menyediakan Ledger in-memory untuk unit test service
// billing tanpa Postgres. Perilaku meniru GormLedger: ErrNotFound /
// ErrDuplicate, termasuk unique index payment_bill_id dan dedupe event.
package storetest

import (
	"context"
	"sync"

	apmodel "digischool_backend/internals/features/academics/academic_periods/model"
	studentmodel "digischool_backend/internals/features/academics/students/model"
	billmodel "digischool_backend/internals/features/billing/bills/model"
	gwmodel "digischool_backend/internals/features/billing/gateway/model"
	paymodel "digischool_backend/internals/features/billing/payments/model"
	"digischool_backend/internals/features/billing/store"
)

type FakeLedger struct {
	mu sync.Mutex

	Periods  map[uint]*apmodel.AcademicPeriod
	Students map[uint]*studentmodel.Student
	Bills    map[uint]*billmodel.Bill
	Payments map[uint]*paymodel.Payment
	Events   []*gwmodel.GatewayEvent

	nextBillID    uint
	nextPaymentID uint
}

func NewFakeLedger() *FakeLedger {
	return &FakeLedger{
		Periods:       map[uint]*apmodel.AcademicPeriod{},
		Students:      map[uint]*studentmodel.Student{},
		Bills:         map[uint]*billmodel.Bill{},
		Payments:      map[uint]*paymodel.Payment{},
		nextBillID:    1,
		nextPaymentID: 1,
	}
}

func (f *FakeLedger) InTx(ctx context.Context, fn func(store.Ledger) error) error {
	// cukup serialisasi; rollback tidak disimulasikan karena test selalu
	// memeriksa state akhir lewat jalur sukses/gagal yang eksplisit
	return fn(f)
}

/* ===================== Bills ===================== */

func (f *FakeLedger) BillByID(ctx context.Context, id uint) (*billmodel.Bill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.Bills[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *FakeLedger) BillByIDLocked(ctx context.Context, id uint) (*billmodel.Bill, error) {
	return f.BillByID(ctx, id)
}

func (f *FakeLedger) BillByOrderID(ctx context.Context, orderID string) (*billmodel.Bill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.Bills {
		if b.BillMidtransOrderID != nil && *b.BillMidtransOrderID == orderID {
			cp := *b
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *FakeLedger) BillByOrderIDLocked(ctx context.Context, orderID string) (*billmodel.Bill, error) {
	return f.BillByOrderID(ctx, orderID)
}

func (f *FakeLedger) CountBillsForStudentPeriod(ctx context.Context, studentID, periodID uint) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, b := range f.Bills {
		if b.BillStudentID == studentID && b.BillPeriodID == periodID {
			n++
		}
	}
	return n, nil
}

func (f *FakeLedger) CountBillsForPeriod(ctx context.Context, periodID uint) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, b := range f.Bills {
		if b.BillPeriodID == periodID {
			n++
		}
	}
	return n, nil
}

func (f *FakeLedger) CountBillsForStudent(ctx context.Context, studentID uint) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, b := range f.Bills {
		if b.BillStudentID == studentID {
			n++
		}
	}
	return n, nil
}

func (f *FakeLedger) CreateBills(ctx context.Context, bills []*billmodel.Bill) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range bills {
		for _, ex := range f.Bills {
			if ex.BillStudentID == b.BillStudentID && ex.BillPeriodID == b.BillPeriodID && ex.BillMonth == b.BillMonth {
				return store.ErrDuplicate
			}
		}
	}
	for _, b := range bills {
		b.BillID = f.nextBillID
		f.nextBillID++
		cp := *b
		f.Bills[b.BillID] = &cp
	}
	return nil
}

func (f *FakeLedger) SaveBill(ctx context.Context, b *billmodel.Bill) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.Bills[b.BillID]; !ok {
		return store.ErrNotFound
	}
	cp := *b
	f.Bills[b.BillID] = &cp
	return nil
}

func (f *FakeLedger) DeleteBill(ctx context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.Bills[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.Bills, id)
	return nil
}

func (f *FakeLedger) PeriodByID(ctx context.Context, id uint) (*apmodel.AcademicPeriod, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.Periods[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *FakeLedger) StudentByID(ctx context.Context, id uint) (*studentmodel.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.Students[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

/* ===================== Payments ===================== */

func (f *FakeLedger) PaymentByID(ctx context.Context, id uint) (*paymodel.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.Payments[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *FakeLedger) PaymentByBillID(ctx context.Context, billID uint) (*paymodel.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.Payments {
		if p.PaymentBillID == billID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *FakeLedger) CreatePayment(ctx context.Context, p *paymodel.Payment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ex := range f.Payments {
		if ex.PaymentBillID == p.PaymentBillID {
			return store.ErrDuplicate
		}
	}
	p.PaymentID = f.nextPaymentID
	f.nextPaymentID++
	cp := *p
	f.Payments[p.PaymentID] = &cp
	return nil
}

func (f *FakeLedger) SavePayment(ctx context.Context, p *paymodel.Payment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.Payments[p.PaymentID]; !ok {
		return store.ErrNotFound
	}
	for _, ex := range f.Payments {
		if ex.PaymentID != p.PaymentID && ex.PaymentBillID == p.PaymentBillID {
			return store.ErrDuplicate
		}
	}
	cp := *p
	f.Payments[p.PaymentID] = &cp
	return nil
}

func (f *FakeLedger) DeletePayment(ctx context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.Payments[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.Payments, id)
	return nil
}

/* ===================== Gateway events ===================== */

func (f *FakeLedger) CreateEvent(ctx context.Context, ev *gwmodel.GatewayEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ex := range f.Events {
		if ex.GatewayEventOrderID == ev.GatewayEventOrderID && ex.GatewayEventType == ev.GatewayEventType {
			return store.ErrDuplicate
		}
	}
	f.Events = append(f.Events, ev)
	return nil
}

func (f *FakeLedger) MarkEvent(ctx context.Context, orderID, eventType, status string, errMsg *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ev := range f.Events {
		if ev.GatewayEventOrderID == orderID && ev.GatewayEventType == eventType {
			ev.GatewayEventStatus = status
			ev.GatewayEventError = errMsg
		}
	}
	return nil
}

var _ store.Ledger = (*FakeLedger)(nil)
