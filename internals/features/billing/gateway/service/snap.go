package service

import (
	"context"
	"fmt"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

// TransactionParams = data minimum untuk membuat transaksi Snap.
type TransactionParams struct {
	OrderID      string
	GrossAmount  int64
	StudentName  string
	StudentEmail string
	StudentPhone string
	Description  string
}

// SnapResult = hasil pembuatan transaksi di Midtrans.
type SnapResult struct {
	Token       string
	RedirectURL string
}

// SnapGateway mengabstraksi Snap API supaya InitiateService bisa dites tanpa
// memanggil Midtrans sungguhan.
type SnapGateway interface {
	CreateTransaction(ctx context.Context, p TransactionParams) (*SnapResult, error)
}

// ErrGatewayUnauthorized menandai kredensial ditolak Midtrans (HTTP 401);
// pemanggil memetakan ini ke kesalahan konfigurasi, bukan kesalahan gateway.
var ErrGatewayUnauthorized = fmt.Errorf("kredensial Midtrans ditolak")

/* ===================== Implementasi midtrans-go ===================== */

type MidtransSnap struct {
	client snap.Client
}

// NewMidtransSnap membangun client Snap; useProduction memilih environment.
func NewMidtransSnap(serverKey string, useProduction bool) *MidtransSnap {
	g := &MidtransSnap{}
	if useProduction {
		g.client.New(serverKey, midtrans.Production)
	} else {
		g.client.New(serverKey, midtrans.Sandbox)
	}
	return g
}

// CreateTransaction memanggil Snap API. SDK tidak menerima context, jadi
// panggilan dibungkus goroutine dan di-race dengan ctx; goroutine yang telat
// selesai hasilnya dibuang.
func (g *MidtransSnap) CreateTransaction(ctx context.Context, p TransactionParams) (*SnapResult, error) {
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  p.OrderID,
			GrossAmt: p.GrossAmount,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: p.StudentName,
			Email: p.StudentEmail,
			Phone: p.StudentPhone,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:       p.OrderID,
				Price:    p.GrossAmount,
				Qty:      1,
				Name:     p.Description,
				Category: "SPP",
			},
		},
	}

	type result struct {
		resp *snap.Response
		err  *midtrans.Error
	}
	ch := make(chan result, 1)
	go func() {
		resp, err := g.client.CreateTransaction(req)
		ch <- result{resp: resp, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.err != nil {
			if r.err.StatusCode == 401 {
				return nil, ErrGatewayUnauthorized
			}
			return nil, r.err
		}
		return &SnapResult{Token: r.resp.Token, RedirectURL: r.resp.RedirectURL}, nil
	}
}
