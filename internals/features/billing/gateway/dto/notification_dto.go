package dto

/* ===================== Request ===================== */

// MidtransNotification = body webhook HTTP notification Midtrans. Field lain
// yang ikut terkirim tetap tersimpan utuh di log event (payload mentah).
type MidtransNotification struct {
	OrderID           string `json:"order_id" validate:"required"`
	StatusCode        string `json:"status_code" validate:"required"`
	GrossAmount       string `json:"gross_amount" validate:"required"`
	SignatureKey      string `json:"signature_key" validate:"required"`
	TransactionStatus string `json:"transaction_status" validate:"required"`
	TransactionID     string `json:"transaction_id"`
	TransactionTime   string `json:"transaction_time"`
	SettlementTime    string `json:"settlement_time"`
	PaymentType       string `json:"payment_type"`
	FraudStatus       string `json:"fraud_status"`
}

/* ===================== Response ===================== */

// NotificationAck = balasan untuk Midtrans. Selalu status_code "200" untuk
// delivery yang diterima (termasuk duplikat) supaya Midtrans berhenti retry.
type NotificationAck struct {
	StatusCode    string `json:"status_code"`
	StatusMessage string `json:"status_message"`
}

func Ack(message string) NotificationAck {
	return NotificationAck{StatusCode: "200", StatusMessage: message}
}
