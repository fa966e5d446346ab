package service

import (
	"crypto/sha512"
	"encoding/hex"
	"strings"
)

// ComputeSignature menghitung signature notifikasi Midtrans:
// SHA-512(order_id + status_code + gross_amount + server_key), hex lowercase.
func ComputeSignature(orderID, statusCode, grossAmount, serverKey string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(sum[:])
}

// VerifySignature membandingkan signature kiriman dengan hasil hitung lokal,
// case-insensitive (Midtrans mengirim hex lowercase, tapi jangan gagal hanya
// karena beda kapitalisasi).
func VerifySignature(got, orderID, statusCode, grossAmount, serverKey string) bool {
	want := ComputeSignature(orderID, statusCode, grossAmount, serverKey)
	return strings.EqualFold(strings.TrimSpace(got), want)
}
