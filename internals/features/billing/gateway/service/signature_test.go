package service

import (
	"strings"
	"testing"
)

// sha512("SPP-1-1000" + "200" + "50000" + "SB-Mid-server-testsecret")
const wantSignature = "e572c43100885328e80d36af93f6d0734b997a4f5fdb449aea37d8a048ef0c6e3d3b48aba7e2ed944ea5bec629b6ae86937b60af7e7c8fe010f7d8f7829dfc76"

func TestComputeSignature(t *testing.T) {
	got := ComputeSignature("SPP-1-1000", "200", "50000", "SB-Mid-server-testsecret")
	if got != wantSignature {
		t.Fatalf("signature = %s, mau %s", got, wantSignature)
	}
}

func TestVerifySignatureCaseInsensitive(t *testing.T) {
	if !VerifySignature(wantSignature, "SPP-1-1000", "200", "50000", "SB-Mid-server-testsecret") {
		t.Fatal("signature valid ditolak")
	}
	if !VerifySignature(strings.ToUpper(wantSignature), "SPP-1-1000", "200", "50000", "SB-Mid-server-testsecret") {
		t.Fatal("signature uppercase ditolak")
	}
	if VerifySignature(wantSignature, "SPP-1-1000", "200", "50001", "SB-Mid-server-testsecret") {
		t.Fatal("signature dengan gross berbeda harusnya ditolak")
	}
	if VerifySignature("", "SPP-1-1000", "200", "50000", "SB-Mid-server-testsecret") {
		t.Fatal("signature kosong harusnya ditolak")
	}
}
