package configs

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var (
	JWTSecret string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
		} else {
			log.Println("✅ .env file berhasil dimuat!")
		}
	} else {
		log.Println("🚀 Running in Railway, menggunakan ENV dari sistem")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET belum diset!")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

// =======================
// MIDTRANS CONFIG
// =======================

var (
	ErrMidtransIncomplete   = errors.New("konfigurasi Midtrans tidak lengkap: MIDTRANS_SERVER_KEY / MIDTRANS_CLIENT_KEY belum diset")
	ErrMidtransBadServerKey = errors.New("format Server Key Midtrans tidak valid: harus diawali 'SB-Mid-server-' (sandbox) atau 'Mid-server-' (production)")
	ErrMidtransBadClientKey = errors.New("format Client Key Midtrans tidak valid: harus diawali 'SB-Mid-client-' (sandbox) atau 'Mid-client-' (production)")
)

// MidtransConfig dibangun sekali saat bootstrap lalu di-inject ke gateway
// service. Logika rekonsiliasi tidak membaca env langsung supaya bisa dites
// dengan kredensial palsu.
type MidtransConfig struct {
	ServerKey    string
	ClientKey    string
	IsProduction bool
}

func LoadMidtransConfig() MidtransConfig {
	useProd := false
	if v := GetEnv("MIDTRANS_IS_PRODUCTION"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			useProd = b
		}
	}
	return MidtransConfig{
		ServerKey:    strings.TrimSpace(GetEnv("MIDTRANS_SERVER_KEY")),
		ClientKey:    strings.TrimSpace(GetEnv("MIDTRANS_CLIENT_KEY")),
		IsProduction: useProd,
	}
}

// Validate memastikan kredensial ada dan prefix-nya dikenali sebelum dipakai.
func (m MidtransConfig) Validate() error {
	if m.ServerKey == "" || m.ClientKey == "" {
		return ErrMidtransIncomplete
	}
	if !strings.HasPrefix(m.ServerKey, "SB-Mid-server-") && !strings.HasPrefix(m.ServerKey, "Mid-server-") {
		return ErrMidtransBadServerKey
	}
	if !strings.HasPrefix(m.ClientKey, "SB-Mid-client-") && !strings.HasPrefix(m.ClientKey, "Mid-client-") {
		return ErrMidtransBadClientKey
	}
	return nil
}
