package database

import (
	"log"

	apmodel "digischool_backend/internals/features/academics/academic_periods/model"
	classmodel "digischool_backend/internals/features/academics/classes/model"
	studentmodel "digischool_backend/internals/features/academics/students/model"
	billmodel "digischool_backend/internals/features/billing/bills/model"
	gwmodel "digischool_backend/internals/features/billing/gateway/model"
	paymodel "digischool_backend/internals/features/billing/payments/model"
	usermodel "digischool_backend/internals/features/users/model"
)

// Migrate menjalankan AutoMigrate untuk semua tabel. Urutan mengikuti arah
// foreign key: master dulu, baru ledger.
func Migrate() {
	log.Println("🛠 Menjalankan migrasi skema...")
	err := DB.AutoMigrate(
		&usermodel.User{},
		&apmodel.AcademicPeriod{},
		&classmodel.Class{},
		&studentmodel.Student{},
		&billmodel.Bill{},
		&paymodel.Payment{},
		&gwmodel.GatewayEvent{},
	)
	if err != nil {
		log.Fatalf("❌ Migrasi gagal: %v", err)
	}
	log.Println("✅ Migrasi selesai.")
}
