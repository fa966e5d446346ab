package dto

// StudentRequest dipakai create dan update (full replace).
type StudentRequest struct {
	NIS       string  `json:"nis" validate:"required,max=32"`
	Name      string  `json:"name" validate:"required,max=128"`
	Gender    string  `json:"gender" validate:"required,oneof=L P"`
	Address   *string `json:"address"`
	BirthDate *string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Phone     *string `json:"phone" validate:"omitempty,max=20"`
	Email     *string `json:"email" validate:"omitempty,email"`
	ClassID   uint    `json:"class_id" validate:"required,gt=0"`
}
