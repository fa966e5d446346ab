package dto

// ClassRequest dipakai create dan update.
type ClassRequest struct {
	Name  string `json:"name" validate:"required,max=64"`
	Level string `json:"level" validate:"required,max=16"`
}
