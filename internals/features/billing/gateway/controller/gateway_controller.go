package controller

import (
	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"digischool_backend/internals/configs"
	"digischool_backend/internals/features/billing/gateway/dto"
	"digischool_backend/internals/features/billing/gateway/service"
	"digischool_backend/internals/features/billing/store"
	helper "digischool_backend/internals/helpers"
)

var validate = validator.New()

type GatewayController struct {
	Initiate   *service.InitiateService
	Reconciler *service.Reconciler
}

func NewGatewayController(ledger store.Ledger, snap service.SnapGateway, cfg configs.MidtransConfig) *GatewayController {
	return &GatewayController{
		Initiate:   service.NewInitiateService(ledger, snap, cfg),
		Reconciler: service.NewReconciler(ledger, cfg),
	}
}

// POST /api/a/bills/:id/pay — buat transaksi Snap untuk satu tagihan.
func (ctrl *GatewayController) InitiateTransaction(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helper.Error(c, fiber.StatusBadRequest, "ID tagihan tidak valid")
	}

	res, err := ctrl.Initiate.Initiate(c.UserContext(), uint(id))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Transaksi pembayaran berhasil dibuat", res)
}

// POST /api/public/midtrans/notification — webhook Midtrans.
//
// Body dan header mentah ikut disimpan di log event; respons sukses memakai
// envelope ack Midtrans, bukan envelope helper, karena yang membaca adalah
// Midtrans.
func (ctrl *GatewayController) HandleNotification(c *fiber.Ctx) error {
	var n dto.MidtransNotification
	if err := c.BodyParser(&n); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Body notifikasi tidak valid")
	}
	if err := validate.Struct(n); err != nil {
		return helper.ValidationError(c, err)
	}

	raw := make([]byte, len(c.Body()))
	copy(raw, c.Body())
	headers, _ := sonic.Marshal(c.GetReqHeaders())

	ack, err := ctrl.Reconciler.HandleNotification(c.UserContext(), n, raw, headers)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ack)
}
