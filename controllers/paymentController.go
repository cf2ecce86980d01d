package controllers

import (
	"errors"
	"strings"
	"time"

	"atelier-backend/database"
	"atelier-backend/middlewares"
	"atelier-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type PaymentCreateDTO struct {
	Amount    float64    `json:"amount" validate:"required,gt=0"`
	Method    string     `json:"method" validate:"required,min=1"`
	Reference string     `json:"reference" validate:"omitempty"`
	Note      string     `json:"note" validate:"omitempty"`
	PaidAt    *time.Time `json:"paid_at"`
}

// POST /api/orders/:id/payments
// The amount>0 check lives here at the boundary; the engine itself never
// rejects a ledger.
func CreatePayment(c *fiber.Ctx) error {
	orderID := strings.TrimSpace(c.Params("id"))
	if orderID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing order id in path")
	}

	var in PaymentCreateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	var order models.Order
	if err := db.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	paidAt := time.Now().UTC()
	if in.PaidAt != nil {
		paidAt = *in.PaidAt
	}

	payment := models.Payment{
		OrderID:   order.Id,
		Amount:    in.Amount,
		Method:    strings.TrimSpace(in.Method),
		Reference: strings.TrimSpace(in.Reference),
		Note:      strings.TrimSpace(in.Note),
		PaidAt:    paidAt,
	}
	if err := db.Create(&payment).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not record payment")
	}

	if err := refreshOrderLedger(db, &order); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not refresh balance")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"payment":    payment,
		"paid_total": order.PaidTotal,
		"balance":    order.Balance,
	})
}

// GET /api/orders/:id/payments
func ListPayments(c *fiber.Ctx) error {
	orderID := strings.TrimSpace(c.Params("id"))
	if orderID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing order id in path")
	}

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	var order models.Order
	if err := db.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	var payments []models.Payment
	if err := db.Where("order_id = ?", orderID).Order("paid_at ASC").Find(&payments).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	return c.JSON(fiber.Map{
		"payments":   payments,
		"paid_total": order.PaidTotal,
		"balance":    order.Balance,
	})
}

// DELETE /api/orders/:id/payments/:paymentId
// Payments are never edited; removing one is the only other ledger mutation,
// and the rollup is recomputed from what remains.
func DeletePayment(c *fiber.Ctx) error {
	orderID := strings.TrimSpace(c.Params("id"))
	paymentID := strings.TrimSpace(c.Params("paymentId"))
	if orderID == "" || paymentID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing order or payment id in path")
	}

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	var order models.Order
	if err := db.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	res := db.Where("order_id = ?", orderID).Delete(&models.Payment{}, "id = ?", paymentID)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not delete payment")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "payment not found")
	}

	if err := refreshOrderLedger(db, &order); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not refresh balance")
	}

	return c.JSON(fiber.Map{
		"message":    "success",
		"paid_total": order.PaidTotal,
		"balance":    order.Balance,
	})
}

func refreshOrderLedger(db *gorm.DB, order *models.Order) error {
	var payments []models.Payment
	if err := db.Where("order_id = ?", order.Id).Find(&payments).Error; err != nil {
		return err
	}
	applyLedger(order, payments)
	return db.Model(&models.Order{}).Where("id = ?", order.Id).Updates(map[string]any{
		"paid_total": order.PaidTotal,
		"balance":    order.Balance,
	}).Error
}
