package controllers

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"atelier-backend/database"
	"atelier-backend/middlewares"
	"atelier-backend/models"
	"atelier-backend/pricing"
	"atelier-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// InvoiceAdjustmentDTO is the per-generation input: discount, rush fee, tax
// and fee selections travel with the request, never on the order itself.
type InvoiceAdjustmentDTO struct {
	InvoiceNumber        string  `json:"invoice_number" validate:"required,min=1"`
	TaxRate              float64 `json:"tax_rate" validate:"gte=0,lte=100"`
	DiscountValue        float64 `json:"discount_value" validate:"gte=0"`
	DiscountType         string  `json:"discount_type" validate:"omitempty,oneof=percentage flat"`
	RushFeeValue         float64 `json:"rush_fee_value" validate:"gte=0"`
	RushFeeType          string  `json:"rush_fee_type" validate:"omitempty,oneof=percentage flat"`
	EnableProcessingFees bool    `json:"enable_processing_fees"`
	PaymentFeeId         string  `json:"payment_fee_id"`
	ChannelFeeId         string  `json:"channel_fee_id"`
	EnableLateFee        bool    `json:"enable_late_fee"`
	LateFeePercent       float64 `json:"late_fee_percent" validate:"gte=0,lte=100"`
	DepositPaid          float64 `json:"deposit_paid" validate:"gte=0"`
}

// POST /api/orders/:id/invoice
func GenerateInvoice(c *fiber.Ctx) error {
	orderID := strings.TrimSpace(c.Params("id"))
	if orderID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing order id in path")
	}

	var in InvoiceAdjustmentDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	var order models.Order
	if err := db.Preload("Items").First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	cat, err := LoadCatalog(db)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not load catalog")
	}

	// Re-derive line prices from the current catalog rather than trusting the
	// stored snapshot; stale snapshots would leak superseded prices into the
	// invoice.
	lines := make([]pricing.Line, 0, len(order.Items))
	for _, it := range order.Items {
		unit := pricing.PriceItem(cat, pricing.Item{
			ProductTypeId: it.ProductTypeId,
			SizeId:        it.SizeId,
			MaterialId:    it.MaterialId,
			AddonIds:      []string(it.AddonIds),
			Quantity:      it.Quantity,
		})
		lines = append(lines, pricing.Line{Price: unit.Subtotal, Quantity: it.Quantity})
	}

	cfg := pricing.AdjustmentConfig{
		TaxRate:              in.TaxRate,
		DiscountValue:        in.DiscountValue,
		DiscountType:         in.DiscountType,
		RushFeeValue:         in.RushFeeValue,
		RushFeeType:          in.RushFeeType,
		EnableProcessingFees: in.EnableProcessingFees,
		PaymentFeeId:         in.PaymentFeeId,
		ChannelFeeId:         in.ChannelFeeId,
		EnableLateFee:        in.EnableLateFee,
		LateFeePercent:       in.LateFeePercent,
		DepositPaid:          in.DepositPaid,
	}

	totals := pricing.ApplyAdjustments(cat, lines, cfg)

	snapshot, err := json.Marshal(order.Items)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not snapshot order items")
	}

	invoice := models.Invoice{
		InvoiceNumber:        strings.TrimSpace(in.InvoiceNumber),
		OrderID:              order.Id,
		TaxRate:              in.TaxRate,
		DiscountValue:        in.DiscountValue,
		DiscountType:         in.DiscountType,
		RushFeeValue:         in.RushFeeValue,
		RushFeeType:          in.RushFeeType,
		EnableProcessingFees: in.EnableProcessingFees,
		PaymentFeeId:         in.PaymentFeeId,
		ChannelFeeId:         in.ChannelFeeId,
		LateFeePercent:       in.LateFeePercent,
		Subtotal:             utils.Round2(totals.Subtotal),
		Discount:             utils.Round2(totals.Discount),
		RushFee:              utils.Round2(totals.RushFee),
		Tax:                  utils.Round2(totals.Tax),
		ProcessingFee:        utils.Round2(totals.ProcessingFee),
		Total:                utils.Round2(totals.Total),
		DepositPaid:          utils.Round2(totals.DepositPaid),
		BalanceDue:           utils.Round2(totals.BalanceDue),
		Snapshot:             datatypes.JSON(snapshot),
	}

	if err := db.Create(&invoice).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create invoice")
	}

	resp := fiber.Map{"invoice": invoice}
	if order.DueDate != nil {
		if late, ok := pricing.LateCharge(totals, cfg, *order.DueDate, time.Now()); ok {
			resp["late_fee"] = utils.Round2(late.LateFee)
			resp["days_overdue"] = late.DaysOverdue
		}
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GET /api/invoices
func GetInvoices(c *fiber.Ctx) error {
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	var invoices []models.Invoice
	if err := db.Order("created_at DESC").Find(&invoices).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(fiber.Map{"invoices": invoices})
}

// GET /api/invoice/:id
func GetInvoice(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing invoice id in path")
	}

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	var invoice models.Invoice
	if err := db.First(&invoice, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "invoice not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(invoice)
}
