package controllers

import (
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

type OrderItemDTO struct {
	ProductTypeId string   `json:"product_type_id" validate:"required"`
	SizeId        string   `json:"size_id"`
	MaterialId    string   `json:"material_id"`
	AddonIds      []string `json:"addon_ids"`
	Quantity      int      `json:"quantity"`
}

type OrderCreateDTO struct {
	OrderNumber    string         `json:"order_number" validate:"required,min=1"`
	ClientId       uint           `json:"client_id" validate:"required"`
	SalesChannelId string         `json:"sales_channel_id"`
	Status         string         `json:"status" validate:"omitempty,oneof=draft confirmed in_progress done delivered"`
	Deposit        float64        `json:"deposit" validate:"gte=0"`
	DueDate        *time.Time     `json:"due_date"`
	Items          []OrderItemDTO `json:"items" validate:"required,min=1,dive"`
}

// priceOrderItems runs every line through the engine once and snapshots the
// result. This is the only place item prices are derived; create, update and
// invoice generation all go through it, so the formula cannot drift between
// call sites.
func priceOrderItems(cat pricing.Catalog, dtos []OrderItemDTO) ([]models.OrderItem, pricing.Breakdown) {
	items := make([]models.OrderItem, 0, len(dtos))
	engineItems := make([]pricing.Item, 0, len(dtos))

	for _, d := range dtos {
		it := pricing.Item{
			ProductTypeId: d.ProductTypeId,
			SizeId:        d.SizeId,
			MaterialId:    d.MaterialId,
			AddonIds:      d.AddonIds,
			Quantity:      d.Quantity,
		}
		engineItems = append(engineItems, it)

		unit := pricing.PriceItem(cat, it)
		qty := pricing.NormalizeQuantity(d.Quantity)
		items = append(items, models.OrderItem{
			ProductTypeId: d.ProductTypeId,
			SizeId:        d.SizeId,
			MaterialId:    d.MaterialId,
			AddonIds:      datatypes.JSONSlice[string](d.AddonIds),
			Quantity:      qty,
			UnitPrice:     utils.Round2(unit.Subtotal),
			LineTotal:     utils.Round2(unit.Subtotal * float64(qty)),
		})
	}

	agg := pricing.AggregateOrder(cat, engineItems)
	agg.BasePrice = utils.Round2(agg.BasePrice)
	agg.SizeModifier = utils.Round2(agg.SizeModifier)
	agg.MaterialModifier = utils.Round2(agg.MaterialModifier)
	agg.AddonsTotal = utils.Round2(agg.AddonsTotal)
	agg.Subtotal = utils.Round2(agg.Subtotal)
	agg.Total = utils.Round2(agg.Total)
	return items, agg
}

func applyBreakdown(order *models.Order, b pricing.Breakdown) {
	order.BasePrice = b.BasePrice
	order.SizeModifier = b.SizeModifier
	order.MaterialModifier = b.MaterialModifier
	order.AddonsTotal = b.AddonsTotal
	order.Subtotal = b.Subtotal
	order.Tax = b.Tax
	order.Total = b.Total
}

// applyLedger refreshes the payments rollup from the full ledger.
func applyLedger(order *models.Order, payments []models.Payment) {
	amounts := make([]float64, 0, len(payments))
	for _, p := range payments {
		amounts = append(amounts, p.Amount)
	}
	s := pricing.Balance(order.Total, amounts)
	order.PaidTotal = utils.Round2(s.Paid)
	order.Balance = utils.Round2(s.Balance)
}

// POST /api/order
func CreateOrder(c *fiber.Ctx) error {
	var in OrderCreateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	cat, err := LoadCatalog(db)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not load catalog")
	}

	items, breakdown := priceOrderItems(cat, in.Items)

	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = "draft"
	}

	order := models.Order{
		OrderNumber:    strings.TrimSpace(in.OrderNumber),
		ClientId:       in.ClientId,
		Items:          items,
		SalesChannelId: strings.TrimSpace(in.SalesChannelId),
		Status:         status,
		Deposit:        utils.Round2(in.Deposit),
		DueDate:        in.DueDate,
	}
	applyBreakdown(&order, breakdown)
	applyLedger(&order, nil)

	if err := db.Create(&order).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create order")
	}

	return c.Status(fiber.StatusCreated).JSON(order)
}

// PUT /api/orders/:id
// Items are replaced wholesale and the whole breakdown is recomputed; partial
// in-place price edits are not a thing.
func UpdateOrder(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing order id in path")
	}

	var in OrderCreateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	var order models.Order
	if err := db.First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	cat, err := LoadCatalog(db)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not load catalog")
	}

	items, breakdown := priceOrderItems(cat, in.Items)

	// Replace the live items.
	if err := db.Where("order_id = ?", order.Id).Delete(&models.OrderItem{}).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not replace order items")
	}
	for i := range items {
		items[i].OrderID = order.Id
	}
	if len(items) > 0 {
		if err := db.Create(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not replace order items")
		}
	}

	order.OrderNumber = strings.TrimSpace(in.OrderNumber)
	order.ClientId = in.ClientId
	order.SalesChannelId = strings.TrimSpace(in.SalesChannelId)
	if s := strings.TrimSpace(in.Status); s != "" {
		order.Status = s
	}
	order.Deposit = utils.Round2(in.Deposit)
	order.DueDate = in.DueDate
	applyBreakdown(&order, breakdown)

	var payments []models.Payment
	if err := db.Where("order_id = ?", order.Id).Find(&payments).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	applyLedger(&order, payments)

	if err := db.Save(&order).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not update order")
	}

	order.Items = items
	return c.JSON(order)
}

// GET /api/orders
func GetOrders(c *fiber.Ctx) error {
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	var orders []models.Order
	if err := db.Preload("Items").Preload("Client").Order("created_at DESC").Find(&orders).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(fiber.Map{"orders": orders})
}

// GET /api/order/:id
func GetOrder(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing order id in path")
	}

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	var order models.Order
	if err := db.Preload("Items").Preload("Client").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(order)
}

// DELETE /api/orders/:id
func DeleteOrder(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing order id in path")
	}

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	// Invoices are historical documents; an invoiced order stays.
	var invoiceCount int64
	if err := db.Model(&models.Invoice{}).Where("order_id = ?", id).Count(&invoiceCount).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	if invoiceCount > 0 {
		return fiber.NewError(fiber.StatusConflict, "order has invoices and cannot be deleted")
	}

	if err := db.Where("order_id = ?", id).Delete(&models.Payment{}).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not delete order payments")
	}

	res := db.Delete(&models.Order{}, "id = ?", id)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not delete order")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "order not found")
	}
	return c.JSON(fiber.Map{"message": "success"})
}
