package controllers

import (
	"errors"
	"strings"

	"atelier-backend/database"
	"atelier-backend/middlewares"
	"atelier-backend/models"
	"atelier-backend/pricing"
	"atelier-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// LoadCatalog assembles the pricing lookup tables from the tenant's active
// catalog rows. All price derivation reads through this snapshot; handlers
// never hand raw rows to the engine.
func LoadCatalog(db *gorm.DB) (pricing.Catalog, error) {
	cat := pricing.Catalog{
		ProductTypes: map[string]pricing.ProductEntry{},
		Sizes:        map[string]pricing.Modifier{},
		Materials:    map[string]pricing.Modifier{},
		Addons:       map[string]pricing.AddonEntry{},
		PaymentFees:  map[string]pricing.FeeRule{},
		ChannelFees:  map[string]pricing.FeeRule{},
	}

	var products []models.ProductType
	if err := db.Where("active = ?", true).Find(&products).Error; err != nil {
		return cat, err
	}
	for _, p := range products {
		cat.ProductTypes[p.Id] = pricing.ProductEntry{BasePrice: p.BasePrice, Category: p.Category}
	}

	var sizes []models.SizeOption
	if err := db.Where("active = ?", true).Find(&sizes).Error; err != nil {
		return cat, err
	}
	for _, s := range sizes {
		cat.Sizes[s.Id] = pricing.Modifier{PriceModifier: s.PriceModifier}
	}

	var materials []models.MaterialOption
	if err := db.Where("active = ?", true).Find(&materials).Error; err != nil {
		return cat, err
	}
	for _, m := range materials {
		cat.Materials[m.Id] = pricing.Modifier{PriceModifier: m.PriceModifier}
	}

	var addons []models.Addon
	if err := db.Where("active = ?", true).Find(&addons).Error; err != nil {
		return cat, err
	}
	for _, a := range addons {
		cat.Addons[a.Id] = pricing.AddonEntry{Price: a.Price}
	}

	var fees []models.FeeRule
	if err := db.Where("active = ?", true).Find(&fees).Error; err != nil {
		return cat, err
	}
	for _, f := range fees {
		rule := pricing.FeeRule{Label: f.Label, Rate: f.Rate, Fixed: f.Fixed}
		switch f.Kind {
		case models.FeeKindPayment:
			cat.PaymentFees[f.Id] = rule
		case models.FeeKindChannel:
			cat.ChannelFees[f.Id] = rule
		}
	}

	return cat, nil
}

// GET /api/catalog
func GetCatalog(c *fiber.Ctx) error {
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	var (
		products  []models.ProductType
		sizes     []models.SizeOption
		materials []models.MaterialOption
		addons    []models.Addon
		fees      []models.FeeRule
	)
	if err := db.Where("active = ?", true).Find(&products).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	db.Where("active = ?", true).Find(&sizes)
	db.Where("active = ?", true).Find(&materials)
	db.Where("active = ?", true).Find(&addons)
	db.Where("active = ?", true).Find(&fees)

	return c.JSON(fiber.Map{
		"product_types": products,
		"sizes":         sizes,
		"materials":     materials,
		"addons":        addons,
		"fee_rules":     fees,
	})
}

type ProductTypeCreateDTO struct {
	Name      string  `json:"name" validate:"required,min=1"`
	Category  string  `json:"category" validate:"omitempty"`
	BasePrice float64 `json:"base_price" validate:"gte=0"`
}

type ProductTypeUpdateDTO struct {
	Name      *string  `json:"name" validate:"omitempty,min=1"`
	Category  *string  `json:"category" validate:"omitempty"`
	BasePrice *float64 `json:"base_price" validate:"omitempty,gte=0"`
}

// POST /api/catalog/product-types (batch)
func CreateProductTypes(c *fiber.Ctx) error {
	var inputs []ProductTypeCreateDTO
	if err := c.BodyParser(&inputs); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	var created []models.ProductType
	for i := range inputs {
		if err := middlewares.ValidateStruct(&inputs[i]); err != nil {
			return err
		}
		utils.NormalizeDTO(&inputs[i])

		pt := models.ProductType{
			Name:      inputs[i].Name,
			Category:  inputs[i].Category,
			BasePrice: inputs[i].BasePrice,
			Active:    true,
		}
		if err := db.Create(&pt).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not create product type")
		}
		created = append(created, pt)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// PATCH /api/catalog/product-types/:id
func UpdateProductType(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing product type id in path")
	}

	var in ProductTypeUpdateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&in)

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	var existing models.ProductType
	if err := db.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "product type not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	updates := utils.UpdatesFromPtrDTO(&in, nil)
	if len(updates) > 0 {
		if err := db.Model(&models.ProductType{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not update product type")
		}
	}

	var out models.ProductType
	if err := db.First(&out, "id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to reload product type")
	}
	return c.JSON(out)
}

type ModifierCreateDTO struct {
	Name          string  `json:"name" validate:"required,min=1"`
	PriceModifier float64 `json:"price_modifier" validate:"gte=0"`
}

type ModifierUpdateDTO struct {
	Name          *string  `json:"name" validate:"omitempty,min=1"`
	PriceModifier *float64 `json:"price_modifier" validate:"omitempty,gte=0"`
}

// POST /api/catalog/sizes (batch)
func CreateSizeOptions(c *fiber.Ctx) error {
	var inputs []ModifierCreateDTO
	if err := c.BodyParser(&inputs); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	var created []models.SizeOption
	for i := range inputs {
		if err := middlewares.ValidateStruct(&inputs[i]); err != nil {
			return err
		}
		utils.NormalizeDTO(&inputs[i])

		size := models.SizeOption{Name: inputs[i].Name, PriceModifier: inputs[i].PriceModifier, Active: true}
		if err := db.Create(&size).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not create size option")
		}
		created = append(created, size)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// PATCH /api/catalog/sizes/:id
func UpdateSizeOption(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing size id in path")
	}

	var in ModifierUpdateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&in)

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	var existing models.SizeOption
	if err := db.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "size option not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	updates := utils.UpdatesFromPtrDTO(&in, nil)
	if len(updates) > 0 {
		if err := db.Model(&models.SizeOption{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not update size option")
		}
	}

	var out models.SizeOption
	if err := db.First(&out, "id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to reload size option")
	}
	return c.JSON(out)
}

// POST /api/catalog/materials (batch)
func CreateMaterialOptions(c *fiber.Ctx) error {
	var inputs []ModifierCreateDTO
	if err := c.BodyParser(&inputs); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	var created []models.MaterialOption
	for i := range inputs {
		if err := middlewares.ValidateStruct(&inputs[i]); err != nil {
			return err
		}
		utils.NormalizeDTO(&inputs[i])

		mat := models.MaterialOption{Name: inputs[i].Name, PriceModifier: inputs[i].PriceModifier, Active: true}
		if err := db.Create(&mat).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not create material option")
		}
		created = append(created, mat)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// PATCH /api/catalog/materials/:id
func UpdateMaterialOption(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing material id in path")
	}

	var in ModifierUpdateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&in)

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	var existing models.MaterialOption
	if err := db.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "material option not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	updates := utils.UpdatesFromPtrDTO(&in, nil)
	if len(updates) > 0 {
		if err := db.Model(&models.MaterialOption{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not update material option")
		}
	}

	var out models.MaterialOption
	if err := db.First(&out, "id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to reload material option")
	}
	return c.JSON(out)
}

type AddonCreateDTO struct {
	Name  string  `json:"name" validate:"required,min=1"`
	Price float64 `json:"price" validate:"gte=0"`
}

type AddonUpdateDTO struct {
	Name  *string  `json:"name" validate:"omitempty,min=1"`
	Price *float64 `json:"price" validate:"omitempty,gte=0"`
}

// POST /api/catalog/addons (batch)
func CreateAddons(c *fiber.Ctx) error {
	var inputs []AddonCreateDTO
	if err := c.BodyParser(&inputs); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	var created []models.Addon
	for i := range inputs {
		if err := middlewares.ValidateStruct(&inputs[i]); err != nil {
			return err
		}
		utils.NormalizeDTO(&inputs[i])

		addon := models.Addon{Name: inputs[i].Name, Price: inputs[i].Price, Active: true}
		if err := db.Create(&addon).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not create addon")
		}
		created = append(created, addon)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// PATCH /api/catalog/addons/:id
func UpdateAddon(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing addon id in path")
	}

	var in AddonUpdateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&in)

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	var existing models.Addon
	if err := db.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "addon not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	updates := utils.UpdatesFromPtrDTO(&in, nil)
	if len(updates) > 0 {
		if err := db.Model(&models.Addon{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not update addon")
		}
	}

	var out models.Addon
	if err := db.First(&out, "id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to reload addon")
	}
	return c.JSON(out)
}

type FeeRuleCreateDTO struct {
	Kind  string  `json:"kind" validate:"required,oneof=payment channel"`
	Label string  `json:"label" validate:"required,min=1"`
	Rate  float64 `json:"rate" validate:"gte=0,lte=100"`
	Fixed float64 `json:"fixed" validate:"gte=0"`
}

type FeeRuleUpdateDTO struct {
	Label *string  `json:"label" validate:"omitempty,min=1"`
	Rate  *float64 `json:"rate" validate:"omitempty,gte=0,lte=100"`
	Fixed *float64 `json:"fixed" validate:"omitempty,gte=0"`
}

// POST /api/catalog/fees (batch)
func CreateFeeRules(c *fiber.Ctx) error {
	var inputs []FeeRuleCreateDTO
	if err := c.BodyParser(&inputs); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	var created []models.FeeRule
	for i := range inputs {
		if err := middlewares.ValidateStruct(&inputs[i]); err != nil {
			return err
		}
		utils.NormalizeDTO(&inputs[i])

		rule := models.FeeRule{
			Kind:   inputs[i].Kind,
			Label:  inputs[i].Label,
			Rate:   inputs[i].Rate,
			Fixed:  inputs[i].Fixed,
			Active: true,
		}
		if err := db.Create(&rule).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not create fee rule")
		}
		created = append(created, rule)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// PATCH /api/catalog/fees/:id
func UpdateFeeRule(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing fee rule id in path")
	}

	var in FeeRuleUpdateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&in)

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	var existing models.FeeRule
	if err := db.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "fee rule not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	updates := utils.UpdatesFromPtrDTO(&in, nil)
	if len(updates) > 0 {
		if err := db.Model(&models.FeeRule{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not update fee rule")
		}
	}

	var out models.FeeRule
	if err := db.First(&out, "id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to reload fee rule")
	}
	return c.JSON(out)
}
