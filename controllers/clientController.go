package controllers

import (
	"errors"
	"strings"

	"atelier-backend/database"
	"atelier-backend/middlewares"
	"atelier-backend/models"
	"atelier-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ClientCreateDTO struct {
	FirstName    string `json:"first_name" validate:"required,min=1"`
	LastName     string `json:"last_name" validate:"required,min=1"`
	Email        string `json:"email" validate:"required,email"`
	CompanyName  string `json:"company_name" validate:"omitempty"`
	Address      string `json:"address" validate:"omitempty"`
	City         string `json:"city" validate:"omitempty"`
	Country      string `json:"country" validate:"omitempty"`
	Zip          string `json:"zip" validate:"omitempty"`
	Homepage     string `json:"homepage" validate:"omitempty,url"`
	PhoneNumber  string `json:"phone_number" validate:"omitempty"`
	MobileNumber string `json:"mobile_number" validate:"omitempty"`
	Notes        string `json:"notes" validate:"omitempty"`
}

type ClientUpdateDTO struct {
	FirstName    *string `json:"first_name" validate:"omitempty,min=1"`
	LastName     *string `json:"last_name" validate:"omitempty,min=1"`
	Email        *string `json:"email" validate:"omitempty,email"`
	CompanyName  *string `json:"company_name" validate:"omitempty"`
	Address      *string `json:"address" validate:"omitempty"`
	City         *string `json:"city" validate:"omitempty"`
	Country      *string `json:"country" validate:"omitempty"`
	Zip          *string `json:"zip" validate:"omitempty"`
	Homepage     *string `json:"homepage" validate:"omitempty,url"`
	PhoneNumber  *string `json:"phone_number" validate:"omitempty"`
	MobileNumber *string `json:"mobile_number" validate:"omitempty"`
	Notes        *string `json:"notes" validate:"omitempty"`
}

// POST /api/client
func CreateClient(c *fiber.Ctx) error {
	var in ClientCreateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	client := models.Client{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		CompanyName:  in.CompanyName,
		Address:      in.Address,
		City:         in.City,
		Country:      in.Country,
		Zip:          in.Zip,
		Homepage:     in.Homepage,
		PhoneNumber:  in.PhoneNumber,
		MobileNumber: in.MobileNumber,
		Notes:        in.Notes,
		Active:       true,
	}

	if err := db.Create(&client).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create client")
	}
	return c.Status(fiber.StatusCreated).JSON(client)
}

// GET /api/clients
func GetClients(c *fiber.Ctx) error {
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	var clients []models.Client
	if err := db.Where("active = ?", true).Find(&clients).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(fiber.Map{"clients": clients, "message": "success"})
}

// GET /api/client/:id
func GetClient(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing client id in path")
	}

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	var client models.Client
	if err := db.First(&client, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "client not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(client)
}

// PATCH /api/client/:id
func UpdateClient(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing client id in path")
	}

	var in ClientUpdateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&in)

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	var existing models.Client
	if err := db.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "client not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	updates := utils.UpdatesFromPtrDTO(&in, nil)
	if len(updates) > 0 {
		if err := db.Model(&models.Client{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not update client")
		}
	}

	var out models.Client
	if err := db.First(&out, "id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to reload client")
	}
	return c.JSON(out)
}
