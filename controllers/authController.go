package controllers

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"atelier-backend/database"
	"atelier-backend/middlewares"
	"atelier-backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type RegisterDTO struct {
	FirstName       string `json:"first_name" validate:"required,min=1"`
	LastName        string `json:"last_name" validate:"required,min=1"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" validate:"required"`
	StudioName      string `json:"studio_name" validate:"required,min=1"`
	Address         string `json:"address" validate:"omitempty"`
	City            string `json:"city" validate:"omitempty"`
	Country         string `json:"country" validate:"omitempty"`
	Zip             string `json:"zip" validate:"omitempty"`
	Homepage        string `json:"homepage" validate:"omitempty,url"`
}

type LoginDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// POST /api/registration
// Creates the user, the studio and the studio's tenant schema in one go.
func Register(c *fiber.Ctx) error {
	var in RegisterDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	if in.Password != in.PasswordConfirm {
		return fiber.NewError(fiber.StatusBadRequest, "passwords do not match")
	}

	var mailExist models.User
	database.DB.Where("email = ?", in.Email).First(&mailExist)
	if mailExist.Email != "" {
		return fiber.NewError(fiber.StatusBadRequest, "email already exists")
	}

	schemaName, err := createSchema(in.StudioName)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid studio name")
	}

	tx := database.DB.Begin()

	user := models.User{
		FirstName:  strings.TrimSpace(in.FirstName),
		LastName:   strings.TrimSpace(in.LastName),
		Email:      strings.TrimSpace(in.Email),
		SchemaName: schemaName,
	}
	user.SetPassword(in.Password)
	if err := tx.Create(&user).Error; err != nil {
		tx.Rollback()
		return fiber.NewError(fiber.StatusBadRequest, "could not create user")
	}

	studio := models.Studio{
		Name:       strings.TrimSpace(in.StudioName),
		Address:    strings.TrimSpace(in.Address),
		City:       strings.TrimSpace(in.City),
		Country:    strings.TrimSpace(in.Country),
		Zip:        strings.TrimSpace(in.Zip),
		Homepage:   strings.TrimSpace(in.Homepage),
		UserId:     user.Id,
		SchemaName: schemaName,
	}
	if err := tx.Create(&studio).Error; err != nil {
		tx.Rollback()
		return fiber.NewError(fiber.StatusBadRequest, "could not create studio")
	}

	if err := database.MigrateTenantSchema(schemaName); err != nil {
		tx.Rollback()
		return fiber.NewError(fiber.StatusInternalServerError, "could not migrate tenant schema")
	}

	tx.Commit()

	database.DB.Preload("User").First(&studio, "id = ?", studio.Id)
	return c.Status(fiber.StatusCreated).JSON(studio)
}

func createSchema(studioName string) (string, error) {
	safeName := strings.ToLower(strings.TrimSpace(studioName))
	safeName = strings.ReplaceAll(safeName, " ", "_")
	// Validate schema name (only letters, numbers, underscores; must start with letter/underscore)
	valid := regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)
	if !valid.MatchString(safeName) {
		return "", fmt.Errorf("invalid schema name after sanitization: %s", safeName)
	}

	// Create schema if not exists
	if err := database.DB.Exec("CREATE SCHEMA IF NOT EXISTS " + safeName).Error; err != nil {
		return "", err
	}
	return safeName, nil
}

// POST /api/login
func Login(c *fiber.Ctx) error {
	var in LoginDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	var user models.User
	database.DB.Exec("SET search_path TO public")
	database.DB.Table("public.users").Where("email = ?", in.Email).First(&user)

	if _, err := uuid.Parse(user.Id); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid credentials")
	}
	if err := user.ComparePassword(in.Password); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid credentials")
	}

	token, err := middlewares.GenerateJWT(user.Id, user.SchemaName)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not issue token")
	}

	// Keep the tenant schema current with the running model set.
	if err := database.MigrateTenantSchema(user.SchemaName); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not migrate tenant schema")
	}

	return c.JSON(fiber.Map{
		"token":  token,
		"schema": user.SchemaName,
		"user": fiber.Map{
			"id":    user.Id,
			"name":  user.FirstName + " " + user.LastName,
			"email": user.Email,
		},
	})
}

// POST /api/logout
func Logout(c *fiber.Ctx) error {
	cookie := fiber.Cookie{
		Name:     "jwt",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	}
	c.Cookie(&cookie)
	return c.JSON(fiber.Map{
		"message": "success",
	})
}
