package controllers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/tuser579/CityFix/app/models"
	"github.com/tuser579/CityFix/app/repository"
)

// HandleCreateCitizen registers a citizen account.
func HandleCreateCitizen(c *fiber.Ctx) error {
	var citizen models.Citizen
	if err := c.BodyParser(&citizen); err != nil {
		return badRequest(c, "invalid citizen payload")
	}
	if citizen.Role == "" {
		citizen.Role = models.ROLE_CITIZEN
	}
	if err := citizen.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	repo := repository.GetGlobalRepositories().Citizen
	if err := repo.Create(&citizen); err != nil {
		return serverError(c, "could not store citizen")
	}
	return c.Status(fiber.StatusCreated).JSON(citizen)
}

// HandleSingleCitizen returns the citizen record for the given email.
func HandleSingleCitizen(c *fiber.Ctx) error {
	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		return badRequest(c, "email query parameter is required")
	}

	repo := repository.GetGlobalRepositories().Citizen
	citizen, err := repo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "citizen not found"})
		}
		return serverError(c, "could not load citizen")
	}
	return c.JSON(citizen)
}

// HandleUpdateCitizenPhoto updates only the photo URL of a citizen.
func HandleUpdateCitizenPhoto(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	var body struct {
		PhotoURL string `json:"photoURL" validate:"required,max=255"`
	}
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := validate.Struct(&body); err != nil {
		return badRequest(c, err.Error())
	}

	repo := repository.GetGlobalRepositories().Citizen
	if err := repo.UpdatePhoto(id, body.PhotoURL); err != nil {
		return serverError(c, "could not update photo")
	}
	return c.JSON(fiber.Map{"success": true})
}

// HandleUpdateCitizen applies a partial profile update. Entitlement fields
// (isPremium, trackingId, totalPayment) are not writable here; only the
// payments reconciliation service mutates them.
func HandleUpdateCitizen(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	var body struct {
		Name     string `json:"name" validate:"omitempty,min=2,max=150"`
		PhotoURL string `json:"photoURL" validate:"omitempty,max=255"`
	}
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := validate.Struct(&body); err != nil {
		return badRequest(c, err.Error())
	}

	fields := map[string]interface{}{}
	if body.Name != "" {
		fields["name"] = body.Name
	}
	if body.PhotoURL != "" {
		fields["photo_url"] = body.PhotoURL
	}
	if len(fields) == 0 {
		return badRequest(c, "no updatable fields in payload")
	}

	repo := repository.GetGlobalRepositories().Citizen
	if err := repo.UpdateFields(id, fields); err != nil {
		return serverError(c, "could not update citizen")
	}
	return c.JSON(fiber.Map{"success": true})
}
