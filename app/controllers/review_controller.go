package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tuser579/CityFix/app/models"
	"github.com/tuser579/CityFix/app/repository"
)

// HandleCreateReview stores a new platform review.
func HandleCreateReview(c *fiber.Ctx) error {
	var review models.Review
	if err := c.BodyParser(&review); err != nil {
		return badRequest(c, "invalid review payload")
	}
	if err := review.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	repo := repository.GetGlobalRepositories().Review
	if err := repo.Create(&review); err != nil {
		return serverError(c, "could not store review")
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

// HandleGetReviews returns all reviews, newest first.
func HandleGetReviews(c *fiber.Ctx) error {
	repo := repository.GetGlobalRepositories().Review
	reviews, err := repo.List()
	if err != nil {
		return serverError(c, "could not load reviews")
	}
	return c.JSON(reviews)
}
