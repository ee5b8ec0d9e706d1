package controllers

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/tuser579/CityFix/app/models"
	"github.com/tuser579/CityFix/app/repository"
	"github.com/tuser579/CityFix/internal/pkg/cache"
)

const recentResolvedCacheKey = "issues:recent_resolved"
const recentResolvedCacheTTL = 60 * time.Second
const recentResolvedLimit = 6

// HandleAllIssues returns every reported issue.
func HandleAllIssues(c *fiber.Ctx) error {
	repo := repository.GetGlobalRepositories().Issue
	issues, err := repo.List()
	if err != nil {
		return serverError(c, "could not load issues")
	}
	return c.JSON(issues)
}

// HandleMyIssues returns issues reported by the given email address.
func HandleMyIssues(c *fiber.Ctx) error {
	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		return badRequest(c, "email query parameter is required")
	}

	repo := repository.GetGlobalRepositories().Issue
	issues, err := repo.ListByReporter(email)
	if err != nil {
		return serverError(c, "could not load issues")
	}
	return c.JSON(issues)
}

// HandleRecentResolvedIssues returns the most recently resolved issues for
// the landing page. The result is served cache-aside with a short TTL since
// this is the hottest read in the system.
func HandleRecentResolvedIssues(c *fiber.Ctx) error {
	if cached, err := cache.Get(recentResolvedCacheKey); err == nil && cached != "" {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.SendString(cached)
	}

	repo := repository.GetGlobalRepositories().Issue
	issues, err := repo.ListRecentResolved(recentResolvedLimit)
	if err != nil {
		return serverError(c, "could not load issues")
	}

	if payload, err := json.Marshal(issues); err == nil {
		_ = cache.Set(recentResolvedCacheKey, payload, recentResolvedCacheTTL)
	}
	return c.JSON(issues)
}

// HandleReportIssue stores a newly reported issue.
func HandleReportIssue(c *fiber.Ctx) error {
	var issue models.Issue
	if err := c.BodyParser(&issue); err != nil {
		return badRequest(c, "invalid issue payload")
	}
	if issue.Status == "" {
		issue.Status = models.IssueStatusPending
	}
	if err := issue.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	repo := repository.GetGlobalRepositories().Issue
	if err := repo.Create(&issue); err != nil {
		return serverError(c, "could not store issue")
	}
	_ = cache.Delete(recentResolvedCacheKey)
	return c.Status(fiber.StatusCreated).JSON(issue)
}

// HandleUpdateIssue applies a partial update to an issue. Marking an issue
// resolved stamps the resolved date; isBoosted stays under the exclusive
// control of the payments reconciliation service.
func HandleUpdateIssue(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	var body struct {
		Title       string `json:"title" validate:"omitempty,min=3,max=255"`
		Description string `json:"description" validate:"omitempty,max=5000"`
		Category    string `json:"category" validate:"omitempty,max=100"`
		Location    string `json:"location" validate:"omitempty,max=255"`
		Status      string `json:"status" validate:"omitempty,oneof=pending in-progress resolved"`
	}
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := validate.Struct(&body); err != nil {
		return badRequest(c, err.Error())
	}

	fields := map[string]interface{}{}
	if body.Title != "" {
		fields["title"] = body.Title
	}
	if body.Description != "" {
		fields["description"] = body.Description
	}
	if body.Category != "" {
		fields["category"] = body.Category
	}
	if body.Location != "" {
		fields["location"] = body.Location
	}
	if body.Status != "" {
		fields["status"] = body.Status
		if body.Status == models.IssueStatusResolved {
			fields["resolved_date"] = time.Now().UTC()
		}
	}
	if len(fields) == 0 {
		return badRequest(c, "no updatable fields in payload")
	}

	repo := repository.GetGlobalRepositories().Issue
	if err := repo.UpdateFields(id, fields); err != nil {
		return serverError(c, "could not update issue")
	}
	_ = cache.Delete(recentResolvedCacheKey)
	return c.JSON(fiber.Map{"success": true})
}

// HandleUpvoteIssue sets the upvote counter and flag of an issue.
func HandleUpvoteIssue(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	var body struct {
		IsUpvoted bool `json:"isUpvoted"`
		Upvotes   int  `json:"upVotes" validate:"gte=0"`
	}
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := validate.Struct(&body); err != nil {
		return badRequest(c, err.Error())
	}

	repo := repository.GetGlobalRepositories().Issue
	if err := repo.UpdateUpvotes(id, body.Upvotes, body.IsUpvoted); err != nil {
		return serverError(c, "could not update upvotes")
	}
	return c.JSON(fiber.Map{"success": true})
}

// HandleDeleteIssue removes an issue.
func HandleDeleteIssue(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	repo := repository.GetGlobalRepositories().Issue
	if err := repo.Delete(id); err != nil {
		return serverError(c, "could not delete issue")
	}
	_ = cache.Delete(recentResolvedCacheKey)
	return c.JSON(fiber.Map{"success": true})
}

// HandleIssueDetails returns a single issue by id.
func HandleIssueDetails(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	repo := repository.GetGlobalRepositories().Issue
	issue, err := repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "issue not found"})
		}
		return serverError(c, "could not load issue")
	}
	return c.JSON(issue)
}
