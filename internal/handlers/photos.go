package handlers

import (
	"io"
	"strconv"

	"photoshare-backend/internal/models"
	"photoshare-backend/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ListPhotosHandler returns the authenticated user's photos with signed URLs.
func ListPhotosHandler(photoService *services.PhotoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(int)

		photos, err := photoService.List(c.Context(), userID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": err.Error(),
				"photos":  []models.PhotoView{},
			})
		}
		return c.JSON(fiber.Map{
			"message": "Photos retrieved successfully.",
			"photos":  photos,
		})
	}
}

// CreatePhotoHandler uploads a photo (multipart field "photo") with its
// metadata and returns the created record.
func CreatePhotoHandler(photoService *services.PhotoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(int)

		fileHeader, err := c.FormFile("photo")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "photo file is required",
				"photo":   nil,
			})
		}

		file, err := fileHeader.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "failed to read photo file",
				"photo":   nil,
			})
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "failed to read photo file",
				"photo":   nil,
			})
		}

		photo, err := photoService.Create(
			c.Context(),
			userID,
			data,
			fileHeader.Header.Get("Content-Type"),
			c.FormValue("name"),
			c.FormValue("description"),
		)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": err.Error(),
				"photo":   nil,
			})
		}
		return c.JSON(fiber.Map{
			"message": "Photo Created",
			"photo":   photo,
		})
	}
}

// DeletePhotoHandler removes a photo owned by the caller. The response
// carries the caller's current photo list whether or not the delete
// succeeded.
func DeletePhotoHandler(photoService *services.PhotoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(int)

		id, err := strconv.Atoi(c.Params("id"))
		if err != nil || id <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "invalid photo id",
				"photos":  []models.PhotoView{},
			})
		}

		photos, deleteErr := photoService.Delete(c.Context(), userID, id)
		if photos == nil {
			photos = []models.PhotoView{}
		}
		if deleteErr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": deleteErr.Error(),
				"photos":  photos,
			})
		}
		return c.JSON(fiber.Map{
			"message": "Photo Deleted",
			"photos":  photos,
		})
	}
}

// ApplyFilterHandler returns the filtered photo as a data URL, computing
// and caching it on first request.
func ApplyFilterHandler(photoService *services.PhotoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil || id <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message":          "invalid photo id",
				"filteredPhotoUrl": nil,
			})
		}

		var req struct {
			FilterType string `json:"filterType"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message":          "Invalid request",
				"filteredPhotoUrl": nil,
			})
		}

		url, err := photoService.ApplyFilter(c.Context(), id, req.FilterType)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message":          err.Error(),
				"filteredPhotoUrl": nil,
			})
		}
		return c.JSON(fiber.Map{
			"message":          "Filter Applied",
			"filteredPhotoUrl": url,
		})
	}
}
