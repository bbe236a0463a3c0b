// Package unit implements the unit endpoints. Units belong to a course;
// mutations verify the parent course exists before writing.
package unit

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/coursebox/content-api/model"
	"github.com/coursebox/content-api/utils/response"
	"github.com/coursebox/content-api/validation"
)

// UnitHandler handles unit requests
type UnitHandler struct {
	db *gorm.DB
}

// NewUnitHandler creates a new unit handler
func NewUnitHandler(db *gorm.DB) *UnitHandler {
	return &UnitHandler{db: db}
}

// ListUnits handles GET /api/units?courseId=
func (h *UnitHandler) ListUnits(c *fiber.Ctx) error {
	query := h.db.Model(&model.Unit{})

	if rawID := c.Query("courseId"); rawID != "" {
		courseID, err := uuid.Parse(rawID)
		if err != nil {
			return response.BadRequest(c, "Invalid course ID format")
		}
		query = query.Where("course_id = ?", courseID)
	}

	var units []model.Unit
	if err := query.Order("sort_order ASC").Find(&units).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch units")
	}

	return response.Success(c, fiber.Map{"units": units})
}

// GetUnit handles GET /api/units/:id with questions preloaded in order
func (h *UnitHandler) GetUnit(c *fiber.Ctx) error {
	unitID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid unit ID format")
	}

	var unit model.Unit
	if err := h.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		First(&unit, "id = ?", unitID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Unit not found")
		}
		return response.InternalServerError(c, "Failed to fetch unit")
	}

	return response.Success(c, unit)
}

// CreateUnit handles POST /api/units
func (h *UnitHandler) CreateUnit(c *fiber.Ctx) error {
	payload := map[string]interface{}{}
	if err := c.BodyParser(&payload); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	doc, err := validation.Unit(payload, false)
	if err != nil {
		return response.ValidationFailed(c, err)
	}

	courseID := doc["courseId"].(uuid.UUID)
	var course model.Course
	if err := h.db.First(&course, "id = ?", courseID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to verify course")
	}

	unit := model.Unit{IsActive: true}
	unit.ApplyDoc(doc)

	if err := h.db.Create(&unit).Error; err != nil {
		return response.InternalServerError(c, "Failed to create unit")
	}

	return response.Created(c, "Unit created successfully", unit)
}

// UpdateUnit handles PUT /api/units. The unit id travels in the body
// (unitId); other fields are a partial patch.
func (h *UnitHandler) UpdateUnit(c *fiber.Ctx) error {
	payload := map[string]interface{}{}
	if err := c.BodyParser(&payload); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	rawID, ok := payload["unitId"].(string)
	if !ok || rawID == "" {
		return response.BadRequest(c, "unitId is required")
	}
	unitID, err := uuid.Parse(rawID)
	if err != nil {
		return response.BadRequest(c, "Invalid unit ID format")
	}
	delete(payload, "unitId")

	var unit model.Unit
	if err := h.db.First(&unit, "id = ?", unitID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Unit not found")
		}
		return response.InternalServerError(c, "Failed to fetch unit")
	}

	doc, err := validation.Unit(payload, true)
	if err != nil {
		return response.ValidationFailed(c, err)
	}

	// Re-parenting a unit requires the new course to exist
	if newCourseID, set := doc["courseId"].(uuid.UUID); set && newCourseID != unit.CourseID {
		var course model.Course
		if err := h.db.First(&course, "id = ?", newCourseID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return response.NotFound(c, "Course not found")
			}
			return response.InternalServerError(c, "Failed to verify course")
		}
	}

	unit.ApplyDoc(doc)
	if err := h.db.Save(&unit).Error; err != nil {
		return response.InternalServerError(c, "Failed to update unit")
	}

	return response.Success(c, unit)
}

// DeleteUnit handles DELETE /api/units?id=. Questions go first.
func (h *UnitHandler) DeleteUnit(c *fiber.Ctx) error {
	rawID := c.Query("id")
	if rawID == "" {
		return response.BadRequest(c, "id query parameter is required")
	}
	unitID, err := uuid.Parse(rawID)
	if err != nil {
		return response.BadRequest(c, "Invalid unit ID format")
	}

	var unit model.Unit
	if err := h.db.First(&unit, "id = ?", unitID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Unit not found")
		}
		return response.InternalServerError(c, "Failed to fetch unit")
	}

	if err := h.db.Where("unit_id = ?", unitID).Delete(&model.Question{}).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete unit questions")
	}
	if err := h.db.Delete(&unit).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete unit")
	}

	return response.SuccessWithMessage(c, "Unit and its questions deleted successfully", nil)
}
