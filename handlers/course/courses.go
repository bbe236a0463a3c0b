// Package course implements the course catalog endpoints. Mutations are
// admin-only (enforced at the router) and run every payload through the
// domain validator before touching the store.
package course

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/coursebox/content-api/model"
	"github.com/coursebox/content-api/utils/response"
	"github.com/coursebox/content-api/validation"
)

// CourseHandler handles course catalog requests
type CourseHandler struct {
	db *gorm.DB
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(db *gorm.DB) *CourseHandler {
	return &CourseHandler{db: db}
}

// ListCourses handles GET /api/courses
func (h *CourseHandler) ListCourses(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 50 {
		limit = 50
	}

	query := h.db.Model(&model.Course{})

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if level := c.Query("level"); level != "" {
		query = query.Where("level = ?", level)
	}
	if search := c.Query("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?",
			pattern, pattern)
	}
	if published := c.Query("published"); published != "" {
		query = query.Where("is_published = ?", published == "true")
	}
	if instructorID := c.Query("instructorId"); instructorID != "" {
		id, err := uuid.Parse(instructorID)
		if err != nil {
			return response.BadRequest(c, "Invalid instructor ID format")
		}
		query = query.Where("instructor_id = ?", id)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count courses")
	}

	pagination := response.CalculatePagination(page, limit, total)

	var courses []model.Course
	if err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&courses).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch courses")
	}

	return response.Success(c, fiber.Map{
		"courses":    courses,
		"pagination": pagination,
	})
}

// CreateCourse handles POST /api/courses
func (h *CourseHandler) CreateCourse(c *fiber.Ctx) error {
	payload := map[string]interface{}{}
	if err := c.BodyParser(&payload); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Missing instructor fields default to the acting admin
	if admin, ok := c.Locals("admin").(*model.Admin); ok && admin != nil {
		if _, set := payload["instructor"]; !set {
			payload["instructor"] = admin.Name
		}
		if _, set := payload["instructorId"]; !set {
			payload["instructorId"] = admin.ID.String()
		}
	}

	doc, err := validation.Course(payload, false)
	if err != nil {
		return response.ValidationFailed(c, err)
	}

	course := model.Course{IsActive: true}
	course.ApplyDoc(doc)

	if err := h.db.Create(&course).Error; err != nil {
		return response.InternalServerError(c, "Failed to create course")
	}

	return response.Created(c, "Course created successfully", course)
}

// UpdateCourse handles PUT /api/courses. The course id travels in the
// body (courseId); all other fields are an optional partial patch.
func (h *CourseHandler) UpdateCourse(c *fiber.Ctx) error {
	payload := map[string]interface{}{}
	if err := c.BodyParser(&payload); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	rawID, ok := payload["courseId"].(string)
	if !ok || rawID == "" {
		return response.BadRequest(c, "courseId is required")
	}
	courseID, err := uuid.Parse(rawID)
	if err != nil {
		return response.BadRequest(c, "Invalid course ID format")
	}
	delete(payload, "courseId")

	var course model.Course
	if err := h.db.First(&course, "id = ?", courseID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to fetch course")
	}

	doc, err := validation.Course(payload, true)
	if err != nil {
		return response.ValidationFailed(c, err)
	}

	course.ApplyDoc(doc)
	if err := h.db.Save(&course).Error; err != nil {
		return response.InternalServerError(c, "Failed to update course")
	}

	return response.Success(c, course)
}

// DeleteCourse handles DELETE /api/courses?id=. Dependents go first:
// questions, units, progress, then the course itself. An interrupted
// delete leaves no child rows pointing at a missing parent.
func (h *CourseHandler) DeleteCourse(c *fiber.Ctx) error {
	rawID := c.Query("id")
	if rawID == "" {
		return response.BadRequest(c, "id query parameter is required")
	}
	courseID, err := uuid.Parse(rawID)
	if err != nil {
		return response.BadRequest(c, "Invalid course ID format")
	}

	var course model.Course
	if err := h.db.First(&course, "id = ?", courseID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to fetch course")
	}

	if err := h.db.Where("course_id = ?", courseID).Delete(&model.Question{}).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete course questions")
	}
	if err := h.db.Where("course_id = ?", courseID).Delete(&model.Unit{}).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete course units")
	}
	if err := h.db.Where("course_id = ?", courseID).Delete(&model.UserProgress{}).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete course progress")
	}
	if err := h.db.Delete(&course).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete course")
	}

	return response.SuccessWithMessage(c, "Course and all related data deleted successfully", nil)
}

// GetCourse handles GET /api/courses/:id with units preloaded in order
func (h *CourseHandler) GetCourse(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid course ID format")
	}

	var course model.Course
	if err := h.db.
		Preload("Units", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		First(&course, "id = ?", courseID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to fetch course")
	}

	return response.Success(c, course)
}
