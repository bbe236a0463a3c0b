// Package question implements the question endpoints. A question belongs
// to a unit and denormalizes its course id; mutations check that the
// denormalized course id matches the unit's actual course.
package question

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/coursebox/content-api/model"
	"github.com/coursebox/content-api/utils/response"
	"github.com/coursebox/content-api/validation"
)

// QuestionHandler handles question requests
type QuestionHandler struct {
	db *gorm.DB
}

// NewQuestionHandler creates a new question handler
func NewQuestionHandler(db *gorm.DB) *QuestionHandler {
	return &QuestionHandler{db: db}
}

// ListQuestions handles GET /api/questions?unitId=&courseId=
func (h *QuestionHandler) ListQuestions(c *fiber.Ctx) error {
	query := h.db.Model(&model.Question{})

	if rawID := c.Query("unitId"); rawID != "" {
		unitID, err := uuid.Parse(rawID)
		if err != nil {
			return response.BadRequest(c, "Invalid unit ID format")
		}
		query = query.Where("unit_id = ?", unitID)
	}
	if rawID := c.Query("courseId"); rawID != "" {
		courseID, err := uuid.Parse(rawID)
		if err != nil {
			return response.BadRequest(c, "Invalid course ID format")
		}
		query = query.Where("course_id = ?", courseID)
	}

	var questions []model.Question
	if err := query.Order("sort_order ASC").Find(&questions).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch questions")
	}

	return response.Success(c, fiber.Map{"questions": questions})
}

// CreateQuestion handles POST /api/questions
func (h *QuestionHandler) CreateQuestion(c *fiber.Ctx) error {
	payload := map[string]interface{}{}
	if err := c.BodyParser(&payload); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	doc, err := validation.Question(payload, false)
	if err != nil {
		return response.ValidationFailed(c, err)
	}

	unitID := doc["unitId"].(uuid.UUID)
	courseID := doc["courseId"].(uuid.UUID)

	unit, err := h.loadUnit(c, unitID)
	if unit == nil {
		return err
	}
	if unit.CourseID != courseID {
		return response.BadRequest(c, "Course ID does not match the unit's course")
	}

	question := model.Question{IsActive: true}
	question.ApplyDoc(doc)

	if err := h.db.Create(&question).Error; err != nil {
		return response.InternalServerError(c, "Failed to create question")
	}

	return response.Created(c, "Question created successfully", question)
}

// UpdateQuestion handles PUT /api/questions. The question id travels in
// the body (questionId); other fields are a partial patch.
func (h *QuestionHandler) UpdateQuestion(c *fiber.Ctx) error {
	payload := map[string]interface{}{}
	if err := c.BodyParser(&payload); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	rawID, ok := payload["questionId"].(string)
	if !ok || rawID == "" {
		return response.BadRequest(c, "questionId is required")
	}
	questionID, err := uuid.Parse(rawID)
	if err != nil {
		return response.BadRequest(c, "Invalid question ID format")
	}
	delete(payload, "questionId")

	var question model.Question
	if err := h.db.First(&question, "id = ?", questionID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Question not found")
		}
		return response.InternalServerError(c, "Failed to fetch question")
	}

	// questionData is validated against the question's type; a patch that
	// omits the type still needs it for dispatch
	if _, set := payload["questionData"]; set {
		if _, typeSet := payload["type"]; !typeSet {
			payload["type"] = question.Type
		}
	}

	doc, err := validation.Question(payload, true)
	if err != nil {
		return response.ValidationFailed(c, err)
	}

	unitID := question.UnitID
	if newUnitID, set := doc["unitId"].(uuid.UUID); set {
		unitID = newUnitID
	}
	courseID := question.CourseID
	if newCourseID, set := doc["courseId"].(uuid.UUID); set {
		courseID = newCourseID
	}

	unit, loadErr := h.loadUnit(c, unitID)
	if unit == nil {
		return loadErr
	}
	if unit.CourseID != courseID {
		return response.BadRequest(c, "Course ID does not match the unit's course")
	}

	question.ApplyDoc(doc)
	if err := h.db.Save(&question).Error; err != nil {
		return response.InternalServerError(c, "Failed to update question")
	}

	return response.Success(c, question)
}

// DeleteQuestion handles DELETE /api/questions?id=
func (h *QuestionHandler) DeleteQuestion(c *fiber.Ctx) error {
	rawID := c.Query("id")
	if rawID == "" {
		return response.BadRequest(c, "id query parameter is required")
	}
	questionID, err := uuid.Parse(rawID)
	if err != nil {
		return response.BadRequest(c, "Invalid question ID format")
	}

	var question model.Question
	if err := h.db.First(&question, "id = ?", questionID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Question not found")
		}
		return response.InternalServerError(c, "Failed to fetch question")
	}

	if err := h.db.Delete(&question).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete question")
	}

	return response.SuccessWithMessage(c, "Question deleted successfully", nil)
}

// loadUnit fetches a unit, writing the error response itself when the
// lookup fails. A nil unit means the response has been sent.
func (h *QuestionHandler) loadUnit(c *fiber.Ctx, unitID uuid.UUID) (*model.Unit, error) {
	var unit model.Unit
	if err := h.db.First(&unit, "id = ?", unitID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, response.NotFound(c, "Unit not found")
		}
		return nil, response.InternalServerError(c, "Failed to verify unit")
	}
	return &unit, nil
}
