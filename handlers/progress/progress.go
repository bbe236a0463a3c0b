// Package progress implements enrollment and answer tracking. Enrollment
// is idempotent per (user, course); answers are graded inline for closed
// question forms and recorded ungraded for open ones.
package progress

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/coursebox/content-api/model"
	"github.com/coursebox/content-api/utils/middleware"
	"github.com/coursebox/content-api/utils/response"
)

// ProgressHandler handles progress requests
type ProgressHandler struct {
	db       *gorm.DB
	validate *validator.Validate
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(db *gorm.DB) *ProgressHandler {
	return &ProgressHandler{
		db:       db,
		validate: validator.New(),
	}
}

// EnrollRequest is the body of the enrollment endpoint
type EnrollRequest struct {
	CourseID string `json:"courseId" validate:"required,uuid"`
}

// Enroll handles POST /api/progress/enroll. Enrolling twice is not an
// error; the existing record is returned.
func (h *ProgressHandler) Enroll(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	var req EnrollRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return response.BadRequest(c, "courseId must be a valid id")
	}
	courseID, _ := uuid.Parse(req.CourseID)

	var course model.Course
	if err := h.db.First(&course, "id = ?", courseID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to fetch course")
	}

	var existing model.UserProgress
	err := h.db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&existing).Error
	if err == nil {
		existing.LastAccessedAt = time.Now()
		h.db.Save(&existing)
		return response.SuccessWithMessage(c, "Already enrolled", existing)
	}
	if err != gorm.ErrRecordNotFound {
		return response.InternalServerError(c, "Failed to check enrollment")
	}

	scoreTotal, err := h.courseScoreTotal(courseID)
	if err != nil {
		return response.InternalServerError(c, "Failed to compute course score")
	}

	now := time.Now()
	prog := model.UserProgress{
		UserID:         userID,
		CourseID:       courseID,
		EnrolledAt:     now,
		LastAccessedAt: now,
		CompletedUnits: []byte("[]"),
		Answers:        []byte("[]"),
		ScoreTotal:     scoreTotal,
	}
	if err := h.db.Create(&prog).Error; err != nil {
		return response.InternalServerError(c, "Failed to enroll")
	}

	return response.Created(c, "Enrolled successfully", prog)
}

// AnswerRequest is the body of the answer submission endpoint
type AnswerRequest struct {
	CourseID   string      `json:"courseId" validate:"required,uuid"`
	QuestionID string      `json:"questionId" validate:"required,uuid"`
	Answer     interface{} `json:"answer"`
	TimeSpent  int         `json:"timeSpent" validate:"gte=0"`
}

// AnswerResult is returned after a submission is recorded
type AnswerResult struct {
	IsCorrect    bool    `json:"isCorrect"`
	Graded       bool    `json:"graded"`
	PointsEarned int     `json:"pointsEarned"`
	ScoreEarned  int     `json:"scoreEarned"`
	ScoreTotal   int     `json:"scoreTotal"`
	ScorePercent float64 `json:"scorePercent"`
}

// SubmitAnswer handles POST /api/progress/answer. Closed question forms
// (MCQ, fill-in-blank) are graded against questionData; open forms (text,
// audio) are recorded for later review and earn no points here.
func (h *ProgressHandler) SubmitAnswer(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	var req AnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return response.BadRequest(c, "courseId and questionId must be valid ids")
	}
	if req.Answer == nil {
		return response.BadRequest(c, "answer is required")
	}
	courseID, _ := uuid.Parse(req.CourseID)
	questionID, _ := uuid.Parse(req.QuestionID)

	var prog model.UserProgress
	if err := h.db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&prog).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Not enrolled in this course")
		}
		return response.InternalServerError(c, "Failed to fetch progress")
	}

	var question model.Question
	if err := h.db.First(&question, "id = ?", questionID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Question not found")
		}
		return response.InternalServerError(c, "Failed to fetch question")
	}
	if question.CourseID != courseID {
		return response.BadRequest(c, "Question does not belong to this course")
	}

	isCorrect, graded, pointsEarned := gradeAnswer(&question, req.Answer)

	var records []model.AnswerRecord
	if len(prog.Answers) > 0 {
		if err := json.Unmarshal(prog.Answers, &records); err != nil {
			records = nil
		}
	}

	found := false
	for i := range records {
		if records[i].QuestionID == questionID {
			records[i].Answer = req.Answer
			records[i].IsCorrect = isCorrect
			records[i].PointsEarned = pointsEarned
			records[i].AnsweredAt = time.Now()
			records[i].TimeSpent = req.TimeSpent
			records[i].Attempts++
			found = true
			break
		}
	}
	if !found {
		records = append(records, model.AnswerRecord{
			QuestionID:   questionID,
			Answer:       req.Answer,
			IsCorrect:    isCorrect,
			PointsEarned: pointsEarned,
			AnsweredAt:   time.Now(),
			TimeSpent:    req.TimeSpent,
			Attempts:     1,
		})
	}

	earned := 0
	for _, record := range records {
		earned += record.PointsEarned
	}

	total, err := h.courseScoreTotal(courseID)
	if err != nil {
		return response.InternalServerError(c, "Failed to compute course score")
	}

	answersJSON, err := json.Marshal(records)
	if err != nil {
		return response.InternalServerError(c, "Failed to record answer")
	}

	prog.Answers = answersJSON
	prog.ScoreEarned = earned
	prog.ScoreTotal = total
	prog.ScorePercent = 0
	if total > 0 {
		prog.ScorePercent = float64(earned) / float64(total) * 100
	}
	prog.LastAccessedAt = time.Now()
	prog.CurrentUnit = &question.UnitID

	if err := h.updateCompletion(&prog, records); err != nil {
		return response.InternalServerError(c, "Failed to update completion")
	}

	if err := h.db.Save(&prog).Error; err != nil {
		return response.InternalServerError(c, "Failed to save progress")
	}

	return response.Success(c, AnswerResult{
		IsCorrect:    isCorrect,
		Graded:       graded,
		PointsEarned: pointsEarned,
		ScoreEarned:  prog.ScoreEarned,
		ScoreTotal:   prog.ScoreTotal,
		ScorePercent: prog.ScorePercent,
	})
}

// GetProgress handles GET /api/progress?courseId=. Without courseId all
// of the caller's enrollments are returned.
func (h *ProgressHandler) GetProgress(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	if rawID := c.Query("courseId"); rawID != "" {
		courseID, err := uuid.Parse(rawID)
		if err != nil {
			return response.BadRequest(c, "Invalid course ID format")
		}

		var prog model.UserProgress
		if err := h.db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&prog).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return response.NotFound(c, "Not enrolled in this course")
			}
			return response.InternalServerError(c, "Failed to fetch progress")
		}
		return response.Success(c, prog)
	}

	var all []model.UserProgress
	if err := h.db.Where("user_id = ?", userID).Order("last_accessed_at DESC").Find(&all).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch progress")
	}
	return response.Success(c, fiber.Map{"progress": all})
}

// courseScoreTotal sums the points of all active questions in a course
func (h *ProgressHandler) courseScoreTotal(courseID uuid.UUID) (int, error) {
	var total int64
	err := h.db.Model(&model.Question{}).
		Where("course_id = ? AND is_active = ?", courseID, true).
		Select("COALESCE(SUM(points), 0)").
		Scan(&total).Error
	return int(total), err
}

// updateCompletion recomputes completedUnits and completedAt. A unit is
// complete when every one of its active questions has an answer record;
// the course is complete when every answerable unit is. Units without
// any active questions cannot be answered and are left out of both the
// completed list and the completion count.
func (h *ProgressHandler) updateCompletion(prog *model.UserProgress, records []model.AnswerRecord) error {
	answered := map[uuid.UUID]bool{}
	for _, record := range records {
		answered[record.QuestionID] = true
	}

	var units []model.Unit
	if err := h.db.Where("course_id = ? AND is_active = ?", prog.CourseID, true).Find(&units).Error; err != nil {
		return err
	}

	completed := []uuid.UUID{}
	answerable := 0
	for _, unit := range units {
		var questions []model.Question
		if err := h.db.Where("unit_id = ? AND is_active = ?", unit.ID, true).Find(&questions).Error; err != nil {
			return err
		}
		if len(questions) == 0 {
			continue
		}
		answerable++

		done := true
		for _, question := range questions {
			if !answered[question.ID] {
				done = false
				break
			}
		}
		if done {
			completed = append(completed, unit.ID)
		}
	}

	completedJSON, err := json.Marshal(completed)
	if err != nil {
		return err
	}
	prog.CompletedUnits = completedJSON

	if answerable > 0 && len(completed) == answerable {
		if prog.CompletedAt == nil {
			now := time.Now()
			prog.CompletedAt = &now
		}
	} else {
		prog.CompletedAt = nil
	}

	return nil
}

// gradeAnswer grades an answer against the question's data. Returns
// correctness, whether the form is auto-gradable at all, and points.
func gradeAnswer(question *model.Question, answer interface{}) (bool, bool, int) {
	switch question.Type {
	case model.QuestionTypeMCQ:
		var data struct {
			CorrectAnswer int `json:"correctAnswer"`
		}
		if err := json.Unmarshal(question.QuestionData, &data); err != nil {
			return false, true, 0
		}
		index, ok := answerAsInt(answer)
		if ok && index == data.CorrectAnswer {
			return true, true, question.Points
		}
		return false, true, 0

	case model.QuestionTypeFillBlank:
		var data struct {
			CorrectAnswers []string `json:"correctAnswers"`
		}
		if err := json.Unmarshal(question.QuestionData, &data); err != nil {
			return false, true, 0
		}
		given, ok := answer.(string)
		if !ok {
			return false, true, 0
		}
		given = strings.TrimSpace(given)
		for _, accepted := range data.CorrectAnswers {
			if strings.EqualFold(strings.TrimSpace(accepted), given) {
				return true, true, question.Points
			}
		}
		return false, true, 0

	default:
		// TEXT and AUDIO are reviewed by a human later
		return false, false, 0
	}
}

// answerAsInt coerces a decoded JSON answer into an option index
func answerAsInt(answer interface{}) (int, bool) {
	switch v := answer.(type) {
	case float64:
		if v == float64(int(v)) {
			return int(v), true
		}
		return 0, false
	case int:
		return v, true
	default:
		return 0, false
	}
}
