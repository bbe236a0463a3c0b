package progress

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/coursebox/content-api/model"
	"github.com/coursebox/content-api/utils/auth"
	"github.com/coursebox/content-api/utils/middleware"
)

type fixture struct {
	app      *fiber.App
	db       *gorm.DB
	cookie   *http.Cookie
	course   model.Course
	unit     model.Unit
	mcq      model.Question
	blank    model.Question
	freeText model.Question
}

func setupFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{}, &model.Course{}, &model.Unit{}, &model.Question{}, &model.UserProgress{},
	))

	course := model.Course{
		Title: "Go Basics", Description: "Introductory Go course for testing.",
		Instructor: "Root", Category: "Technology", Level: "Beginner",
	}
	require.NoError(t, db.Create(&course).Error)

	unit := model.Unit{CourseID: course.ID, Title: "Syntax", Order: 1, IsActive: true}
	require.NoError(t, db.Create(&unit).Error)

	mcq := model.Question{
		UnitID: unit.ID, CourseID: course.ID, Type: model.QuestionTypeMCQ,
		QuestionText: "Which keyword declares a variable?", Order: 1, Points: 5, IsActive: true,
		QuestionData: []byte(`{"options":["var","let","def"],"correctAnswer":0}`),
	}
	require.NoError(t, db.Create(&mcq).Error)

	blank := model.Question{
		UnitID: unit.ID, CourseID: course.ID, Type: model.QuestionTypeFillBlank,
		QuestionText: "The builtin that appends to a slice is ____.", Order: 2, Points: 3, IsActive: true,
		QuestionData: []byte(`{"correctAnswers":["append"]}`),
	}
	require.NoError(t, db.Create(&blank).Error)

	freeText := model.Question{
		UnitID: unit.ID, CourseID: course.ID, Type: model.QuestionTypeText,
		QuestionText: "Explain how defer ordering works.", Order: 3, Points: 2, IsActive: true,
	}
	require.NoError(t, db.Create(&freeText).Error)

	user := model.User{Email: "ana@example.com", Name: "Ana", Method: model.MethodPassword, IsActive: true}
	require.NoError(t, db.Create(&user).Error)

	tokens := auth.NewTokenManager(auth.TokenConfig{Secret: "test-secret", Issuer: "test"})
	token, err := tokens.Generate(user.ID, user.Email, user.Name, user.Method, "user")
	require.NoError(t, err)

	authMiddleware := middleware.NewAuthMiddleware(tokens, db)
	handler := NewProgressHandler(db)

	app := fiber.New()
	app.Use(authMiddleware.Session())
	app.Get("/api/progress", authMiddleware.Required(), handler.GetProgress)
	app.Post("/api/progress/enroll", authMiddleware.Required(), handler.Enroll)
	app.Post("/api/progress/answer", authMiddleware.Required(), handler.SubmitAnswer)

	return &fixture{
		app:      app,
		db:       db,
		cookie:   &http.Cookie{Name: auth.SessionCookieName, Value: token},
		course:   course,
		unit:     unit,
		mcq:      mcq,
		blank:    blank,
		freeText: freeText,
	}
}

func (f *fixture) post(t *testing.T, path string, body interface{}) *http.Response {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(f.cookie)

	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (f *fixture) enroll(t *testing.T) {
	t.Helper()
	resp := f.post(t, "/api/progress/enroll", map[string]interface{}{"courseId": f.course.ID.String()})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

func decodeData(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	return data
}

func TestEnrollIsIdempotent(t *testing.T) {
	f := setupFixture(t)
	f.enroll(t)

	resp := f.post(t, "/api/progress/enroll", map[string]interface{}{"courseId": f.course.ID.String()})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	f.db.Model(&model.UserProgress{}).Count(&count)
	assert.Equal(t, int64(1), count)

	var prog model.UserProgress
	require.NoError(t, f.db.First(&prog).Error)
	assert.Equal(t, 10, prog.ScoreTotal) // 5 + 3 + 2
}

func TestEnrollUnknownCourse(t *testing.T) {
	f := setupFixture(t)

	resp := f.post(t, "/api/progress/enroll", map[string]interface{}{"courseId": uuid.New().String()})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAnswerRequiresEnrollment(t *testing.T) {
	f := setupFixture(t)

	resp := f.post(t, "/api/progress/answer", map[string]interface{}{
		"courseId":   f.course.ID.String(),
		"questionId": f.mcq.ID.String(),
		"answer":     0,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMCQGrading(t *testing.T) {
	f := setupFixture(t)
	f.enroll(t)

	resp := f.post(t, "/api/progress/answer", map[string]interface{}{
		"courseId":   f.course.ID.String(),
		"questionId": f.mcq.ID.String(),
		"answer":     0,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := decodeData(t, resp)
	assert.Equal(t, true, data["isCorrect"])
	assert.Equal(t, true, data["graded"])
	assert.Equal(t, float64(5), data["pointsEarned"])
	assert.Equal(t, float64(5), data["scoreEarned"])
	assert.Equal(t, float64(10), data["scoreTotal"])
	assert.Equal(t, float64(50), data["scorePercent"])
}

func TestMCQWrongAnswer(t *testing.T) {
	f := setupFixture(t)
	f.enroll(t)

	resp := f.post(t, "/api/progress/answer", map[string]interface{}{
		"courseId":   f.course.ID.String(),
		"questionId": f.mcq.ID.String(),
		"answer":     2,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := decodeData(t, resp)
	assert.Equal(t, false, data["isCorrect"])
	assert.Equal(t, float64(0), data["pointsEarned"])
}

func TestFillBlankCaseInsensitive(t *testing.T) {
	f := setupFixture(t)
	f.enroll(t)

	resp := f.post(t, "/api/progress/answer", map[string]interface{}{
		"courseId":   f.course.ID.String(),
		"questionId": f.blank.ID.String(),
		"answer":     "  APPEND ",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := decodeData(t, resp)
	assert.Equal(t, true, data["isCorrect"])
	assert.Equal(t, float64(3), data["pointsEarned"])
}

func TestTextAnswerRecordedUngraded(t *testing.T) {
	f := setupFixture(t)
	f.enroll(t)

	resp := f.post(t, "/api/progress/answer", map[string]interface{}{
		"courseId":   f.course.ID.String(),
		"questionId": f.freeText.ID.String(),
		"answer":     "Deferred calls run LIFO when the function returns.",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := decodeData(t, resp)
	assert.Equal(t, false, data["graded"])
	assert.Equal(t, float64(0), data["pointsEarned"])

	var prog model.UserProgress
	require.NoError(t, f.db.First(&prog).Error)

	var records []model.AnswerRecord
	require.NoError(t, json.Unmarshal(prog.Answers, &records))
	require.Len(t, records, 1)
	assert.Equal(t, f.freeText.ID, records[0].QuestionID)
	assert.Equal(t, 1, records[0].Attempts)
}

func TestRetryBumpsAttempts(t *testing.T) {
	f := setupFixture(t)
	f.enroll(t)

	body := map[string]interface{}{
		"courseId":   f.course.ID.String(),
		"questionId": f.mcq.ID.String(),
		"answer":     2,
	}
	f.post(t, "/api/progress/answer", body)

	body["answer"] = 0
	resp := f.post(t, "/api/progress/answer", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var prog model.UserProgress
	require.NoError(t, f.db.First(&prog).Error)

	var records []model.AnswerRecord
	require.NoError(t, json.Unmarshal(prog.Answers, &records))
	require.Len(t, records, 1)
	assert.Equal(t, 2, records[0].Attempts)
	assert.True(t, records[0].IsCorrect)
	assert.Equal(t, 5, prog.ScoreEarned)
}

func TestCompletionAfterAllQuestionsAnswered(t *testing.T) {
	f := setupFixture(t)
	f.enroll(t)

	for _, q := range []struct {
		id     uuid.UUID
		answer interface{}
	}{
		{f.mcq.ID, 0},
		{f.blank.ID, "append"},
		{f.freeText.ID, "LIFO"},
	} {
		resp := f.post(t, "/api/progress/answer", map[string]interface{}{
			"courseId":   f.course.ID.String(),
			"questionId": q.id.String(),
			"answer":     q.answer,
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	var prog model.UserProgress
	require.NoError(t, f.db.First(&prog).Error)

	var completed []uuid.UUID
	require.NoError(t, json.Unmarshal(prog.CompletedUnits, &completed))
	assert.Equal(t, []uuid.UUID{f.unit.ID}, completed)
	assert.NotNil(t, prog.CompletedAt)
	assert.Equal(t, 8, prog.ScoreEarned)
}

func TestCompletionIgnoresUnitsWithoutQuestions(t *testing.T) {
	f := setupFixture(t)
	f.enroll(t)

	empty := model.Unit{CourseID: f.course.ID, Title: "Placeholder", Order: 2, IsActive: true}
	require.NoError(t, f.db.Create(&empty).Error)

	for _, q := range []struct {
		id     uuid.UUID
		answer interface{}
	}{
		{f.mcq.ID, 0},
		{f.blank.ID, "append"},
		{f.freeText.ID, "LIFO"},
	} {
		resp := f.post(t, "/api/progress/answer", map[string]interface{}{
			"courseId":   f.course.ID.String(),
			"questionId": q.id.String(),
			"answer":     q.answer,
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	var prog model.UserProgress
	require.NoError(t, f.db.First(&prog).Error)

	var completed []uuid.UUID
	require.NoError(t, json.Unmarshal(prog.CompletedUnits, &completed))
	assert.Equal(t, []uuid.UUID{f.unit.ID}, completed)
	assert.NotNil(t, prog.CompletedAt)
}
