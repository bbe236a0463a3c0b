package validation

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validQuestionPayload() map[string]interface{} {
	return map[string]interface{}{
		"unitId":       uuid.New().String(),
		"courseId":     uuid.New().String(),
		"type":         "MCQ",
		"questionText": "Which keyword declares a variable in Go?",
		"order":        float64(1),
		"questionData": map[string]interface{}{
			"options":       []interface{}{"var", "let", "def"},
			"correctAnswer": float64(0),
		},
	}
}

func TestQuestionInsertRequiresFields(t *testing.T) {
	_, err := Question(map[string]interface{}{}, false)
	require.Error(t, err)

	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Violations, "unitId is required")
	assert.Contains(t, verr.Violations, "courseId is required")
	assert.Contains(t, verr.Violations, "type is required")
	assert.Contains(t, verr.Violations, "questionText is required")
	assert.Contains(t, verr.Violations, "order is required")
}

func TestQuestionValidInsert(t *testing.T) {
	doc, err := Question(validQuestionPayload(), false)
	require.NoError(t, err)

	assert.Equal(t, "MCQ", doc["type"])
	assert.Equal(t, 1, doc["order"])
	assert.IsType(t, uuid.UUID{}, doc["unitId"])

	data, ok := doc["questionData"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 0, data["correctAnswer"])
}

func TestQuestionMCQCorrectAnswerOutOfRange(t *testing.T) {
	payload := validQuestionPayload()
	payload["questionData"] = map[string]interface{}{
		"options":       []interface{}{"yes", "no"},
		"correctAnswer": float64(2),
	}

	_, err := Question(payload, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "valid correct answer index")
}

func TestQuestionMCQNeedsTwoOptions(t *testing.T) {
	payload := validQuestionPayload()
	payload["questionData"] = map[string]interface{}{
		"options":       []interface{}{"only one"},
		"correctAnswer": float64(0),
	}

	_, err := Question(payload, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 2 options")
}

func TestQuestionFillBlank(t *testing.T) {
	payload := validQuestionPayload()
	payload["type"] = "FILL_BLANK"
	payload["questionData"] = map[string]interface{}{
		"correctAnswers": []interface{}{"var"},
	}

	doc, err := Question(payload, false)
	require.NoError(t, err)
	assert.Equal(t, "FILL_BLANK", doc["type"])

	payload["questionData"] = map[string]interface{}{
		"correctAnswers": []interface{}{},
	}
	_, err = Question(payload, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one correct answer")
}

func TestQuestionAudioNeedsURL(t *testing.T) {
	payload := validQuestionPayload()
	payload["type"] = "AUDIO"
	payload["questionData"] = map[string]interface{}{"audioUrl": "   "}

	_, err := Question(payload, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "valid audio URL")
}

func TestQuestionDataUnknownType(t *testing.T) {
	_, violations := QuestionData("ESSAY", map[string]interface{}{})
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0], "Unknown question type")
}

func TestQuestionTextBounds(t *testing.T) {
	payload := validQuestionPayload()
	payload["questionText"] = "short"

	_, err := Question(payload, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "between 10 and 1000")
}

func TestQuestionPointsRange(t *testing.T) {
	payload := validQuestionPayload()
	payload["points"] = float64(101)

	_, err := Question(payload, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "between 1 and 100")
}

func TestQuestionUpdateIsPartial(t *testing.T) {
	doc, err := Question(map[string]interface{}{"points": float64(5)}, true)
	require.NoError(t, err)

	assert.Equal(t, 5, doc["points"])
	assert.NotContains(t, doc, "type")
	assert.NotContains(t, doc, "createdAt")
	assert.Contains(t, doc, "updatedAt")
}

func TestUnitMediaValidation(t *testing.T) {
	payload := map[string]interface{}{
		"courseId": uuid.New().String(),
		"title":    "Getting Started",
		"order":    float64(1),
		"media": map[string]interface{}{
			"type":     "hologram",
			"url":      "  ",
			"duration": float64(-1),
		},
	}

	_, err := Unit(payload, false)
	require.Error(t, err)

	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Violations, 3)

	payload["media"] = map[string]interface{}{
		"type":     "video",
		"url":      "https://cdn.example.com/intro.mp4",
		"duration": float64(300),
	}
	doc, err := Unit(payload, false)
	require.NoError(t, err)

	media, ok := doc["media"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "video", media["type"])
	assert.Equal(t, 300, media["duration"])
}
