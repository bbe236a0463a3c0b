package validation

import (
	"fmt"
	"strings"
	"time"
)

// Closed enums for question fields
var (
	ValidQuestionTypes      = []string{"MCQ", "FILL_BLANK", "TEXT", "AUDIO"}
	ValidDifficulties       = []string{"easy", "medium", "hard"}
	ValidQuestionMediaTypes = []string{"image", "audio", "video"}
)

// Question validates and sanitizes a question payload. The questionData
// sub-payload is dispatched on the type field; an unrecognized type fails.
func Question(payload map[string]interface{}, isUpdate bool) (map[string]interface{}, error) {
	violations := []string{}
	doc := map[string]interface{}{}

	if !isUpdate {
		for _, field := range []string{"unitId", "courseId", "type", "questionText", "order"} {
			if !present(payload, field) {
				violations = append(violations, field+" is required")
			}
		}
	}

	for _, field := range []string{"unitId", "courseId"} {
		if present(payload, field) {
			if id, ok := asRef(payload[field]); ok {
				doc[field] = id
			} else {
				violations = append(violations, fmt.Sprintf("Invalid %s format", field))
			}
		}
	}

	questionType := ""
	if present(payload, "type") {
		if t, ok := asString(payload["type"]); ok && contains(ValidQuestionTypes, t) {
			questionType = t
			doc["type"] = t
		} else {
			violations = append(violations, enumError("Type", ValidQuestionTypes))
		}
	}

	if present(payload, "questionText") {
		if text, ok := asString(payload["questionText"]); !ok {
			violations = append(violations, "Question text must be a string")
		} else if len(text) < 10 || len(text) > 1000 {
			violations = append(violations, "Question text must be between 10 and 1000 characters")
		} else {
			doc["questionText"] = strings.TrimSpace(text)
		}
	}

	if present(payload, "explanation") {
		if explanation, ok := asString(payload["explanation"]); !ok {
			violations = append(violations, "Explanation must be a string")
		} else if len(explanation) > 1000 {
			violations = append(violations, "Explanation must not exceed 1000 characters")
		} else {
			doc["explanation"] = strings.TrimSpace(explanation)
		}
	}

	if present(payload, "points") {
		if points, ok := asInt(payload["points"]); !ok || points < 1 || points > 100 {
			violations = append(violations, "Points must be an integer between 1 and 100")
		} else {
			doc["points"] = points
		}
	}

	if present(payload, "difficulty") {
		if difficulty, ok := asString(payload["difficulty"]); ok && contains(ValidDifficulties, difficulty) {
			doc["difficulty"] = difficulty
		} else {
			violations = append(violations, enumError("Difficulty", ValidDifficulties))
		}
	}

	if present(payload, "order") {
		if order, ok := asInt(payload["order"]); !ok || order < 1 {
			violations = append(violations, "Order must be a positive integer")
		} else {
			doc["order"] = order
		}
	}

	if present(payload, "media") {
		media, ok := asMap(payload["media"])
		if !ok {
			violations = append(violations, "Media must be an object")
		} else {
			sanitizedMedia, mediaViolations := validateMedia(media, ValidQuestionMediaTypes)
			if len(mediaViolations) > 0 {
				violations = append(violations, mediaViolations...)
			} else {
				doc["media"] = sanitizedMedia
			}
		}
	}

	if present(payload, "questionData") {
		data, dataViolations := QuestionData(questionType, payload["questionData"])
		if len(dataViolations) > 0 {
			violations = append(violations, dataViolations...)
		} else {
			doc["questionData"] = data
		}
	}

	if _, ok := payload["isActive"]; ok {
		doc["isActive"] = asBool(payload["isActive"])
	}

	now := time.Now()
	if !isUpdate {
		doc["createdAt"] = now
	}
	doc["updatedAt"] = now

	if len(violations) > 0 {
		return nil, &Error{Entity: "Question", Violations: violations}
	}

	return doc, nil
}

// QuestionData validates the type-specific payload of a question.
// A payload without a recognized type cannot be validated and fails.
func QuestionData(questionType string, raw interface{}) (map[string]interface{}, []string) {
	data, ok := asMap(raw)
	if !ok {
		return nil, []string{"Question data must be an object"}
	}

	switch questionType {
	case "MCQ":
		options, ok := asSlice(data["options"])
		if !ok || len(options) < 2 {
			return nil, []string{"MCQ must have at least 2 options"}
		}
		correct, ok := asInt(data["correctAnswer"])
		if !ok || correct < 0 || correct >= len(options) {
			return nil, []string{"MCQ must have a valid correct answer index"}
		}
		sanitized := map[string]interface{}{
			"options":       options,
			"correctAnswer": correct,
		}
		return sanitized, nil

	case "FILL_BLANK":
		answers, ok := asSlice(data["correctAnswers"])
		if !ok || len(answers) == 0 {
			return nil, []string{"Fill-in-blank must have at least one correct answer"}
		}
		return map[string]interface{}{"correctAnswers": answers}, nil

	case "TEXT":
		sanitized := map[string]interface{}{}
		if present(data, "maxLength") {
			maxLength, ok := asInt(data["maxLength"])
			if !ok || maxLength < 1 {
				return nil, []string{"Text question max length must be a positive integer"}
			}
			sanitized["maxLength"] = maxLength
		}
		return sanitized, nil

	case "AUDIO":
		audioURL, ok := asString(data["audioUrl"])
		if !ok || strings.TrimSpace(audioURL) == "" {
			return nil, []string{"Audio question must have a valid audio URL"}
		}
		return map[string]interface{}{"audioUrl": strings.TrimSpace(audioURL)}, nil

	default:
		return nil, []string{fmt.Sprintf("Unknown question type: %q", questionType)}
	}
}
