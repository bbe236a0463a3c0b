package validation

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCoursePayload() map[string]interface{} {
	return map[string]interface{}{
		"title":       "Go for Backend Engineers",
		"description": "A practical course on building services in Go.",
		"instructor":  "Jane Doe",
		"category":    "Technology",
		"level":       "Beginner",
	}
}

func TestCourseInsertRequiresFields(t *testing.T) {
	_, err := Course(map[string]interface{}{}, false)
	require.Error(t, err)

	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Course", verr.Entity)
	assert.Contains(t, verr.Violations, "title is required")
	assert.Contains(t, verr.Violations, "description is required")
	assert.Contains(t, verr.Violations, "instructor is required")
	assert.Contains(t, verr.Violations, "category is required")
	assert.Contains(t, verr.Violations, "level is required")
}

func TestCourseCollectsAllViolations(t *testing.T) {
	payload := validCoursePayload()
	payload["title"] = "ab"              // too short
	payload["category"] = "Cooking"      // not in enum
	payload["price"] = -5                // negative
	payload["instructorId"] = "not-a-id" // bad reference

	_, err := Course(payload, false)
	require.Error(t, err)

	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Violations, 4)
}

func TestCourseInsertStampsTimestamps(t *testing.T) {
	before := time.Now()
	doc, err := Course(validCoursePayload(), false)
	require.NoError(t, err)

	createdAt, ok := doc["createdAt"].(time.Time)
	require.True(t, ok)
	assert.False(t, createdAt.Before(before))

	updatedAt, ok := doc["updatedAt"].(time.Time)
	require.True(t, ok)
	assert.False(t, updatedAt.Before(before))
}

func TestCourseUpdateIsPartial(t *testing.T) {
	doc, err := Course(map[string]interface{}{"title": "New Title Only"}, true)
	require.NoError(t, err)

	assert.Equal(t, "New Title Only", doc["title"])
	assert.NotContains(t, doc, "description")
	assert.NotContains(t, doc, "createdAt")
	assert.Contains(t, doc, "updatedAt")
}

func TestCourseCoercesTypes(t *testing.T) {
	instructorID := uuid.New()

	payload := validCoursePayload()
	payload["price"] = "49.99"
	payload["isPublished"] = "true"
	payload["isActive"] = "false"
	payload["instructorId"] = instructorID.String()
	payload["tags"] = []interface{}{" go ", "", "backend", 42}

	doc, err := Course(payload, false)
	require.NoError(t, err)

	assert.Equal(t, 49.99, doc["price"])
	assert.Equal(t, true, doc["isPublished"])
	assert.Equal(t, false, doc["isActive"])
	assert.Equal(t, instructorID, doc["instructorId"])
	assert.Equal(t, []string{"go", "backend"}, doc["tags"])
}

func TestCourseTrimsStrings(t *testing.T) {
	payload := validCoursePayload()
	payload["title"] = "  Spaced Out Title  "

	doc, err := Course(payload, false)
	require.NoError(t, err)
	assert.Equal(t, "Spaced Out Title", doc["title"])
}

func TestCourseEnumViolationNamesAllowedValues(t *testing.T) {
	payload := validCoursePayload()
	payload["level"] = "Expert"

	_, err := Course(payload, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Beginner, Intermediate, Advanced")
}

func TestCourseNormalizedDocRevalidatesUnchanged(t *testing.T) {
	payload := validCoursePayload()
	payload["price"] = "49.99"
	payload["currency"] = "EUR"
	payload["isPublished"] = "true"
	payload["instructorId"] = uuid.New().String()
	payload["tags"] = []interface{}{" go ", "backend"}

	doc, err := Course(payload, false)
	require.NoError(t, err)

	redone, err := Course(doc, true)
	require.NoError(t, err)

	for field, value := range doc {
		if field == "createdAt" || field == "updatedAt" {
			continue
		}
		assert.Equal(t, value, redone[field], field)
	}
	assert.NotContains(t, redone, "createdAt")

	first := doc["updatedAt"].(time.Time)
	second := redone["updatedAt"].(time.Time)
	assert.False(t, second.Before(first))
}

func TestCourseCurrencyEnum(t *testing.T) {
	payload := validCoursePayload()
	payload["currency"] = "JPY"
	_, err := Course(payload, false)
	require.Error(t, err)

	payload["currency"] = "EUR"
	doc, err := Course(payload, false)
	require.NoError(t, err)
	assert.Equal(t, "EUR", doc["currency"])
}
