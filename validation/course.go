package validation

import (
	"strings"
	"time"
)

// Closed enums for course fields
var (
	ValidCategories = []string{"Technology", "Business", "Design", "Marketing", "Health", "Education", "Other"}
	ValidLevels     = []string{"Beginner", "Intermediate", "Advanced"}
	ValidCurrencies = []string{"USD", "EUR", "GBP", "INR"}
)

// Course validates and sanitizes a course payload. For full inserts
// (isUpdate=false) all required fields must be present and a createdAt
// stamp is generated; updatedAt is regenerated on every call.
func Course(payload map[string]interface{}, isUpdate bool) (map[string]interface{}, error) {
	violations := []string{}
	doc := map[string]interface{}{}

	if !isUpdate {
		for _, field := range []string{"title", "description", "instructor", "category", "level"} {
			if !present(payload, field) {
				violations = append(violations, field+" is required")
			}
		}
	}

	if present(payload, "title") {
		if title, ok := asString(payload["title"]); !ok {
			violations = append(violations, "Title must be a string")
		} else if len(title) < 3 || len(title) > 200 {
			violations = append(violations, "Title must be between 3 and 200 characters")
		} else {
			doc["title"] = strings.TrimSpace(title)
		}
	}

	if present(payload, "description") {
		if description, ok := asString(payload["description"]); !ok {
			violations = append(violations, "Description must be a string")
		} else if len(description) < 10 || len(description) > 1000 {
			violations = append(violations, "Description must be between 10 and 1000 characters")
		} else {
			doc["description"] = strings.TrimSpace(description)
		}
	}

	if present(payload, "instructor") {
		if instructor, ok := asString(payload["instructor"]); !ok {
			violations = append(violations, "Instructor must be a string")
		} else if len(instructor) < 2 || len(instructor) > 100 {
			violations = append(violations, "Instructor name must be between 2 and 100 characters")
		} else {
			doc["instructor"] = strings.TrimSpace(instructor)
		}
	}

	if present(payload, "instructorId") {
		if id, ok := asRef(payload["instructorId"]); ok {
			doc["instructorId"] = id
		} else {
			violations = append(violations, "Invalid instructor ID format")
		}
	}

	if present(payload, "category") {
		if category, ok := asString(payload["category"]); ok && contains(ValidCategories, category) {
			doc["category"] = category
		} else {
			violations = append(violations, enumError("Category", ValidCategories))
		}
	}

	if present(payload, "level") {
		if level, ok := asString(payload["level"]); ok && contains(ValidLevels, level) {
			doc["level"] = level
		} else {
			violations = append(violations, enumError("Level", ValidLevels))
		}
	}

	if present(payload, "price") {
		if price, ok := asNumber(payload["price"]); !ok || price < 0 {
			violations = append(violations, "Price must be a non-negative number")
		} else {
			doc["price"] = price
		}
	}

	if present(payload, "currency") {
		if currency, ok := asString(payload["currency"]); ok && contains(ValidCurrencies, currency) {
			doc["currency"] = currency
		} else {
			violations = append(violations, enumError("Currency", ValidCurrencies))
		}
	}

	if present(payload, "tags") {
		if arr, ok := asSlice(payload["tags"]); !ok {
			violations = append(violations, "Tags must be an array")
		} else {
			tags := []string{}
			for _, raw := range arr {
				if tag, isStr := asString(raw); isStr && strings.TrimSpace(tag) != "" {
					tags = append(tags, strings.TrimSpace(tag))
				}
			}
			doc["tags"] = tags
		}
	}

	for _, field := range []string{"isActive", "isPublished"} {
		if _, ok := payload[field]; ok {
			doc[field] = asBool(payload[field])
		}
	}

	now := time.Now()
	if !isUpdate {
		doc["createdAt"] = now
	}
	doc["updatedAt"] = now

	if len(violations) > 0 {
		return nil, &Error{Entity: "Course", Violations: violations}
	}

	return doc, nil
}
