package validation

import (
	"strings"
	"time"
)

// ValidUnitMediaTypes closes the unit media descriptor enum
var ValidUnitMediaTypes = []string{"video", "audio", "image", "pdf"}

// Unit validates and sanitizes a unit payload
func Unit(payload map[string]interface{}, isUpdate bool) (map[string]interface{}, error) {
	violations := []string{}
	doc := map[string]interface{}{}

	if !isUpdate {
		for _, field := range []string{"courseId", "title", "order"} {
			if !present(payload, field) {
				violations = append(violations, field+" is required")
			}
		}
	}

	if present(payload, "courseId") {
		if id, ok := asRef(payload["courseId"]); ok {
			doc["courseId"] = id
		} else {
			violations = append(violations, "Invalid course ID format")
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
		} else if len(description) > 500 {
			violations = append(violations, "Description must not exceed 500 characters")
		} else {
			doc["description"] = strings.TrimSpace(description)
		}
	}

	if present(payload, "content") {
		if content, ok := asString(payload["content"]); !ok {
			violations = append(violations, "Content must be a string")
		} else if len(content) > 50000 {
			violations = append(violations, "Content must not exceed 50,000 characters")
		} else {
			doc["content"] = content
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
			sanitizedMedia, mediaViolations := validateMedia(media, ValidUnitMediaTypes)
			if len(mediaViolations) > 0 {
				violations = append(violations, mediaViolations...)
			} else {
				doc["media"] = sanitizedMedia
			}
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
		return nil, &Error{Entity: "Unit", Violations: violations}
	}

	return doc, nil
}

// validateMedia checks a media descriptor: {type, url, duration, thumbnail}
func validateMedia(media map[string]interface{}, validTypes []string) (map[string]interface{}, []string) {
	violations := []string{}
	sanitized := map[string]interface{}{}

	if present(media, "type") {
		if mediaType, ok := asString(media["type"]); ok && contains(validTypes, mediaType) {
			sanitized["type"] = mediaType
		} else {
			violations = append(violations, enumError("Media type", validTypes))
		}
	}

	if present(media, "url") {
		if url, ok := asString(media["url"]); ok && strings.TrimSpace(url) != "" {
			sanitized["url"] = strings.TrimSpace(url)
		} else {
			violations = append(violations, "Media URL must be a non-empty string")
		}
	}

	if present(media, "duration") {
		if duration, ok := asInt(media["duration"]); !ok || duration < 0 {
			violations = append(violations, "Media duration must be a non-negative integer")
		} else {
			sanitized["duration"] = duration
		}
	}

	if present(media, "thumbnail") {
		if thumbnail, ok := asString(media["thumbnail"]); ok {
			sanitized["thumbnail"] = strings.TrimSpace(thumbnail)
		} else {
			violations = append(violations, "Media thumbnail must be a string")
		}
	}

	return sanitized, violations
}
