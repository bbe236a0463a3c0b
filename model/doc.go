package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// toJSON marshals a validated sub-document into a JSON column value
func toJSON(v interface{}) datatypes.JSON {
	b, _ := json.Marshal(v)
	return datatypes.JSON(b)
}

// ApplyDoc copies a sanitized validation doc onto the course. Only keys
// present in the doc are touched, which is what makes partial updates
// partial: load, apply, save.
func (c *Course) ApplyDoc(doc map[string]interface{}) {
	for key, val := range doc {
		switch key {
		case "title":
			c.Title = val.(string)
		case "description":
			c.Description = val.(string)
		case "instructor":
			c.Instructor = val.(string)
		case "instructorId":
			c.InstructorID = val.(uuid.UUID)
		case "category":
			c.Category = val.(string)
		case "level":
			c.Level = val.(string)
		case "price":
			c.Price = val.(float64)
		case "currency":
			c.Currency = val.(string)
		case "tags":
			c.Tags = toJSON(val)
		case "isActive":
			c.IsActive = val.(bool)
		case "isPublished":
			c.IsPublished = val.(bool)
		case "createdAt":
			c.CreatedAt = val.(time.Time)
		case "updatedAt":
			c.UpdatedAt = val.(time.Time)
		}
	}
}

// ApplyDoc copies a sanitized validation doc onto the unit
func (u *Unit) ApplyDoc(doc map[string]interface{}) {
	for key, val := range doc {
		switch key {
		case "courseId":
			u.CourseID = val.(uuid.UUID)
		case "title":
			u.Title = val.(string)
		case "description":
			u.Description = val.(string)
		case "content":
			u.Content = val.(string)
		case "order":
			u.Order = val.(int)
		case "media":
			u.Media = toJSON(val)
		case "isActive":
			u.IsActive = val.(bool)
		case "createdAt":
			u.CreatedAt = val.(time.Time)
		case "updatedAt":
			u.UpdatedAt = val.(time.Time)
		}
	}
}

// ApplyDoc copies a sanitized validation doc onto the question
func (q *Question) ApplyDoc(doc map[string]interface{}) {
	for key, val := range doc {
		switch key {
		case "unitId":
			q.UnitID = val.(uuid.UUID)
		case "courseId":
			q.CourseID = val.(uuid.UUID)
		case "type":
			q.Type = val.(string)
		case "questionText":
			q.QuestionText = val.(string)
		case "explanation":
			q.Explanation = val.(string)
		case "points":
			q.Points = val.(int)
		case "difficulty":
			q.Difficulty = val.(string)
		case "order":
			q.Order = val.(int)
		case "media":
			q.Media = toJSON(val)
		case "questionData":
			q.QuestionData = toJSON(val)
		case "isActive":
			q.IsActive = val.(bool)
		case "createdAt":
			q.CreatedAt = val.(time.Time)
		case "updatedAt":
			q.UpdatedAt = val.(time.Time)
		}
	}
}
