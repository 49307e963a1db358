package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StringSlice is a JSON-encoded []string column.
type StringSlice []string

func (s StringSlice) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan unmarshals a JSON column into the slice.
func (s *StringSlice) Scan(src interface{}) error {
	b, err := jsonBytes(src)
	if err != nil {
		return fmt.Errorf("StringSlice: %w", err)
	}
	return json.Unmarshal(b, s)
}

// UintSlice is a JSON-encoded []uint column (e.g. post likes).
type UintSlice []uint

func (s UintSlice) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *UintSlice) Scan(src interface{}) error {
	b, err := jsonBytes(src)
	if err != nil {
		return fmt.Errorf("UintSlice: %w", err)
	}
	return json.Unmarshal(b, s)
}

// Contains reports whether id is present in the slice.
func (s UintSlice) Contains(id uint) bool {
	for _, v := range s {
		if v == id {
			return true
		}
	}
	return false
}

// Exercise is a single performed or planned exercise entry.
type Exercise struct {
	Name     string   `json:"name"`
	Sets     int      `json:"sets"`
	Reps     int      `json:"reps"`
	Weight   *float64 `json:"weight,omitempty"`
	Duration *int     `json:"duration,omitempty"`
}

// ExerciseList is a JSON-encoded []Exercise column.
type ExerciseList []Exercise

func (e ExerciseList) Value() (driver.Value, error) {
	return json.Marshal(e)
}

func (e *ExerciseList) Scan(src interface{}) error {
	b, err := jsonBytes(src)
	if err != nil {
		return fmt.Errorf("ExerciseList: %w", err)
	}
	return json.Unmarshal(b, e)
}

// Comment is a single post comment.
type Comment struct {
	UserID    uint      `json:"user_id"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// CommentList is a JSON-encoded []Comment column.
type CommentList []Comment

func (c CommentList) Value() (driver.Value, error) {
	return json.Marshal(c)
}

func (c *CommentList) Scan(src interface{}) error {
	b, err := jsonBytes(src)
	if err != nil {
		return fmt.Errorf("CommentList: %w", err)
	}
	return json.Unmarshal(b, c)
}

func jsonBytes(src interface{}) ([]byte, error) {
	switch v := src.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	case nil:
		return []byte("null"), nil
	default:
		return nil, fmt.Errorf("expected []byte or string, got %T", src)
	}
}
