package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LogEntry is a request or tool-call record kept in the logs collection.
// Tool-specific inputs go in Fields.
type LogEntry struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Timestamp  time.Time          `bson:"timestamp" json:"timestamp"`
	Level      string             `bson:"level" json:"level"`
	Message    string             `bson:"message" json:"message"`
	RequestID  string             `bson:"request_id,omitempty" json:"request_id,omitempty"`
	Method     string             `bson:"method,omitempty" json:"method,omitempty"`
	Path       string             `bson:"path,omitempty" json:"path,omitempty"`
	StatusCode int                `bson:"status_code,omitempty" json:"status_code,omitempty"`
	Duration   int64              `bson:"duration_ms,omitempty" json:"duration_ms,omitempty"`
	IP         string             `bson:"ip,omitempty" json:"ip,omitempty"`
	UserAgent  string             `bson:"user_agent,omitempty" json:"user_agent,omitempty"`
	Error      string             `bson:"error,omitempty" json:"error,omitempty"`

	// Caller is the voice agent that signed the webhook token, CallID the phone call it
	// was serving.
	Caller string `bson:"caller,omitempty" json:"caller,omitempty"`
	CallID string `bson:"call_id,omitempty" json:"call_id,omitempty"`
	// Tool is the webhook tool name, e.g. "calculate-materials". Empty for plain request logs.
	Tool    string         `bson:"tool,omitempty" json:"tool,omitempty"`
	Outcome string         `bson:"outcome,omitempty" json:"outcome,omitempty"`
	Fields  map[string]any `bson:"fields,omitempty" json:"fields,omitempty"`
}

// WithField adds a field to the entry, allocating Fields if needed.
func (e *LogEntry) WithField(key string, value any) *LogEntry {
	if e.Fields == nil {
		e.Fields = make(map[string]any)
	}
	e.Fields[key] = value
	return e
}

// WithFields copies fields into the entry. The caller's map is never shared.
func (e *LogEntry) WithFields(fields map[string]any) *LogEntry {
	if len(fields) == 0 {
		return e
	}
	if e.Fields == nil {
		e.Fields = make(map[string]any, len(fields))
	}
	for k, v := range fields {
		e.Fields[k] = v
	}
	return e
}

// LogQueryOptions filters log queries. Zero values match everything.
type LogQueryOptions struct {
	RequestID string
	CallID    string
	Tool      string
	Level     string
	Method    string
	Path      string
	StartTime *time.Time
	EndTime   *time.Time
	Limit     int
	Skip      int
}
