package repository

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LogEntryDocument is a log entry as stored in the logs collection.
type LogEntryDocument struct {
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
	Caller     string             `bson:"caller,omitempty" json:"caller,omitempty"`
	CallID     string             `bson:"call_id,omitempty" json:"call_id,omitempty"`
	Tool       string             `bson:"tool,omitempty" json:"tool,omitempty"`
	Outcome    string             `bson:"outcome,omitempty" json:"outcome,omitempty"`
	Fields     map[string]any     `bson:"fields,omitempty" json:"fields,omitempty"`
}

func (d *LogEntryDocument) prepare() {
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	if d.Timestamp.IsZero() {
		d.Timestamp = time.Now()
	}
}

// LogQueryOptions filters Query and Count. Zero values match everything.
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

// filter builds the Mongo filter shared by Query and Count. Path matches as a
// case-insensitive substring.
func (o LogQueryOptions) filter() bson.M {
	f := bson.M{}
	for field, v := range map[string]string{
		"request_id": o.RequestID,
		"call_id":    o.CallID,
		"tool":       o.Tool,
		"level":      o.Level,
		"method":     o.Method,
	} {
		if v != "" {
			f[field] = v
		}
	}
	if o.Path != "" {
		f["path"] = bson.M{"$regex": regexp.QuoteMeta(o.Path), "$options": "i"}
	}
	if o.StartTime != nil || o.EndTime != nil {
		ts := bson.M{}
		if o.StartTime != nil {
			ts["$gte"] = *o.StartTime
		}
		if o.EndTime != nil {
			ts["$lte"] = *o.EndTime
		}
		f["timestamp"] = ts
	}
	return f
}

// LogsRepository reads and writes the logs collection.
type LogsRepository struct {
	collection *mongo.Collection
}

// NewLogsRepository creates a new logs repository.
func NewLogsRepository(db *MongoDB) *LogsRepository {
	return &LogsRepository{collection: db.Logs}
}

// Create inserts one entry, assigning an ID and timestamp when missing.
func (r *LogsRepository) Create(ctx context.Context, entry *LogEntryDocument) error {
	entry.prepare()
	_, err := r.collection.InsertOne(ctx, entry)
	return err
}

// CreateMany inserts entries in one unordered batch.
func (r *LogsRepository) CreateMany(ctx context.Context, entries []*LogEntryDocument) error {
	if len(entries) == 0 {
		return nil
	}

	docs := make([]any, len(entries))
	for i, entry := range entries {
		entry.prepare()
		docs[i] = entry
	}

	_, err := r.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	return err
}

// Query returns matching entries, newest first.
func (r *LogsRepository) Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	if opts.Limit > 0 {
		findOptions.SetLimit(int64(opts.Limit))
	}
	if opts.Skip > 0 {
		findOptions.SetSkip(int64(opts.Skip))
	}

	cursor, err := r.collection.Find(ctx, opts.filter(), findOptions)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var entries []*LogEntryDocument
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Count returns the number of matching entries. Limit and Skip are ignored.
func (r *LogsRepository) Count(ctx context.Context, opts LogQueryOptions) (int64, error) {
	return r.collection.CountDocuments(ctx, opts.filter())
}
