package service

import (
	"context"
	"time"

	"github.com/milestonetrucks/voice-agent/internal/domain/model"
	"github.com/milestonetrucks/voice-agent/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LoggingService stores and reads back request and tool-call logs.
type LoggingService interface {
	CreateLog(ctx context.Context, entry *model.LogEntry) error
	CreateLogs(ctx context.Context, entries []*model.LogEntry) error
	// QueryLogs returns matching entries, newest first.
	QueryLogs(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error)
	CountLogs(ctx context.Context, opts model.LogQueryOptions) (int64, error)
}

// LoggingServiceImpl maps log entries onto the logs repository.
type LoggingServiceImpl struct {
	repo repository.LogsRepositoryInterface
}

func NewLoggingService(repo repository.LogsRepositoryInterface) LoggingService {
	return &LoggingServiceImpl{repo: repo}
}

func (s *LoggingServiceImpl) CreateLog(ctx context.Context, entry *model.LogEntry) error {
	return s.repo.Create(ctx, toDocument(entry))
}

// CreateLogs writes the batch with a single insert. An empty batch is a no-op.
func (s *LoggingServiceImpl) CreateLogs(ctx context.Context, entries []*model.LogEntry) error {
	if len(entries) == 0 {
		return nil
	}

	docs := make([]*repository.LogEntryDocument, 0, len(entries))
	for _, entry := range entries {
		docs = append(docs, toDocument(entry))
	}
	return s.repo.CreateMany(ctx, docs)
}

func (s *LoggingServiceImpl) QueryLogs(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error) {
	docs, err := s.repo.Query(ctx, repository.LogQueryOptions(opts))
	if err != nil {
		return nil, err
	}

	entries := make([]model.LogEntry, 0, len(docs))
	for _, doc := range docs {
		entries = append(entries, toModel(doc))
	}
	return entries, nil
}

func (s *LoggingServiceImpl) CountLogs(ctx context.Context, opts model.LogQueryOptions) (int64, error) {
	return s.repo.Count(ctx, repository.LogQueryOptions(opts))
}

// toDocument stamps entry with an ID and timestamp if it has none, so callers can
// refer to the stored entry.
func toDocument(entry *model.LogEntry) *repository.LogEntryDocument {
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	doc := repository.LogEntryDocument(*entry)
	return &doc
}

// toModel relies on LogEntry and LogEntryDocument declaring the same fields in the
// same order; the compiler rejects the conversion if they drift.
func toModel(doc *repository.LogEntryDocument) model.LogEntry {
	return model.LogEntry(*doc)
}
