package service

import (
	"context"

	"github.com/sirupsen/logrus"
)

type requestIDKey struct{}

// WithRequestID stores the request id carried into audit entries.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the id stored by WithRequestID, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// AuditService records every mutation as a structured log entry.
type AuditService interface {
	LogCreate(ctx context.Context, entityName string, entityID int64, newValue any)
	LogUpdate(ctx context.Context, entityName string, entityID int64, oldValue, newValue any)
	LogDelete(ctx context.Context, entityName string, entityID int64, oldValue any)
	// LogBulk records a mutation touching many rows at once.
	LogBulk(ctx context.Context, action string, entityName string, affected int64)
}

type auditService struct {
	log *logrus.Logger
}

func NewAuditService(log *logrus.Logger) AuditService {
	return &auditService{log: log}
}

func (s *auditService) entry(ctx context.Context, action, entityName string) *logrus.Entry {
	fields := logrus.Fields{
		"audit":  true,
		"action": action,
		"entity": entityName,
	}
	if id := RequestID(ctx); id != "" {
		fields["request_id"] = id
	}
	return s.log.WithContext(ctx).WithFields(fields)
}

// LogCreate logs a create action
func (s *auditService) LogCreate(ctx context.Context, entityName string, entityID int64, newValue any) {
	s.entry(ctx, "create", entityName).WithFields(logrus.Fields{
		"entity_id": entityID,
		"new_value": newValue,
	}).Info("audit")
}

// LogUpdate logs an update action with old and new values
func (s *auditService) LogUpdate(ctx context.Context, entityName string, entityID int64, oldValue, newValue any) {
	s.entry(ctx, "update", entityName).WithFields(logrus.Fields{
		"entity_id": entityID,
		"old_value": oldValue,
		"new_value": newValue,
	}).Info("audit")
}

// LogDelete logs a delete action with old value
func (s *auditService) LogDelete(ctx context.Context, entityName string, entityID int64, oldValue any) {
	s.entry(ctx, "delete", entityName).WithFields(logrus.Fields{
		"entity_id": entityID,
		"old_value": oldValue,
	}).Info("audit")
}

func (s *auditService) LogBulk(ctx context.Context, action string, entityName string, affected int64) {
	s.entry(ctx, action, entityName).WithField("affected", affected).Info("audit")
}
