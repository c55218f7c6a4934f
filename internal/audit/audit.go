package audit

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// OperationType represents the type of operation performed
type OperationType string

const (
	OperationCreate OperationType = "CREATE"
	OperationDelete OperationType = "DELETE"
)

// ResourceType represents the type of resource being changed
type ResourceType string

const (
	ResourceHealthRecord ResourceType = "health_record"
	ResourceAppointment  ResourceType = "appointment"
)

// ErrNoDatabase is returned when querying an audit trail that is only logged
var ErrNoDatabase = errors.New("audit database not configured")

// Schema creates the audit_logs table
const Schema = `
	CREATE TABLE IF NOT EXISTS audit_logs (
		id BIGSERIAL PRIMARY KEY,
		member_id INTEGER NOT NULL,
		operation_type VARCHAR(20) NOT NULL,
		resource_type VARCHAR(50) NOT NULL,
		resource_id VARCHAR(100) NOT NULL,
		timestamp TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		ip_address VARCHAR(64),
		user_agent TEXT,
		additional_data JSONB
	)`

// AuditLog represents an audit log entry
type AuditLog struct {
	MemberID       int                    `json:"member_id"`
	OperationType  OperationType          `json:"operation"`
	ResourceType   ResourceType           `json:"resource_type"`
	ResourceID     string                 `json:"resource_id"`
	Timestamp      time.Time              `json:"timestamp"`
	IPAddress      string                 `json:"ip_address,omitempty"`
	UserAgent      string                 `json:"user_agent,omitempty"`
	AdditionalData map[string]interface{} `json:"additional_data,omitempty"`
}

type requestInfoKey struct{}

type requestInfo struct {
	ip        string
	userAgent string
}

// WithRequestInfo attaches the client address and agent to ctx for later audit entries
func WithRequestInfo(ctx context.Context, ip, userAgent string) context.Context {
	return context.WithValue(ctx, requestInfoKey{}, requestInfo{ip: ip, userAgent: userAgent})
}

// Logger handles audit logging. Entries always go to the structured logger and
// are also stored in PostgreSQL when a pool is configured.
type Logger struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewLogger creates a new audit logger. db may be nil.
func NewLogger(db *pgxpool.Pool, logger *zap.Logger) *Logger {
	return &Logger{
		db:     db,
		logger: logger,
	}
}

// Log creates an audit log entry
func (l *Logger) Log(ctx context.Context, entry AuditLog) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	if info, ok := ctx.Value(requestInfoKey{}).(requestInfo); ok {
		if entry.IPAddress == "" {
			entry.IPAddress = info.ip
		}
		if entry.UserAgent == "" {
			entry.UserAgent = info.userAgent
		}
	}

	l.logger.Info("Audit log entry",
		zap.Int("member_id", entry.MemberID),
		zap.String("operation", string(entry.OperationType)),
		zap.String("resource_type", string(entry.ResourceType)),
		zap.String("resource_id", entry.ResourceID),
		zap.Time("timestamp", entry.Timestamp),
		zap.String("ip_address", entry.IPAddress),
	)

	if l.db == nil {
		return nil
	}

	query := `
		INSERT INTO audit_logs (
			member_id, operation_type, resource_type, resource_id,
			timestamp, ip_address, user_agent, additional_data
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := l.db.Exec(ctx, query,
		entry.MemberID,
		entry.OperationType,
		entry.ResourceType,
		entry.ResourceID,
		entry.Timestamp,
		entry.IPAddress,
		entry.UserAgent,
		entry.AdditionalData,
	)
	if err != nil {
		l.logger.Error("Failed to write audit log to database",
			zap.Error(err),
			zap.Int("member_id", entry.MemberID),
			zap.String("operation", string(entry.OperationType)),
			zap.String("resource_type", string(entry.ResourceType)),
		)
		return err
	}

	return nil
}

// LogCreate logs a CREATE operation
func (l *Logger) LogCreate(ctx context.Context, memberID int, resourceType ResourceType, resourceID string) error {
	return l.Log(ctx, AuditLog{
		MemberID:      memberID,
		OperationType: OperationCreate,
		ResourceType:  resourceType,
		ResourceID:    resourceID,
	})
}

// LogDelete logs a DELETE operation
func (l *Logger) LogDelete(ctx context.Context, memberID int, resourceType ResourceType, resourceID string) error {
	return l.Log(ctx, AuditLog{
		MemberID:      memberID,
		OperationType: OperationDelete,
		ResourceType:  resourceType,
		ResourceID:    resourceID,
	})
}

// GetAuditLogs retrieves the latest audit logs for a member
func (l *Logger) GetAuditLogs(ctx context.Context, memberID int, limit int) ([]AuditLog, error) {
	if l.db == nil {
		return nil, ErrNoDatabase
	}

	query := `
		SELECT member_id, operation_type, resource_type, resource_id,
		       timestamp, ip_address, user_agent
		FROM audit_logs
		WHERE member_id = $1
		ORDER BY timestamp DESC
		LIMIT $2
	`

	rows, err := l.db.Query(ctx, query, memberID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []AuditLog
	for rows.Next() {
		var log AuditLog
		err := rows.Scan(
			&log.MemberID,
			&log.OperationType,
			&log.ResourceType,
			&log.ResourceID,
			&log.Timestamp,
			&log.IPAddress,
			&log.UserAgent,
		)
		if err != nil {
			l.logger.Error("Failed to scan audit log", zap.Error(err))
			continue
		}
		logs = append(logs, log)
	}

	return logs, rows.Err()
}
