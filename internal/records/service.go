package records

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gramsehat/backend/internal/audit"
	"github.com/gramsehat/backend/pkg/model"
	"go.uber.org/zap"
)

const (
	dateLayout = "02/01/2006"

	uploadType     = "New Document"
	uploadSubtype  = "Uploaded File"
	uploadIconPDF  = "file-text"
	uploadIconFile = "image"
	uploadColor    = "#4A90E2"
)

var (
	ErrMemberNotFound = errors.New("family member not found")
	ErrRecordNotFound = errors.New("health record not found")
)

// MemberSummary is a family member with the number of records kept for them
type MemberSummary struct {
	model.FamilyMember
	RecordCount int `json:"record_count"`
}

// Service keeps per-member health records and their counters
type Service struct {
	auditor *audit.Logger
	logger  *zap.Logger
	now     func() time.Time

	mu      sync.RWMutex
	members []model.FamilyMember
	records map[int][]model.HealthRecord
	stats   map[int]model.MemberStats
	lastID  int64
}

// NewService creates a records Service seeded with the default family
func NewService(auditor *audit.Logger, logger *zap.Logger) *Service {
	return &Service{
		auditor: auditor,
		logger:  logger,
		now:     time.Now,
		members: seedMembers(),
		records: seedRecords(),
		stats:   seedStats(),
	}
}

// WithClock replaces the clock used for record ids and dates
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// FamilyMembers lists family members with their record counts
func (s *Service) FamilyMembers() []MemberSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]MemberSummary, 0, len(s.members))
	for _, m := range s.members {
		out = append(out, MemberSummary{FamilyMember: m, RecordCount: len(s.records[m.ID])})
	}
	return out
}

// Member looks up a family member
func (s *Service) Member(memberID int) (model.FamilyMember, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.member(memberID)
}

func (s *Service) member(memberID int) (model.FamilyMember, bool) {
	for _, m := range s.members {
		if m.ID == memberID {
			return m, true
		}
	}
	return model.FamilyMember{}, false
}

// Records returns a member's records, newest upload first. Unknown members have none.
func (s *Service) Records(memberID int) []model.HealthRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.HealthRecord, len(s.records[memberID]))
	copy(out, s.records[memberID])
	return out
}

// Record looks up one record of a member
func (s *Service) Record(memberID int, recordID int64) (model.HealthRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.records[memberID] {
		if r.ID == recordID {
			return r, nil
		}
	}
	return model.HealthRecord{}, ErrRecordNotFound
}

// RecordsByDate returns a member's records sorted by record date, newest first
func (s *Service) RecordsByDate(memberID int) []model.HealthRecord {
	out := s.Records(memberID)
	sort.SliceStable(out, func(i, j int) bool {
		return parseDate(out[i].Date).After(parseDate(out[j].Date))
	})
	return out
}

// AuditTrail returns the latest audit entries of a member. It fails with
// audit.ErrNoDatabase when entries are only logged.
func (s *Service) AuditTrail(ctx context.Context, memberID, limit int) ([]audit.AuditLog, error) {
	logs, err := s.auditor.GetAuditLogs(ctx, memberID, limit)
	if err != nil {
		if errors.Is(err, audit.ErrNoDatabase) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load audit trail: %w", err)
	}
	if logs == nil {
		logs = []audit.AuditLog{}
	}
	return logs, nil
}

// Stats returns a member's counters. Unknown members have zero stats.
func (s *Service) Stats(memberID int) model.MemberStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats[memberID]
}

// Upload asks picker for a document and records it for the member.
// A canceled pick changes nothing and returns a nil record.
func (s *Service) Upload(ctx context.Context, memberID int, picker Picker, source Source) (*model.HealthRecord, error) {
	if _, ok := s.Member(memberID); !ok {
		return nil, ErrMemberNotFound
	}

	result, err := picker.Pick(ctx, source)
	if err != nil {
		if errors.Is(err, ErrPermissionDenied) {
			s.logger.Info("document pick denied",
				zap.Int("member_id", memberID),
				zap.String("source", string(source)),
			)
			return nil, ErrPermissionDenied
		}
		s.logger.Warn("document pick failed",
			zap.Int("member_id", memberID),
			zap.String("source", string(source)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", ErrPickerFailed, err)
	}

	if result.Canceled || result.Asset == nil {
		return nil, nil
	}

	record := s.add(memberID, *result.Asset)

	if err := s.auditor.LogCreate(ctx, memberID, audit.ResourceHealthRecord, strconv.FormatInt(record.ID, 10)); err != nil {
		s.logger.Warn("failed to audit record upload", zap.Error(err))
	}

	s.logger.Info("health record uploaded",
		zap.Int("member_id", memberID),
		zap.Int64("record_id", record.ID),
		zap.String("source", string(source)),
	)

	return &record, nil
}

func (s *Service) add(memberID int, asset Asset) model.HealthRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	id := now.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id

	icon := uploadIconFile
	if strings.Contains(strings.ToLower(asset.MimeType), "pdf") {
		icon = uploadIconPDF
	}

	subtype := uploadSubtype
	uri := asset.URI
	record := model.HealthRecord{
		ID:          id,
		Type:        uploadType,
		Subtype:     &subtype,
		Date:        now.Format(dateLayout),
		Icon:        icon,
		IconColor:   uploadColor,
		DocumentURI: &uri,
	}

	s.records[memberID] = append([]model.HealthRecord{record}, s.records[memberID]...)

	stats := s.stats[memberID]
	stats.Prescriptions++
	s.stats[memberID] = stats

	return record
}

// Delete removes one record of the member. The prescriptions counter is
// decremented and never goes below zero.
func (s *Service) Delete(ctx context.Context, memberID int, recordID int64) error {
	s.mu.Lock()
	list := s.records[memberID]
	idx := -1
	for i, r := range list {
		if r.ID == recordID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return ErrRecordNotFound
	}

	s.records[memberID] = append(list[:idx:idx], list[idx+1:]...)

	stats := s.stats[memberID]
	if stats.Prescriptions > 0 {
		stats.Prescriptions--
	}
	s.stats[memberID] = stats
	s.mu.Unlock()

	if err := s.auditor.LogDelete(ctx, memberID, audit.ResourceHealthRecord, strconv.FormatInt(recordID, 10)); err != nil {
		s.logger.Warn("failed to audit record deletion", zap.Error(err))
	}

	s.logger.Info("health record deleted",
		zap.Int("member_id", memberID),
		zap.Int64("record_id", recordID),
	)

	return nil
}

func parseDate(s string) time.Time {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
