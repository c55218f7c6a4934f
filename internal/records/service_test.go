package records

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gramsehat/backend/internal/audit"
	"github.com/gramsehat/backend/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// MockPicker is a mock implementation of Picker
type MockPicker struct {
	mock.Mock
}

func (m *MockPicker) Pick(ctx context.Context, source Source) (PickResult, error) {
	args := m.Called(ctx, source)
	return args.Get(0).(PickResult), args.Error(1)
}

var fixedNow = time.Date(2025, 9, 14, 10, 30, 0, 0, time.UTC)

func newTestService() *Service {
	return NewService(audit.NewLogger(nil, zap.NewNop()), zap.NewNop()).
		WithClock(func() time.Time { return fixedNow })
}

func TestService_Seed(t *testing.T) {
	svc := newTestService()

	members := svc.FamilyMembers()
	require.Len(t, members, 3)
	assert.Equal(t, "Shaurya", members[0].Name)
	assert.Equal(t, 3, members[0].RecordCount)
	assert.Equal(t, 2, members[1].RecordCount)
	assert.Equal(t, 3, members[2].RecordCount)

	assert.Equal(t, model.MemberStats{Prescriptions: 8, LabReports: 4, Visits: 15}, svc.Stats(2))
}

func TestService_UnknownMember(t *testing.T) {
	svc := newTestService()

	assert.Empty(t, svc.Records(42))
	assert.Equal(t, model.MemberStats{}, svc.Stats(42))

	picker := new(MockPicker)
	_, err := svc.Upload(context.Background(), 42, picker, SourceDocument)
	assert.ErrorIs(t, err, ErrMemberNotFound)
	picker.AssertNotCalled(t, "Pick", mock.Anything, mock.Anything)
}

func TestService_UploadDocument(t *testing.T) {
	svc := newTestService()
	picker := new(MockPicker)
	picker.On("Pick", mock.Anything, SourceDocument).Return(PickResult{
		Asset: &Asset{URI: "file:///report.pdf", MimeType: "application/pdf"},
	}, nil)

	record, err := svc.Upload(context.Background(), 1, picker, SourceDocument)
	require.NoError(t, err)
	require.NotNil(t, record)

	assert.Equal(t, fixedNow.UnixMilli(), record.ID)
	assert.Equal(t, "New Document", record.Type)
	assert.Equal(t, "Uploaded File", *record.Subtype)
	assert.Equal(t, "14/09/2025", record.Date)
	assert.Equal(t, "file-text", record.Icon)
	assert.Equal(t, "#4A90E2", record.IconColor)
	assert.Equal(t, "file:///report.pdf", *record.DocumentURI)
	assert.Nil(t, record.Doctor)
	assert.Nil(t, record.Hospital)

	records := svc.Records(1)
	require.Len(t, records, 4)
	assert.Equal(t, record.ID, records[0].ID, "upload is prepended")
	assert.Equal(t, 6, svc.Stats(1).Prescriptions)
	assert.Equal(t, 3, svc.Stats(1).LabReports, "other counters unchanged")

	picker.AssertExpectations(t)
}

func TestService_UploadPhotoUsesImageIcon(t *testing.T) {
	svc := newTestService()
	picker := new(MockPicker)
	picker.On("Pick", mock.Anything, SourceCamera).Return(PickResult{
		Asset: &Asset{URI: "file:///photo.jpg", MimeType: "image/jpeg"},
	}, nil)

	record, err := svc.Upload(context.Background(), 3, picker, SourceCamera)
	require.NoError(t, err)
	assert.Equal(t, "image", record.Icon)
}

func TestService_UploadIDsAreUnique(t *testing.T) {
	svc := newTestService()
	picker := new(MockPicker)
	picker.On("Pick", mock.Anything, SourceDocument).Return(PickResult{
		Asset: &Asset{URI: "file:///a.png", MimeType: "image/png"},
	}, nil)

	a, err := svc.Upload(context.Background(), 1, picker, SourceDocument)
	require.NoError(t, err)
	b, err := svc.Upload(context.Background(), 1, picker, SourceDocument)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
}

func TestService_UploadFailures(t *testing.T) {
	tests := []struct {
		name    string
		result  PickResult
		err     error
		wantErr error
	}{
		{
			name:    "permission denied",
			err:     ErrPermissionDenied,
			wantErr: ErrPermissionDenied,
		},
		{
			name:    "picker failure",
			err:     errors.New("camera unavailable"),
			wantErr: ErrPickerFailed,
		},
		{
			name:   "canceled",
			result: PickResult{Canceled: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService()
			before := svc.Records(2)
			beforeStats := svc.Stats(2)

			picker := new(MockPicker)
			picker.On("Pick", mock.Anything, SourceCamera).Return(tt.result, tt.err)

			record, err := svc.Upload(context.Background(), 2, picker, SourceCamera)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Nil(t, record)
			assert.Equal(t, before, svc.Records(2))
			assert.Equal(t, beforeStats, svc.Stats(2))
		})
	}
}

func TestService_Delete(t *testing.T) {
	svc := newTestService()

	require.NoError(t, svc.Delete(context.Background(), 2, 4))

	records := svc.Records(2)
	require.Len(t, records, 1)
	assert.Equal(t, int64(5), records[0].ID)
	assert.Equal(t, 7, svc.Stats(2).Prescriptions)
}

func TestService_DeleteMissingRecord(t *testing.T) {
	svc := newTestService()

	err := svc.Delete(context.Background(), 2, 1)
	assert.ErrorIs(t, err, ErrRecordNotFound, "record belongs to another member")
	assert.Len(t, svc.Records(2), 2)
	assert.Equal(t, 8, svc.Stats(2).Prescriptions)
}

func TestService_DeleteOnlyRecord(t *testing.T) {
	svc := newTestService()
	svc.records[1] = []model.HealthRecord{{ID: 99, Type: "Lab", Date: "01/02/2024"}}
	svc.stats[1] = model.MemberStats{Prescriptions: 1}

	require.NoError(t, svc.Delete(context.Background(), 1, 99))

	assert.Empty(t, svc.Records(1))
	assert.Equal(t, 0, svc.Stats(1).Prescriptions)
}

func TestService_DeleteClampsAtZero(t *testing.T) {
	svc := newTestService()
	svc.stats[3] = model.MemberStats{Prescriptions: 0, Visits: 18}

	require.NoError(t, svc.Delete(context.Background(), 3, 6))
	require.NoError(t, svc.Delete(context.Background(), 3, 7))

	assert.Equal(t, 0, svc.Stats(3).Prescriptions)
	assert.Equal(t, 18, svc.Stats(3).Visits)
}

func TestService_RecordsByDate(t *testing.T) {
	svc := newTestService()

	records := svc.RecordsByDate(3)
	require.Len(t, records, 3)
	assert.Equal(t, []int64{6, 7, 8}, []int64{records[0].ID, records[1].ID, records[2].ID})

	records = svc.RecordsByDate(1)
	assert.Equal(t, []int64{1, 2, 3}, []int64{records[0].ID, records[1].ID, records[2].ID})
}

func TestService_AuditTrail(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	svc := NewService(audit.NewLogger(nil, zap.New(core)), zap.NewNop()).
		WithClock(func() time.Time { return fixedNow })

	picker := ResultPicker{
		PermissionGranted: true,
		Result:            PickResult{Asset: &Asset{URI: "file:///x.pdf", MimeType: "application/pdf"}},
	}

	ctx := audit.WithRequestInfo(context.Background(), "192.168.1.2", "okhttp")
	record, err := svc.Upload(ctx, 1, picker, SourceDocument)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, 1, record.ID))

	entries := logs.FilterMessage("Audit log entry").All()
	require.Len(t, entries, 2)
	assert.Equal(t, "CREATE", entries[0].ContextMap()["operation"])
	assert.Equal(t, "DELETE", entries[1].ContextMap()["operation"])
	assert.Equal(t, "192.168.1.2", entries[1].ContextMap()["ip_address"])
}

func TestService_AuditTrailWithoutDatabase(t *testing.T) {
	svc := newTestService()

	_, err := svc.AuditTrail(context.Background(), 1, 10)
	assert.ErrorIs(t, err, audit.ErrNoDatabase)
}

func TestResultPicker(t *testing.T) {
	ctx := context.Background()

	_, err := ResultPicker{}.Pick(ctx, SourceCamera)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = ResultPicker{PermissionGranted: true, Failure: "boom"}.Pick(ctx, SourceCamera)
	assert.EqualError(t, err, "boom")

	_, err = ResultPicker{PermissionGranted: true}.Pick(ctx, SourceCamera)
	assert.Error(t, err)

	res, err := ResultPicker{PermissionGranted: true, Result: PickResult{Canceled: true}}.Pick(ctx, SourceDocument)
	require.NoError(t, err)
	assert.True(t, res.Canceled)
}

func TestParseSource(t *testing.T) {
	s, err := ParseSource("camera")
	require.NoError(t, err)
	assert.Equal(t, SourceCamera, s)

	_, err = ParseSource("gallery")
	assert.ErrorIs(t, err, ErrUnknownSource)
}

func TestService_Record(t *testing.T) {
	svc := newTestService()

	r, err := svc.Record(1, 2)
	require.NoError(t, err)
	assert.Equal(t, "Complete Blood Count", r.Type)

	_, err = svc.Record(2, 2)
	assert.ErrorIs(t, err, ErrRecordNotFound, "records are scoped to their member")
}
