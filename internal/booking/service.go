package booking

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/gramsehat/backend/internal/audit"
	"github.com/gramsehat/backend/internal/directory"
	"github.com/gramsehat/backend/pkg/model"
	"go.uber.org/zap"
)

// Service manages booking wizard sessions and the upcoming appointments list
type Service struct {
	dir     *directory.Directory
	store   SessionStore
	auditor *audit.Logger
	logger  *zap.Logger

	// mu serialises load-modify-save cycles
	mu       sync.Mutex
	upcoming []model.Appointment
}

// NewService creates a new booking Service. Confirmed appointments are
// audited against the account holder.
func NewService(dir *directory.Directory, store SessionStore, auditor *audit.Logger, logger *zap.Logger) *Service {
	return &Service{
		dir:      dir,
		store:    store,
		auditor:  auditor,
		logger:   logger,
		upcoming: defaultUpcoming(),
	}
}

// Start creates a new wizard session at the first step
func (s *Service) Start(ctx context.Context) (View, error) {
	w := NewWizard(uuid.New().String(), s.dir)
	if err := s.store.Save(ctx, w.State()); err != nil {
		return View{}, fmt.Errorf("failed to create booking session: %w", err)
	}

	s.logger.Info("booking session started", zap.String("session_id", w.State().SessionID))
	return w.View(), nil
}

// Get returns the current view of a session
func (s *Service) Get(ctx context.Context, sessionID string) (View, error) {
	state, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return View{}, err
	}
	return Restore(state, s.dir).View(), nil
}

// SelectHospital selects a hospital on a session
func (s *Service) SelectHospital(ctx context.Context, sessionID string, hospitalID int) (View, error) {
	return s.mutate(ctx, sessionID, func(w *Wizard) error {
		return w.SelectHospital(hospitalID)
	})
}

// SelectDoctor selects a doctor on a session
func (s *Service) SelectDoctor(ctx context.Context, sessionID string, doctorID int) (View, error) {
	return s.mutate(ctx, sessionID, func(w *Wizard) error {
		return w.SelectDoctor(doctorID)
	})
}

// SelectTimeSlot selects a time slot on a session
func (s *Service) SelectTimeSlot(ctx context.Context, sessionID string, slot string) (View, error) {
	return s.mutate(ctx, sessionID, func(w *Wizard) error {
		return w.SelectTimeSlot(slot)
	})
}

// Advance moves a session to its next step
func (s *Service) Advance(ctx context.Context, sessionID string) (View, error) {
	return s.mutate(ctx, sessionID, func(w *Wizard) error {
		return w.Advance()
	})
}

// Confirm confirms the booking of a session and records it as upcoming
func (s *Service) Confirm(ctx context.Context, sessionID string, method model.PaymentMethod) (*model.Appointment, error) {
	var appointment *model.Appointment
	_, err := s.mutate(ctx, sessionID, func(w *Wizard) error {
		a, err := w.Confirm(method)
		if err != nil {
			return err
		}
		appointment = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.upcoming = append([]model.Appointment{*appointment}, s.upcoming...)
	s.mu.Unlock()

	if err := s.auditor.LogCreate(ctx, model.AccountHolderID, audit.ResourceAppointment, appointment.ID); err != nil {
		s.logger.Warn("failed to audit appointment", zap.Error(err))
	}

	s.logger.Info("booking confirmed",
		zap.String("session_id", sessionID),
		zap.String("appointment_id", appointment.ID),
		zap.String("payment_method", string(method)),
	)

	return appointment, nil
}

// Upcoming returns upcoming appointments, most recently booked first
func (s *Service) Upcoming() []model.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Appointment, len(s.upcoming))
	copy(out, s.upcoming)
	return out
}

func (s *Service) mutate(ctx context.Context, sessionID string, fn func(w *Wizard) error) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return View{}, err
	}

	w := Restore(state, s.dir)
	if err := fn(w); err != nil {
		s.logger.Debug("booking step rejected",
			zap.String("session_id", sessionID),
			zap.String("step", w.Step().String()),
			zap.Error(err),
		)
		return View{}, err
	}

	if err := s.store.Save(ctx, w.State()); err != nil {
		return View{}, fmt.Errorf("failed to save booking session: %w", err)
	}

	return w.View(), nil
}

func defaultUpcoming() []model.Appointment {
	return []model.Appointment{
		{
			ID:         "1",
			DoctorName: "Dr. Rajesh Kumar",
			Hospital:   "Civil Hospital Nabha",
			Date:       "Today",
			Time:       "2:30 PM",
			Type:       "Video Consultation",
			Avatar:     "👨‍⚕️",
			Status:     model.AppointmentConfirmed,
		},
		{
			ID:         "2",
			DoctorName: "Dr. Priya Sharma",
			Hospital:   "District Hospital",
			Date:       "Tomorrow",
			Time:       "10:00 AM",
			Type:       "In-person",
			Avatar:     "👩‍⚕️",
			Status:     model.AppointmentConfirmed,
		},
	}
}
