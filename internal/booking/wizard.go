package booking

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/gramsehat/backend/internal/directory"
	"github.com/gramsehat/backend/pkg/model"
)

var (
	ErrUnknownHospital    = errors.New("unknown hospital")
	ErrUnknownDoctor      = errors.New("unknown doctor for selected hospital")
	ErrUnknownTimeSlot    = errors.New("unknown time slot")
	ErrNoHospitalSelected = errors.New("a hospital must be selected first")
	ErrSelectionMissing   = errors.New("selection for current step is missing")
	ErrAlreadyAtConfirm   = errors.New("booking is already at the confirm step")
	ErrNotAtConfirm       = errors.New("booking can only be confirmed from the confirm step")
	ErrUnknownPayment     = errors.New("unknown payment method")
	ErrBookingClosed      = errors.New("booking has already been confirmed")
)

// Wizard drives the four step appointment flow:
// select hospital -> select doctor -> select time slot -> confirm.
// Steps only move forward and each advance is gated on the selection of the current step.
type Wizard struct {
	state model.BookingState
	dir   *directory.Directory
}

// NewWizard creates a wizard at the first step with no selections
func NewWizard(sessionID string, dir *directory.Directory) *Wizard {
	return &Wizard{
		state: model.BookingState{
			SessionID: sessionID,
			Step:      model.StepSelectHospital,
		},
		dir: dir,
	}
}

// Restore rebuilds a wizard from a stored state
func Restore(state model.BookingState, dir *directory.Directory) *Wizard {
	return &Wizard{state: state, dir: dir}
}

// State returns a copy of the wizard state
func (w *Wizard) State() model.BookingState {
	s := w.state
	if w.state.SelectedHospital != nil {
		id := *w.state.SelectedHospital
		s.SelectedHospital = &id
	}
	if w.state.SelectedDoctor != nil {
		id := *w.state.SelectedDoctor
		s.SelectedDoctor = &id
	}
	if w.state.SelectedTimeSlot != nil {
		slot := *w.state.SelectedTimeSlot
		s.SelectedTimeSlot = &slot
	}
	return s
}

// Step returns the current step
func (w *Wizard) Step() model.BookingStep {
	return w.state.Step
}

// SelectHospital sets the selected hospital. It does not change the step and
// leaves any previously chosen doctor and time slot in place.
func (w *Wizard) SelectHospital(hospitalID int) error {
	if w.state.Closed {
		return ErrBookingClosed
	}
	if _, ok := w.dir.Hospital(hospitalID); !ok {
		return fmt.Errorf("%w: %d", ErrUnknownHospital, hospitalID)
	}
	w.state.SelectedHospital = &hospitalID
	return nil
}

// SelectDoctor sets the selected doctor from the selected hospital's doctor list
func (w *Wizard) SelectDoctor(doctorID int) error {
	if w.state.Closed {
		return ErrBookingClosed
	}
	if w.state.SelectedHospital == nil {
		return ErrNoHospitalSelected
	}
	if _, ok := w.dir.Doctor(*w.state.SelectedHospital, doctorID); !ok {
		return fmt.Errorf("%w: %d", ErrUnknownDoctor, doctorID)
	}
	w.state.SelectedDoctor = &doctorID
	return nil
}

// SelectTimeSlot sets the selected time slot
func (w *Wizard) SelectTimeSlot(slot string) error {
	if w.state.Closed {
		return ErrBookingClosed
	}
	if !w.dir.HasTimeSlot(slot) {
		return fmt.Errorf("%w: %q", ErrUnknownTimeSlot, slot)
	}
	w.state.SelectedTimeSlot = &slot
	return nil
}

// CanAdvance reports whether the selection required by the current step is set
func (w *Wizard) CanAdvance() bool {
	if w.state.Closed {
		return false
	}
	switch w.state.Step {
	case model.StepSelectHospital:
		return w.state.SelectedHospital != nil
	case model.StepSelectDoctor:
		return w.state.SelectedDoctor != nil
	case model.StepSelectTime:
		return w.state.SelectedTimeSlot != nil
	default:
		return false
	}
}

// Advance moves to the next step
func (w *Wizard) Advance() error {
	if w.state.Closed {
		return ErrBookingClosed
	}
	if w.state.Step >= model.StepConfirm {
		return ErrAlreadyAtConfirm
	}
	if !w.CanAdvance() {
		return fmt.Errorf("%w: %s", ErrSelectionMissing, w.state.Step)
	}
	w.state.Step++
	return nil
}

// StaleDoctor reports whether the selected doctor is not on the selected hospital's list.
// This happens when the hospital is changed after a doctor was chosen.
func (w *Wizard) StaleDoctor() bool {
	if w.state.SelectedDoctor == nil || w.state.SelectedHospital == nil {
		return false
	}
	_, ok := w.dir.Doctor(*w.state.SelectedHospital, *w.state.SelectedDoctor)
	return !ok
}

// Confirm closes the booking and produces the appointment. Both payment methods
// are accepted as-is.
func (w *Wizard) Confirm(method model.PaymentMethod) (*model.Appointment, error) {
	if w.state.Closed {
		return nil, ErrBookingClosed
	}
	if w.state.Step != model.StepConfirm {
		return nil, ErrNotAtConfirm
	}
	if method != model.PaymentUPI && method != model.PaymentAtHospital {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPayment, method)
	}

	summary := w.Summary()
	appointment := &model.Appointment{
		ID:            uuid.New().String(),
		DoctorName:    summary.Doctor,
		Hospital:      summary.Hospital,
		Date:          summary.Date,
		Time:          summary.Time,
		Type:          summary.Type,
		Avatar:        "👨‍⚕️",
		PaymentMethod: method,
		Status:        model.AppointmentConfirmed,
	}

	w.state.Closed = true
	return appointment, nil
}

// Summary is the booking summary shown on the confirm step
type Summary struct {
	Hospital string `json:"hospital"`
	Doctor   string `json:"doctor"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Type     string `json:"type"`
}

// Summary resolves the current selections to display names
func (w *Wizard) Summary() Summary {
	s := Summary{Date: "Tomorrow", Type: "In-person"}
	if w.state.SelectedHospital != nil {
		if h, ok := w.dir.Hospital(*w.state.SelectedHospital); ok {
			s.Hospital = h.Name
		}
		if w.state.SelectedDoctor != nil {
			if d, ok := w.dir.Doctor(*w.state.SelectedHospital, *w.state.SelectedDoctor); ok {
				s.Doctor = d.Name
				if d.ConsultationMode == model.ConsultationVideo {
					s.Type = "Video Consultation"
				}
			}
		}
	}
	if w.state.SelectedTimeSlot != nil {
		s.Time = *w.state.SelectedTimeSlot
	}
	return s
}

// View is what the client needs to render the current step
type View struct {
	State       model.BookingState `json:"state"`
	StepName    string             `json:"step_name"`
	CanAdvance  bool               `json:"can_advance"`
	StaleDoctor bool               `json:"stale_doctor"`
	Hospitals   []model.Hospital   `json:"hospitals,omitempty"`
	Doctors     []model.Doctor     `json:"doctors,omitempty"`
	TimeSlots   []string           `json:"time_slots,omitempty"`
	Summary     *Summary           `json:"summary,omitempty"`
}

// View builds the per-step view
func (w *Wizard) View() View {
	v := View{
		State:       w.State(),
		StepName:    w.state.Step.String(),
		CanAdvance:  w.CanAdvance(),
		StaleDoctor: w.StaleDoctor(),
	}

	switch w.state.Step {
	case model.StepSelectHospital:
		v.Hospitals = w.dir.Hospitals()
	case model.StepSelectDoctor:
		if w.state.SelectedHospital != nil {
			v.Doctors = w.dir.DoctorsFor(*w.state.SelectedHospital)
		}
	case model.StepSelectTime:
		v.TimeSlots = w.dir.TimeSlots()
	case model.StepConfirm:
		s := w.Summary()
		v.Summary = &s
	}

	return v
}
