package booking

import (
	"testing"

	"github.com/gramsehat/backend/internal/directory"
	"github.com/gramsehat/backend/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWizard() *Wizard {
	return NewWizard("session-1", directory.New())
}

func TestWizard_InitialState(t *testing.T) {
	w := newTestWizard()

	state := w.State()
	assert.Equal(t, model.StepSelectHospital, state.Step)
	assert.Nil(t, state.SelectedHospital)
	assert.Nil(t, state.SelectedDoctor)
	assert.Nil(t, state.SelectedTimeSlot)
	assert.False(t, w.CanAdvance())
}

func TestWizard_FullFlow(t *testing.T) {
	w := newTestWizard()

	require.NoError(t, w.SelectHospital(1))
	assert.Equal(t, model.StepSelectHospital, w.Step(), "selecting does not move the step")
	require.NoError(t, w.Advance())

	require.NoError(t, w.SelectDoctor(101))
	require.NoError(t, w.Advance())

	require.NoError(t, w.SelectTimeSlot("10:30 AM"))
	require.NoError(t, w.Advance())
	assert.Equal(t, model.StepConfirm, w.Step())

	appointment, err := w.Confirm(model.PaymentUPI)
	require.NoError(t, err)
	assert.Equal(t, "Civil Hospital Nabha", appointment.Hospital)
	assert.Equal(t, "Dr. Rajesh Kumar", appointment.DoctorName)
	assert.Equal(t, "10:30 AM", appointment.Time)
	assert.Equal(t, "Tomorrow", appointment.Date)
	assert.Equal(t, model.AppointmentConfirmed, appointment.Status)
	assert.NotEmpty(t, appointment.ID)
}

func TestWizard_AdvanceRequiresSelection(t *testing.T) {
	w := newTestWizard()

	err := w.Advance()
	assert.ErrorIs(t, err, ErrSelectionMissing)
	assert.Equal(t, model.StepSelectHospital, w.Step())

	require.NoError(t, w.SelectHospital(2))
	require.NoError(t, w.Advance())

	err = w.Advance()
	assert.ErrorIs(t, err, ErrSelectionMissing)
	assert.Equal(t, model.StepSelectDoctor, w.Step())

	require.NoError(t, w.SelectDoctor(201))
	require.NoError(t, w.Advance())

	err = w.Advance()
	assert.ErrorIs(t, err, ErrSelectionMissing)
	assert.Equal(t, model.StepSelectTime, w.Step())
}

func TestWizard_NoAdvancePastConfirm(t *testing.T) {
	w := newTestWizard()
	require.NoError(t, w.SelectHospital(1))
	require.NoError(t, w.Advance())
	require.NoError(t, w.SelectDoctor(102))
	require.NoError(t, w.Advance())
	require.NoError(t, w.SelectTimeSlot("09:00 AM"))
	require.NoError(t, w.Advance())

	assert.False(t, w.CanAdvance())
	assert.ErrorIs(t, w.Advance(), ErrAlreadyAtConfirm)
}

func TestWizard_SelectDoctorRequiresHospital(t *testing.T) {
	w := newTestWizard()

	err := w.SelectDoctor(101)
	assert.ErrorIs(t, err, ErrNoHospitalSelected)
}

func TestWizard_SelectionValidation(t *testing.T) {
	w := newTestWizard()

	assert.ErrorIs(t, w.SelectHospital(42), ErrUnknownHospital)

	require.NoError(t, w.SelectHospital(1))
	assert.ErrorIs(t, w.SelectDoctor(201), ErrUnknownDoctor, "doctor of another hospital")

	assert.ErrorIs(t, w.SelectTimeSlot("01:15 PM"), ErrUnknownTimeSlot)
}

func TestWizard_SelectSameHospitalTwiceKeepsSelections(t *testing.T) {
	w := newTestWizard()
	require.NoError(t, w.SelectHospital(1))
	require.NoError(t, w.SelectDoctor(101))
	require.NoError(t, w.SelectTimeSlot("11:00 AM"))

	require.NoError(t, w.SelectHospital(1))
	require.NoError(t, w.SelectHospital(1))

	state := w.State()
	require.NotNil(t, state.SelectedDoctor)
	require.NotNil(t, state.SelectedTimeSlot)
	assert.Equal(t, 101, *state.SelectedDoctor)
	assert.Equal(t, "11:00 AM", *state.SelectedTimeSlot)
}

func TestWizard_ChangingHospitalLeavesStaleDoctor(t *testing.T) {
	w := newTestWizard()
	require.NoError(t, w.SelectHospital(1))
	require.NoError(t, w.SelectDoctor(101))
	assert.False(t, w.StaleDoctor())

	require.NoError(t, w.SelectHospital(2))

	state := w.State()
	require.NotNil(t, state.SelectedDoctor, "doctor is not cleared by a new hospital")
	assert.Equal(t, 101, *state.SelectedDoctor)
	assert.True(t, w.StaleDoctor())
	assert.True(t, w.View().StaleDoctor)
}

func TestWizard_Confirm(t *testing.T) {
	t.Run("not at confirm step", func(t *testing.T) {
		w := newTestWizard()
		_, err := w.Confirm(model.PaymentUPI)
		assert.ErrorIs(t, err, ErrNotAtConfirm)
	})

	for _, method := range []model.PaymentMethod{model.PaymentUPI, model.PaymentAtHospital} {
		t.Run(string(method), func(t *testing.T) {
			w := wizardAtConfirm(t)
			appointment, err := w.Confirm(method)
			require.NoError(t, err)
			assert.Equal(t, method, appointment.PaymentMethod)
		})
	}

	t.Run("unknown payment method", func(t *testing.T) {
		w := wizardAtConfirm(t)
		_, err := w.Confirm("card")
		assert.ErrorIs(t, err, ErrUnknownPayment)
	})

	t.Run("closed after confirm", func(t *testing.T) {
		w := wizardAtConfirm(t)
		_, err := w.Confirm(model.PaymentAtHospital)
		require.NoError(t, err)

		_, err = w.Confirm(model.PaymentAtHospital)
		assert.ErrorIs(t, err, ErrBookingClosed)
		assert.ErrorIs(t, w.SelectHospital(1), ErrBookingClosed)
		assert.False(t, w.CanAdvance())
	})
}

func TestWizard_View(t *testing.T) {
	w := newTestWizard()

	v := w.View()
	assert.Equal(t, "select_hospital", v.StepName)
	assert.Len(t, v.Hospitals, 3)
	assert.Empty(t, v.Doctors)

	require.NoError(t, w.SelectHospital(2))
	require.NoError(t, w.Advance())

	v = w.View()
	assert.Equal(t, "select_doctor", v.StepName)
	assert.Len(t, v.Doctors, 2)
	assert.False(t, v.CanAdvance)

	require.NoError(t, w.SelectDoctor(202))
	require.NoError(t, w.Advance())
	v = w.View()
	assert.Len(t, v.TimeSlots, 12)

	require.NoError(t, w.SelectTimeSlot("04:30 PM"))
	require.NoError(t, w.Advance())
	v = w.View()
	require.NotNil(t, v.Summary)
	assert.Equal(t, "Max Hospital", v.Summary.Hospital)
	assert.Equal(t, "Dr. Amit Singh", v.Summary.Doctor)
	assert.Equal(t, "Video Consultation", v.Summary.Type)
}

func TestWizard_StateIsCopy(t *testing.T) {
	w := newTestWizard()
	require.NoError(t, w.SelectHospital(1))

	state := w.State()
	*state.SelectedHospital = 3

	assert.Equal(t, 1, *w.State().SelectedHospital)
}

func wizardAtConfirm(t *testing.T) *Wizard {
	t.Helper()
	w := newTestWizard()
	require.NoError(t, w.SelectHospital(3))
	require.NoError(t, w.Advance())
	require.NoError(t, w.SelectDoctor(301))
	require.NoError(t, w.Advance())
	require.NoError(t, w.SelectTimeSlot("03:00 PM"))
	require.NoError(t, w.Advance())
	return w
}
