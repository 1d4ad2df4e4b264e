package widget

import (
	"testing"

	"krib/models"

	"github.com/stretchr/testify/assert"
)

func TestPreviousStepOrdering(t *testing.T) {
	prev, err := previousStep(models.StepDetails)
	assert.NoError(t, err)
	assert.Equal(t, models.StepTime, prev)

	prev, err = previousStep(models.StepTime)
	assert.NoError(t, err)
	assert.Equal(t, models.StepDate, prev)

	prev, err = previousStep(models.StepDate)
	assert.NoError(t, err)
	assert.Equal(t, models.StepService, prev)
}

func TestPreviousStepAtServiceStaysPut(t *testing.T) {
	prev, err := previousStep(models.StepService)
	assert.NoError(t, err)
	assert.Equal(t, models.StepService, prev)
}

func TestPreviousStepAtConfirmForbidden(t *testing.T) {
	_, err := previousStep(models.StepConfirm)
	var transErr *InvalidTransitionError
	assert.ErrorAs(t, err, &transErr)
	assert.Equal(t, models.StepConfirm, transErr.From)
}

func TestEnsureMutableRejectsConfirmedSessions(t *testing.T) {
	session := &models.BookingSession{Step: models.StepConfirm}
	assert.Error(t, ensureMutable(session))

	// A submission result marks the session terminal even if the step
	// field were somehow stale.
	session = &models.BookingSession{
		Step:             models.StepDetails,
		SubmissionResult: &models.BookingConfirmation{ConfirmationCode: "ABC123"},
	}
	assert.Error(t, ensureMutable(session))

	session = &models.BookingSession{Step: models.StepDetails}
	assert.NoError(t, ensureMutable(session))
}
