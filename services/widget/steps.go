package widget

import "krib/models"

// stepOrder is the forward progression of the booking wizard. CONFIRM is
// terminal: it is reachable only through a successful submission and can
// never be left.
var stepOrder = []models.Step{
	models.StepService,
	models.StepDate,
	models.StepTime,
	models.StepDetails,
	models.StepConfirm,
}

func stepIndex(s models.Step) int {
	for i, step := range stepOrder {
		if step == s {
			return i
		}
	}
	return -1
}

// previousStep returns the step one position earlier. At SERVICE it
// returns SERVICE again (going back is a no-op there); at CONFIRM it
// fails because the wizard cannot be re-entered after confirmation.
func previousStep(s models.Step) (models.Step, error) {
	if s == models.StepConfirm {
		return s, &InvalidTransitionError{From: s, Message: "booking already confirmed"}
	}
	idx := stepIndex(s)
	if idx <= 0 {
		return models.StepService, nil
	}
	return stepOrder[idx-1], nil
}

// ensureMutable rejects any mutation of a session that has reached the
// terminal CONFIRM step. Booking again requires a fresh session.
func ensureMutable(session *models.BookingSession) error {
	if session.Step == models.StepConfirm || session.SubmissionResult != nil {
		return &InvalidTransitionError{From: session.Step, Message: "booking already confirmed"}
	}
	return nil
}
