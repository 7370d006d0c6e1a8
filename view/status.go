package view

// Status is where a view is in the submit cycle. Succeeded and Failed last
// while the closing alert is shown; the view is Idle again once Submit
// returns.
type Status int

const (
	Idle Status = iota
	Capturing
	Uploading
	Succeeded
	Failed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Capturing:
		return "capturing"
	case Uploading:
		return "uploading"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// InFlight reports whether a submission is running.
func (s Status) InFlight() bool {
	return s == Capturing || s == Uploading
}

// OutcomeKind classifies a finished submit call.
type OutcomeKind int

const (
	// Success: the card was uploaded and the success alert shown.
	Success OutcomeKind = iota
	// Failure: capture or upload failed and the error alert was shown.
	Failure
	// Rejected: a required field was empty; nothing was captured.
	Rejected
	// Aborted: the capture target was gone; nothing was shown or sent.
	Aborted
)

func (k OutcomeKind) String() string {
	switch k {
	case Success:
		return "succeeded"
	case Failure:
		return "failed"
	case Rejected:
		return "rejected"
	case Aborted:
		return "aborted"
	}
	return "unknown"
}

// Outcome is the result of View.Submit.
type Outcome struct {
	Kind OutcomeKind
	// Message is the alert text for Success and Failure.
	Message string
	// Reasons lists the validation problems for Rejected.
	Reasons []string
}
