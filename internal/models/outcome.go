package models

type OutcomeKind int

const (
	Idle OutcomeKind = iota
	Loading
	Success
	Error
)

func (k OutcomeKind) String() string {
	switch k {
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return "idle"
	}
}

// Outcome is the tagged result of one submission as shown on a surface.
type Outcome struct {
	Kind OutcomeKind
	Text string // generated text for Success, message for Error
}

func LoadingOutcome() Outcome {
	return Outcome{Kind: Loading}
}

func SuccessOutcome(text string) Outcome {
	return Outcome{Kind: Success, Text: text}
}

func ErrorOutcome(message string) Outcome {
	return Outcome{Kind: Error, Text: message}
}

func (o Outcome) IsTerminal() bool {
	return o.Kind == Success || o.Kind == Error
}

// User-facing messages shared by the dispatchers and the core service.
const (
	EmptyTextMessage        = "Please enter some text."
	EmptyTextOrImageMessage = "Please enter text or upload an image."
	NetworkErrorMessage     = "Network error. Please try again."
	FallbackErrorMessage    = "Something went wrong."
	ImageErrorMessage       = "Error: could not read the attached image."
)
