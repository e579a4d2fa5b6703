package practicum

import "fmt"

// Homework review status codes.
const (
	StatusApproved  = "approved"
	StatusReviewing = "reviewing"
	StatusRejected  = "rejected"
)

// Verdicts maps every known status code to its human-readable verdict.
// The table is closed: codes outside it are reported as ErrUnknownStatus.
var Verdicts = map[string]string{
	StatusApproved:  "The work has been reviewed: the reviewer liked everything. Hooray!",
	StatusReviewing: "The work has been taken for review.",
	StatusRejected:  "The work has been reviewed: the reviewer has comments.",
}

// Translate builds the notification text for a homework.
func Translate(item WorkItem) (string, error) {
	if item.Name == "" {
		return "", ErrMissingName
	}
	verdict, ok := Verdicts[item.Status]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, item.Status)
	}
	return fmt.Sprintf("Status changed for submission \"%s\". %s", item.Name, verdict), nil
}
