package rankcard

import "fmt"

// InvalidImageTypeError reports an image source of the wrong kind: a field
// given a source kind it does not accept, or a buffer source that is not a
// readable, seekable byte stream.
type InvalidImageTypeError struct {
	Reason string
}

func (e *InvalidImageTypeError) Error() string {
	return "invalid image type: " + e.Reason
}

// InvalidImageURLError reports a remote image fetch that completed but came
// back with a non-200 status.
type InvalidImageURLError struct {
	URL    string
	Status int
}

func (e *InvalidImageURLError) Error() string {
	return fmt.Sprintf("invalid image url %s: status %d", e.URL, e.Status)
}
