package summarizer

import "context"

// Summarizer turns transcript text into a structured incident summary via a
// remote language model. Fallible by design; callers treat errors as a soft
// end of the run.
type Summarizer interface {
	Summarize(ctx context.Context, transcript string) (string, error)
}
