package analysis

import "context"

// Client is the outbound port to the inference provider. A single prompt goes
// out, the full accumulated text comes back. When echo is true the adapter
// mirrors streamed chunks to the terminal as they arrive.
type Client interface {
	Complete(ctx context.Context, prompt string, echo bool) (string, error)
}
