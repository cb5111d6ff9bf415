package httpclient

import "fmt"

// UpstreamError is a non-2xx reply from a provider API. The raw body is
// kept so adapters can surface the provider's own error message.
type UpstreamError struct {
	StatusCode int
	Body       []byte
	URL        string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("provider returned status %d from %s: %s", e.StatusCode, e.URL, e.snippet())
}

// snippet bounds how much of the provider body lands in logs.
func (e *UpstreamError) snippet() string {
	const max = 200
	if len(e.Body) > max {
		return string(e.Body[:max]) + "..."
	}
	return string(e.Body)
}
