package client

import "fmt"

// RequestError reports a DocuSign API call that failed: either the
// request never completed, or the response status did not match the one
// the caller expected. The failing method and URL, the expected and
// actual status codes and the response body are all carried for
// diagnostics.
type RequestError struct {
	Method   string
	URL      string
	Expected int
	Status   int
	Body     string
	Err      error
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("docusign: %s %s failed: %v", e.Method, e.URL, e.Err)
	}
	return fmt.Sprintf("docusign: %s %s returned %d while expecting %d: %s",
		e.Method, e.URL, e.Status, e.Expected, e.Body)
}

func (e *RequestError) Unwrap() error { return e.Err }
