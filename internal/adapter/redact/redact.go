// Package redact strips request URLs from transport errors. The outbound
// API clients carry their keys in the query string, and their errors are
// logged on every fallback.
package redact

import (
	"errors"
	"fmt"
	"net/url"
)

// URLError replaces a *url.Error in err with its operation and cause,
// dropping the URL. Other errors are returned unchanged.
func URLError(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return fmt.Errorf("%s request: %w", ue.Op, ue.Err)
	}
	return err
}
