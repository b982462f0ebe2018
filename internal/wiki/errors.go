package wiki

import (
	"errors"
	"fmt"
)

// ErrConnection matches any connection-level fault raised by this package.
// Callers check it with errors.Is; everything else that can go wrong during
// a fetch is an ordinary wrapped error.
var ErrConnection = errors.New("wiki: connection failure")

// ConnectionError reports that the wiki site could not be reached. It is
// terminal for the invocation that hit it: no retries are performed.
type ConnectionError struct {
	URL string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("wiki: connect %s: %v", e.URL, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// Is reports ErrConnection so errors.Is(err, ErrConnection) holds.
func (e *ConnectionError) Is(target error) bool { return target == ErrConnection }
