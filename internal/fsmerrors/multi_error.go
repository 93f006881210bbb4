package fsmerrors

import "strings"

// configErrors collects every precondition Config.Validate found violated,
// so a caller sees all of them at once instead of only the first.
type configErrors []error

func (e configErrors) Error() string {
	var b strings.Builder
	b.WriteString("invalid handshake config: ")
	for i, err := range e {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(err.Error())
	}
	return b.String()
}

func (e configErrors) Unwrap() []error { return []error(e) }

// Combine reports every non-nil argument together as one error, or nil if
// none of them are non-nil. Config.Validate uses this to run all of its
// checks before returning, rather than stopping at the first failure.
func Combine(maybeError ...error) error {
	var errs configErrors
	for _, err := range maybeError {
		if err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
