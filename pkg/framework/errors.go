package framework

import (
	"fmt"
	"strings"
)

// AggregatedError collects the errors of several components, like the
// Runnables of a Runner or the registrars an event fans out to.
type AggregatedError struct {
	Errors []error
}

// Error implements error. A single error is reported as is.
func (e *AggregatedError) Error() string {
	switch len(e.Errors) {
	case 0:
		return ""
	case 1:
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d errors:", len(e.Errors))
	for _, err := range e.Errors {
		sb.WriteString("\n  ")
		sb.WriteString(err.Error())
	}
	return sb.String()
}

// Unwrap allows errors.Is/As to look into aggregated errors.
func (e *AggregatedError) Unwrap() []error {
	return e.Errors
}

// Add adds errors to be aggregated. nil will be skipped.
func (e *AggregatedError) Add(errs ...error) *AggregatedError {
	for _, err := range errs {
		if err != nil {
			e.Errors = append(e.Errors, err)
		}
	}
	return e
}

// AddFrom adds err from component, prefixed with its name if it's Named.
func (e *AggregatedError) AddFrom(component interface{}, err error) *AggregatedError {
	if err == nil {
		return e
	}
	if named, ok := component.(Named); ok {
		err = fmt.Errorf("%s: %w", named.Name(), err)
	}
	e.Errors = append(e.Errors, err)
	return e
}

// Aggregate returns nil if nothing was added.
func (e *AggregatedError) Aggregate() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}
