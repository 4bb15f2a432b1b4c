package gridreport

import "fmt"

// MaxSheetNameLength is the worksheet name limit enforced before any
// worksheet is created.
const MaxSheetNameLength = 31

// InvalidParameterError reports a knob whose value is outside its domain.
type InvalidParameterError struct {
	Knob  string
	Value interface{}
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid value for %s: %v", e.Knob, e.Value)
}

// InvalidCoordinateError reports an anchor that cannot be resolved.
type InvalidCoordinateError struct {
	Field  string
	Value  interface{}
	Reason string
}

func (e *InvalidCoordinateError) Error() string {
	return fmt.Sprintf("invalid coordinate %s=%v: %s", e.Field, e.Value, e.Reason)
}

// UnsupportedShapeError reports an input whose dimensionality the normalizer
// cannot flatten to a rectangular grid.
type UnsupportedShapeError struct {
	Kind string
}

func (e *UnsupportedShapeError) Error() string {
	return fmt.Sprintf("cannot flatten %s to a rectangular grid", e.Kind)
}

// SheetNameTooLongError reports a synthesized worksheet name over the
// 31-character limit.
type SheetNameTooLongError struct {
	Name string
}

func (e *SheetNameTooLongError) Error() string {
	return fmt.Sprintf("sheet name %q exceeds %d characters", e.Name, MaxSheetNameLength)
}

// InvalidBorderModeError reports an unrecognized border mode string.
type InvalidBorderModeError struct {
	Value string
}

func (e *InvalidBorderModeError) Error() string {
	return fmt.Sprintf("invalid border mode %q", e.Value)
}

// BackendError wraps a failure from the document backend.
type BackendError struct {
	Op  string
	Err error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend %s: %v", e.Op, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }
