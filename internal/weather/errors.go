package weather

import "fmt"

// UpstreamError is returned when the weather API answers with a non-200 status.
type UpstreamError struct {
	StatusCode int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("weather API returned status code: %d", e.StatusCode)
}

// MissingFieldError names a required key absent from the payload.
type MissingFieldError struct {
	Key string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required key %q in weather data", e.Key)
}

// FieldTypeError is returned when a required key holds a value of the wrong type.
type FieldTypeError struct {
	Key   string
	Value interface{}
}

func (e *FieldTypeError) Error() string {
	return fmt.Sprintf("unexpected value for key %q in weather data: %v (%T)", e.Key, e.Value, e.Value)
}

type DatabaseError struct {
	Op  string
	Err error
}

func (e *DatabaseError) Error() string {
	return fmt.Sprintf("database %s failed: %v", e.Op, e.Err)
}

func (e *DatabaseError) Unwrap() error {
	return e.Err
}
