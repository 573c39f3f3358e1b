package util

type AppError struct {
	Status int
	Msg    string
	Err    []any
}

func NewAppError(status int, errMsg string, err ...any) *AppError {
	return &AppError{
		Status: status,
		Msg:    errMsg,
		Err:    err,
	}
}

func (e *AppError) Error() string {
	return e.Msg
}

// Unwrap exposes the first wrapped error, if any.
func (e *AppError) Unwrap() error {
	for _, v := range e.Err {
		if err, ok := v.(error); ok {
			return err
		}
	}

	return nil
}
