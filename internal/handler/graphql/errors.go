package graphql

import (
	"errors"
	"log/slog"

	"github.com/datavista/hris-backend-go/internal/domain/attendance"
	"github.com/datavista/hris-backend-go/internal/domain/auth"
	"github.com/datavista/hris-backend-go/internal/domain/employee"
	"github.com/datavista/hris-backend-go/internal/domain/task"
	"github.com/datavista/hris-backend-go/internal/domain/user"
	"github.com/datavista/hris-backend-go/internal/pkg/validator"
	"github.com/graphql-go/graphql/gqlerrors"
)

// Error codes carried in extensions.code.
const (
	CodeUnauthenticated    = "UNAUTHENTICATED"
	CodeForbidden          = "FORBIDDEN"
	CodeConflict           = "CONFLICT"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeNotFound           = "NOT_FOUND"
	CodeBadUserInput       = "BAD_USER_INPUT"
	CodeInternal           = "INTERNAL_SERVER_ERROR"
	CodeValidationFailed   = "GRAPHQL_VALIDATION_FAILED"
	CodeBadRequest         = "BAD_REQUEST"
)

const internalErrorMessage = "Internal server error"

// Error is a resolver failure with a client-facing code.
type Error struct {
	Code    string
	Message string
	Fields  map[string]string
	cause   error
}

var _ gqlerrors.ExtendedError = (*Error)(nil)

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Extensions implements gqlerrors.ExtendedError.
func (e *Error) Extensions() map[string]interface{} {
	ext := map[string]interface{}{"code": e.Code}
	if len(e.Fields) > 0 {
		ext["fields"] = e.Fields
	}
	return ext
}

// Code classifies err into one of the error codes.
func Code(err error) string {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return CodeBadUserInput
	}

	switch {
	case errors.Is(err, auth.ErrUnauthenticated):
		return CodeUnauthenticated
	case errors.Is(err, auth.ErrForbidden),
		errors.Is(err, employee.ErrNotOwner),
		errors.Is(err, task.ErrNotTaskOwner):
		return CodeForbidden
	case errors.Is(err, auth.ErrEmailAlreadyExists),
		errors.Is(err, user.ErrUserEmailExists),
		errors.Is(err, employee.ErrEmailExists),
		errors.Is(err, employee.ErrUserAlreadyLinked):
		return CodeConflict
	case errors.Is(err, auth.ErrInvalidCredentials):
		return CodeInvalidCredentials
	case errors.Is(err, employee.ErrEmployeeNotFound),
		errors.Is(err, employee.ErrLinkedUserNotFound),
		errors.Is(err, task.ErrTaskNotFound),
		errors.Is(err, task.ErrEmployeeNotFound),
		errors.Is(err, attendance.ErrEmployeeNotFound),
		errors.Is(err, user.ErrUserNotFound):
		return CodeNotFound
	case errors.Is(err, validator.ErrInvalidDate),
		errors.Is(err, attendance.ErrInvalidStatus),
		errors.Is(err, user.ErrInvalidRole):
		return CodeBadUserInput
	}
	return CodeInternal
}

// toGraphQLError converts a service error into an *Error. Internal errors are
// logged and, in production, replaced by a generic message.
func toGraphQLError(err error, production bool) *Error {
	var gqlErr *Error
	if errors.As(err, &gqlErr) {
		return gqlErr
	}

	out := &Error{Code: Code(err), Message: err.Error(), cause: err}
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		out.Fields = validationErrs.ToMap()
	}
	if out.Code == CodeInternal {
		slog.Error("GraphQL resolver error", "error", err)
		if production {
			out.Message = internalErrorMessage
		}
	}
	return out
}

// annotateErrors gives errors raised by parsing and validation a code.
func annotateErrors(errs []gqlerrors.FormattedError) []gqlerrors.FormattedError {
	for i := range errs {
		if errs[i].Extensions == nil {
			errs[i].Extensions = map[string]interface{}{"code": CodeValidationFailed}
		}
	}
	return errs
}
