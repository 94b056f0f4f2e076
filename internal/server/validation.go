package server

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"connectrpc.com/connect"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"google.golang.org/genproto/googleapis/rpc/errdetails"

	"github.com/at-ishikawa/learnpath/internal/progress"
)

type requestValidator struct {
	validate   *validator.Validate
	translator ut.Translator
}

func newRequestValidator() (*requestValidator, error) {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, fmt.Errorf("register validator translations: %w", err)
	}
	if err := validate.RegisterTranslation("required_if", trans, func(ut ut.Translator) error {
		return ut.Add("required_if", "{0} is required for this scope", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("required_if", fe.Field())
		return t
	}); err != nil {
		return nil, fmt.Errorf("register required_if translation: %w", err)
	}
	return &requestValidator{validate: validate, translator: trans}, nil
}

// validateRequest checks msg against its validate tags and reports every violated field.
func (v *requestValidator) validateRequest(msg any) *connect.Error {
	err := v.validate.Struct(msg)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return connect.NewError(connect.CodeInvalidArgument, err)
	}

	var fieldViolations []*errdetails.BadRequest_FieldViolation
	var messages []string
	for _, fe := range validationErrors {
		description := fe.Translate(v.translator)
		messages = append(messages, description)
		fieldViolations = append(fieldViolations, &errdetails.BadRequest_FieldViolation{
			Field:       fieldPath(fe),
			Description: description,
		})
	}
	return invalidArgumentError(strings.Join(messages, ", "), fieldViolations)
}

// fieldPath drops the request type from the namespace, e.g. "AddNoteRequest.content" becomes "content".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func invalidArgumentError(message string, fieldViolations []*errdetails.BadRequest_FieldViolation) *connect.Error {
	connectErr := connect.NewError(connect.CodeInvalidArgument, errors.New(message))
	if len(fieldViolations) == 0 {
		return connectErr
	}
	if detail, detailErr := connect.NewErrorDetail(&errdetails.BadRequest{
		FieldViolations: fieldViolations,
	}); detailErr == nil {
		connectErr.AddDetail(detail)
	}
	return connectErr
}

// toConnectError maps progress error kinds to Connect codes.
func toConnectError(procedure string, err error) *connect.Error {
	var progressErr *progress.Error
	switch {
	case errors.Is(err, progress.ErrInvalidArgument):
		var violations []*errdetails.BadRequest_FieldViolation
		if errors.As(err, &progressErr) && progressErr.Field != "" {
			violations = append(violations, &errdetails.BadRequest_FieldViolation{
				Field:       progressErr.Field,
				Description: progressErr.Message,
			})
		}
		return invalidArgumentError(err.Error(), violations)
	case errors.Is(err, progress.ErrNotEnrolled):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, progress.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, progress.ErrConflict):
		return connect.NewError(connect.CodeAborted, err)
	default:
		slog.Default().Error("Request failed",
			"procedure", procedure,
			"error", err)
		return connect.NewError(connect.CodeInternal, err)
	}
}
