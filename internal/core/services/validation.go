package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/backoffice_ledger/internal/apperrors"
	"github.com/go-playground/validator/v10"
)

// requestValidator checks request structs with the same "binding" tags gin uses,
// so services called outside HTTP get identical validation.
var requestValidator = func() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	return v
}()

// validateRequest returns an apperrors validation error describing every failed field.
func validateRequest(req any) error {
	err := requestValidator.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.NewAppError(apperrors.KindValidation, "invalid request", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s failed %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
		}
	}
	return apperrors.NewValidationError("%s", strings.Join(msgs, "; "))
}
