package domain

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	m "mutest.dev/pkg/mutest/internal/model"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		validateInst = validator.New(validator.WithRequiredStructEnabled())
	})

	return validateInst
}

// validateArgs checks the struct tags of command arguments and reports the
// first violation as a ConfigError.
func validateArgs(args any) error {
	err := validatorInstance().Struct(args)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
		fe := fieldErrors[0]
		return m.NewConfigError(fe.Field(), fmt.Errorf("value %v fails %q", fe.Value(), validationRule(fe)))
	}

	return m.NewConfigError("arguments", err)
}

func validationRule(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}

	return fe.Tag() + "=" + fe.Param()
}
