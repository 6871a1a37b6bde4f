package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/tacogips/ignite/internal/config"
	"github.com/tacogips/ignite/internal/pm"
)

// RunSettings holds the inputs of one scaffold run. Flags populate it and the
// InputResolver fills whatever is still unset.
type RunSettings struct {
	// WorkingDirectory is the base for a relative ProjectPath.
	WorkingDirectory string `validate:"required"`
	// ProjectPath is the target directory, relative or absolute.
	ProjectPath string `validate:"required"`
	// TemplateName is joined onto the registry locator.
	TemplateName string `validate:"required,template_value"`
	// PackageManager installs dependencies when Install is true.
	PackageManager pm.Name `validate:"required,package_manager"`
	// Install is nil until decided.
	Install *bool `validate:"required"`
	// GitInit is nil until decided. It is resolved right before the git step.
	GitInit *bool
}

// Bool returns a pointer to b, for populating the optional toggles.
func Bool(b bool) *bool {
	return &b
}

// validateSettings checks that every input the download and install steps need
// has been resolved.
func validateSettings(s *RunSettings) error {
	if err := config.Validator().Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) || len(verrs) == 0 {
			return NewValidationError("invalid run settings", err)
		}

		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			if fe.Tag() == "required" {
				msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
				continue
			}
			msgs = append(msgs, fmt.Sprintf("%s has invalid value %q", fe.Field(), fmt.Sprint(fe.Value())))
		}
		return NewValidationError(strings.Join(msgs, "; "), nil)
	}
	return nil
}
