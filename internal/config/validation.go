package config

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/tacogips/ignite/internal/pm"
	"github.com/tacogips/ignite/internal/template/provider"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	templateNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)
)

// validatorInstance configures and returns the shared validator instance.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		// Report mapstructure key names so errors match the config file.
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("mapstructure"), ",")
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})

		_ = v.RegisterValidation("template_value", func(fl validator.FieldLevel) bool {
			return IsValidTemplateName(fl.Field().String())
		})

		_ = v.RegisterValidation("registry_source", func(fl validator.FieldLevel) bool {
			_, err := provider.ParseSource(fl.Field().String(), "")
			return err == nil
		})

		_ = v.RegisterValidation("package_manager", func(fl validator.FieldLevel) bool {
			return pm.Name(fl.Field().String()).Valid()
		})

		validateInst = v
	})

	return validateInst
}

// Validator returns the shared validator for use outside the config package.
func Validator() *validator.Validate {
	return validatorInstance()
}

// IsValidTemplateName reports whether name can be joined onto a registry locator.
func IsValidTemplateName(name string) bool {
	return templateNamePattern.MatchString(name)
}

// Validate validates the configuration. file is only used in error messages.
func Validate(cfg *Config, file string) error {
	if cfg == nil {
		return NewConfigErrorWithField(ConfigValidationFailed, file, "", "configuration is nil")
	}

	if err := validatorInstance().Struct(cfg); err != nil {
		return convertValidationError(err, file)
	}
	return nil
}

// convertValidationError turns the first validator failure into a ConfigError.
func convertValidationError(err error, file string) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return NewConfigErrorWithCause(ConfigValidationFailed, file, "validation failed", err)
	}

	fe := verrs[0]
	field := fieldPath(fe.Namespace())
	return NewConfigErrorWithField(ConfigValidationFailed, file, field, describeTag(fe))
}

// fieldPath strips the root struct name: "Config.github.timeout" -> "github.timeout".
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "value is required"
	case "min":
		return fmt.Sprintf("must contain at least %s entries", fe.Param())
	case "gte":
		return fmt.Sprintf("must be >= %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "url":
		return fmt.Sprintf("invalid URL: %v", fe.Value())
	case "template_value":
		return fmt.Sprintf("invalid template name %q (letters, digits, '.', '_' and '-' only)", fe.Value())
	case "registry_source":
		return fmt.Sprintf("invalid registry locator %q (expected gh:owner/repo[/path][#ref] or a local path)", fe.Value())
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}
