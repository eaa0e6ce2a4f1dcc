package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateConfig checks struct constraints and the requirements of the current environment
func ValidateConfig(cfg *Config) error {
	var errs []error

	if err := validate.Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("failed to validate configuration: %w", err)
		}
		for _, fe := range fieldErrs {
			errs = append(errs, ValidationError{
				Field:   strings.TrimPrefix(fe.Namespace(), "Config."),
				Message: describe(fe),
			})
		}
	}

	if err := cfg.Engine.Validate(); err != nil {
		errs = append(errs, ValidationError{Field: "Engine", Message: err.Error()})
	}

	if cfg.Database.Driver == "sqlite" && cfg.Database.Path == "" {
		errs = append(errs, ValidationError{Field: "Database.Path", Message: "required for the sqlite driver"})
	}

	// Sensitive values must be real outside development
	switch cfg.Environment {
	case Production, CI:
		if cfg.Database.Driver == "postgres" && cfg.Database.Password == "" {
			errs = append(errs, ValidationError{Field: "Database.Password", Message: "db_password secret is required"})
		}
		if len(cfg.JWT.Secret) < 32 {
			errs = append(errs, ValidationError{Field: "JWT.Secret", Message: "must be at least 32 characters"})
		}
		if cfg.Redis.Enabled && cfg.Redis.Password == "" {
			errs = append(errs, ValidationError{Field: "Redis.Password", Message: "redis_password secret is required"})
		}
	}

	return errors.Join(errs...)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "numeric":
		return "must be numeric"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
