package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

//nolint:gochecknoglobals // validator caches struct metadata; one instance per process.
var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterStructValidation(tableStructLevel, TableConfig{})
	})
	return validate
}

// tableStructLevel requires the default page size to be selectable.
func tableStructLevel(sl validator.StructLevel) {
	t, ok := sl.Current().Interface().(TableConfig)
	if !ok {
		return
	}
	if len(t.PageSizes) > 0 && !slices.Contains(t.PageSizes, t.PageSize) {
		sl.ReportError(t.PageSize, "PageSize", "page_size", "in_page_sizes", "")
	}
}

// Validate checks the configuration. The returned error lists every failing
// field and wraps ErrInvalidConfig.
func (c *Config) Validate() error {
	err := validatorInstance().Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "url":
		return fmt.Sprintf("%s must be a URL, got %q", field, fe.Value())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", field, fe.Param(), fe.Value())
	case "in_page_sizes":
		return fmt.Sprintf("%s %v is not one of table.page_sizes", field, fe.Value())
	case "bcp47_language_tag":
		return fmt.Sprintf("%s must be a BCP 47 language tag, got %q", field, fe.Value())
	default:
		return fmt.Sprintf("%s failed %s=%s (got %v)", field, fe.Tag(), fe.Param(), fe.Value())
	}
}
