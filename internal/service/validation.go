package service

import (
	"fmt"
	"strings"

	"github.com/collectify/collectify/models"
)

// validateName checks the shared naming rules for templates, collections
// and field definitions.
func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameRequired
	}
	if len([]rune(name)) > models.MaxNameLength {
		return fmt.Errorf("%w: %d characters, limit is %d", ErrNameTooLong, len([]rune(name)), models.MaxNameLength)
	}
	return nil
}

func validateDescription(description *string) error {
	if description == nil {
		return nil
	}
	if n := len([]rune(*description)); n > models.MaxDescriptionLength {
		return fmt.Errorf("%w: %d characters, limit is %d", ErrDescriptionTooLong, n, models.MaxDescriptionLength)
	}
	return nil
}

// validateFieldInput checks one field definition input: a valid name and a
// field type from the closed set.
func validateFieldInput(field models.TemplateFieldInput) error {
	if err := validateName(field.Name); err != nil {
		return err
	}
	if !field.FieldType.Valid() {
		return fmt.Errorf("%w: %q", models.ErrUnsupportedFieldType, field.FieldType)
	}
	return nil
}
