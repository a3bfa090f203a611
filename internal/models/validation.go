package models

import (
	"fmt"

	"github.com/gookit/validate"
)

// ValidateRecord checks a decoded backend record against its struct rules.
func ValidateRecord(record any) error {
	v := validate.Struct(record)
	if !v.Validate() {
		return fmt.Errorf("invalid %T: %s", record, v.Errors.One())
	}
	return nil
}
