package providers

import (
	"activitydash/internal/structures"
	"fmt"
	"time"

	"github.com/gookit/validate"
)

type CnfValidatorInterface interface {
	Validate() error
}

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) CnfValidatorInterface {
	return &CnfValidator{conf: conf}
}

func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	v.StopOnError = false
	if !v.Validate() {
		return fmt.Errorf("invalid configuration: %s", v.Errors.String())
	}
	if cv.conf.Display.Timezone != "" {
		if _, err := time.LoadLocation(cv.conf.Display.Timezone); err != nil {
			return fmt.Errorf("invalid configuration: display.timezone: %w", err)
		}
	}
	return nil
}
