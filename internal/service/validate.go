package service

import (
	"errors"
	"math"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// "clock" accepts HH:MM 24-hour wall-clock strings.
	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		_, err := ParseClock(fl.Field().String())
		return err == nil
	})
	return v
}

type SleepLogRequest struct {
	BedTime  string `json:"bedTime" validate:"required,clock"`
	WakeTime string `json:"wakeTime" validate:"required,clock"`
}

type GoalRequest struct {
	Hours float64 `json:"hours" validate:"required,gte=4,lte=12"`
}

func ValidateSleepLogRequest(req *SleepLogRequest) error {
	return validate.Struct(req)
}

func ValidateGoalRequest(req *GoalRequest) error {
	if err := validate.Struct(req); err != nil {
		return err
	}
	// Goal is adjusted in half-hour steps.
	if math.Mod(req.Hours*2, 1) != 0 {
		return errors.New("service: goal hours must be a multiple of 0.5")
	}
	return nil
}
