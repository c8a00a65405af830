package validators

import (
	"errors"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/barbemnt/internal/domain/availability"
	"github.com/BruksfildServices01/barbemnt/internal/domain/role"
)

// RegisterBindings adds the custom tags used by request structs:
// hhmm (24h "HH:mm") and team_role (owner or barber).
func RegisterBindings() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("validators: gin binding engine is not go-playground/validator")
	}
	return Register(v)
}

func Register(v *validator.Validate) error {
	if err := v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return availability.IsHHMM(fl.Field().String())
	}); err != nil {
		return err
	}

	return v.RegisterValidation("team_role", func(fl validator.FieldLevel) bool {
		r := role.Role(fl.Field().String())
		return r == role.Owner || r == role.Barber
	})
}
