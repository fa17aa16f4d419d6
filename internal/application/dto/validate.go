package dto

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/chcomputer/almacen-api/internal/domain"
)

// validate instancia compartida; los structs de request llevan tags validate.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate valida un struct de request contra sus tags. Devuelve un mensaje
// legible con los campos inválidos, apto para responder 400.
func Validate(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("%w: campos inválidos: %s", domain.ErrInvalidInput, strings.Join(fields, ", "))
}
