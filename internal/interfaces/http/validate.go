package http

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate instancia compartida del validador de structs (thread-safe).
var validate = validator.New()

// credentialFields campos cuyos valores jamás se reflejan en mensajes de error.
var credentialFields = map[string]struct{}{
	"password": {},
	"token":    {},
}

// validateStruct valida el request y devuelve un mensaje apto para el cliente.
// Solo se nombran campo y regla; los valores nunca se incluyen, y menos los de
// campos credenciales.
func validateStruct(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("entrada inválida")
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		if _, sensitive := credentialFields[field]; sensitive {
			msgs = append(msgs, fmt.Sprintf("campo '%s' inválido", field))
			continue
		}
		msgs = append(msgs, fmt.Sprintf("campo '%s' no cumple la regla '%s'", field, fe.Tag()))
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}
