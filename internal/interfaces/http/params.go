package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// parseIDParam lee un parámetro de ruta como ID entero positivo.
// Devuelve 0 y false si falta o no es un entero válido; un id no numérico
// se trata como recurso inexistente (404), nunca como error de formato.
func parseIDParam(c *fiber.Ctx, name string) (int64, bool) {
	raw := c.Params(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
