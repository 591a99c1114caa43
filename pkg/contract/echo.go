package contract

import (
	"github.com/labstack/echo/v4"
)

// Echo returns the validator as echo middleware. Errors returned by the
// downstream handler are passed back unchanged.
func (v *Validator) Echo() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			outcome, err := v.decide(c.Request())
			if err != nil {
				return c.JSON(StatusFor(outcome), v.rejection(outcome))
			}
			return next(c)
		}
	}
}
