// Package basehdl provides response helpers shared by the domain handlers.
package basehdl

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v3"

	"github.com/TrustedSamu/sap-energy-portal/internal/common"
)

// JSONResponse writes a JSON response with charset=utf-8 so the German
// field values encode correctly.
func JSONResponse(c fiber.Ctx, statusCode int, data interface{}) error {
	c.Set("Content-Type", "application/json; charset=utf-8")
	return c.Status(statusCode).JSON(data)
}

// SafeHandler wraps a handler body with a recover so the server always
// answers the client, even when the handler panics.
func SafeHandler(c fiber.Ctx, handler func() error) error {
	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				debug.PrintStack()
				err = HandleResponse(c, nil, common.NewError(
					common.ErrCodeInternalServer,
					fmt.Sprintf("Unexpected system error: %v", r),
					common.StatusInternalServerError,
					nil,
				))
			}
		}()
		err = handler()
	}()
	return err
}

// HandleResponse normalizes the response envelope. Errors of type
// *common.Error drive the status code and error code; anything else
// becomes an internal server error.
func HandleResponse(c fiber.Ctx, data interface{}, err error) error {
	if err != nil {
		var customErr *common.Error
		if errors.As(err, &customErr) {
			return JSONResponse(c, customErr.StatusCode, fiber.Map{
				"code":    customErr.Code.Code,
				"message": customErr.Message,
				"details": customErr.Details,
				"status":  "error",
			})
		}
		return JSONResponse(c, common.StatusInternalServerError, fiber.Map{
			"code":    common.ErrCodeInternalServer.Code,
			"message": err.Error(),
			"status":  "error",
		})
	}

	return JSONResponse(c, common.StatusOK, fiber.Map{
		"code":    common.StatusOK,
		"message": common.MsgSuccess,
		"data":    data,
		"status":  "success",
	})
}

// HandleCreatedResponse is HandleResponse for successful creations.
func HandleCreatedResponse(c fiber.Ctx, data interface{}) error {
	return JSONResponse(c, common.StatusCreated, fiber.Map{
		"code":    common.StatusCreated,
		"message": common.MsgCreated,
		"data":    data,
		"status":  "success",
	})
}
