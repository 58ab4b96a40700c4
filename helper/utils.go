package helper

import (
	"errors"
	"fmt"
	"mime"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type APIResponse struct {
	Message    string      `json:"message,omitempty"`
	StatusCode int         `json:"statusCode"`
	Status     bool        `json:"status"`
	Data       interface{} `json:"data"`
}

func SendResponse(c *fiber.Ctx, message string, data interface{}, statuscode int) error {

	status := false
	if statuscode == fiber.StatusOK {
		status = true
	}
	response := APIResponse{
		Message:    message,
		StatusCode: statuscode,
		Status:     status,
		Data:       data,
	}

	c.Status(statuscode)
	return c.JSON(response)
}

// SendAttachment replies with body as a file download.
func SendAttachment(c *fiber.Ctx, filename, contentType string, body []byte) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	return c.Status(fiber.StatusOK).Send(body)
}

// ErrorHandler renders errors escaping a handler in the APIResponse envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	} else {
		log.Errorf("%s %s: %v", c.Method(), c.Path(), err)
	}
	return SendResponse(c, message, nil, code)
}

// QueryBool reads a boolean query parameter, falling back to def when it is
// absent.
func QueryBool(c *fiber.Ctx, key string, def bool) (bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def, fmt.Errorf("query %s: %q is not a boolean", key, raw)
	}
	return v, nil
}
