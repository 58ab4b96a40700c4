package counter

import (
	"errors"

	helper "Kubernetes-config-generator/helper"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type Controller struct {
	store *Store
}

func NewController(store *Store) *Controller {
	return &Controller{store: store}
}

type valueResponse struct {
	Value uint64 `json:"value"`
}

// @Description	Current value of a counter
// @Tags		Counter
// @Produce		json
// @Router		/api/counter/{key} [get]
func (ct *Controller) GetCounter(c *fiber.Ctx) error {
	v, err := ct.store.Get(c.Params("key"))
	if err != nil {
		return ct.fail(c, err)
	}
	return c.JSON(valueResponse{Value: v})
}

// @Description	Increment a counter and return the new value
// @Tags		Counter
// @Produce		json
// @Router		/api/counter/{key}/hit [post]
func (ct *Controller) HitCounter(c *fiber.Ctx) error {
	v, err := ct.store.Increment(c.Params("key"))
	if err != nil {
		return ct.fail(c, err)
	}
	return c.JSON(valueResponse{Value: v})
}

func (ct *Controller) fail(c *fiber.Ctx, err error) error {
	if errors.Is(err, ErrInvalidKey) {
		return helper.SendResponse(c, err.Error(), nil, fiber.StatusBadRequest)
	}
	log.Errorf("counter %s: %v", c.Params("key"), err)
	return helper.SendResponse(c, "counter unavailable", nil, fiber.StatusInternalServerError)
}

func SetupRoutes(router fiber.Router, store *Store) {
	ct := NewController(store)
	counter := router.Group("/counter")
	counter.Get("/:key", ct.GetCounter)
	counter.Post("/:key/hit", ct.HitCounter)
}
