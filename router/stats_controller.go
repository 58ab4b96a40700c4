package router

import (
	"bufio"
	"context"

	helper "Kubernetes-config-generator/helper"
	"Kubernetes-config-generator/internal/sse"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

// @Description	GitHub stars and export count
// @Tags		Stats
// @Produce		json
// @Router		/api/stats [get]
func (h *Handler) GetStats(c *fiber.Ctx) error {
	return helper.SendResponse(c, "Stats fetched", h.stats.Snapshot(c.UserContext()), fiber.StatusOK)
}

// @Description	Stats as server sent events
// @Tags		Stats
// @Produce		text/event-stream
// @Router		/api/stats/sse [get]
func (h *Handler) GetStatsSse(c *fiber.Ctx) error {
	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("Transfer-Encoding", "chunked")

	interval, base := h.statsInterval, h.baseCtx
	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(wr *bufio.Writer) {
		em := sse.NewBufioEmitter(wr, "stats")
		em.Stream(base, interval, "stats", func(ctx context.Context) (any, error) {
			return h.stats.Snapshot(ctx), nil
		})
	}))
	return nil
}
