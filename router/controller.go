package router

import (
	"context"
	"time"

	"Kubernetes-config-generator/export"
	helper "Kubernetes-config-generator/helper"
	"Kubernetes-config-generator/stats"

	"github.com/gofiber/fiber/v2"
)

const defaultStatsInterval = 30 * time.Second

type Handler struct {
	export        export.Options
	stats         *stats.Service
	statsInterval time.Duration
	baseCtx       context.Context
}

func newHandler(deps Dependencies) *Handler {
	h := &Handler{
		export:        deps.Export,
		stats:         deps.Stats,
		statsInterval: deps.StatsInterval,
		baseCtx:       deps.BaseContext,
	}
	if h.stats == nil {
		h.stats = &stats.Service{}
	}
	if h.baseCtx == nil {
		h.baseCtx = context.Background()
	}
	if h.statsInterval <= 0 {
		h.statsInterval = defaultStatsInterval
	}
	return h
}

// @Description	Liveness probe
// @Tags		Health
// @Produce		json
// @Router		/api/health/check [get]
func CheckHealth(c *fiber.Ctx) error {
	return helper.SendResponse(c, "OK", nil, fiber.StatusOK)
}
