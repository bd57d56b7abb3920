package planner

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/loci-planner/internal/app/handlers"
	"github.com/FACorreiaa/loci-planner/internal/app/middleware"
	"github.com/FACorreiaa/loci-planner/internal/app/observability/metrics"
)

type Handler struct {
	*handlers.BaseHandler
	controller *Controller
	store      *SessionStore
	logger     *zap.Logger
	metrics    *metrics.AppMetrics
}

func NewHandler(base *handlers.BaseHandler, controller *Controller, store *SessionStore, logger *zap.Logger, m *metrics.AppMetrics) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		BaseHandler: base,
		controller:  controller,
		store:       store,
		logger:      logger,
		metrics:     m,
	}
}

func (h *Handler) session(c *gin.Context) *Session {
	sess := h.store.Get(middleware.GetSessionIDFromContext(c))
	h.metrics.SetActiveSessions(c.Request.Context(), h.store.Count())
	return sess
}

// ShowPlanner serves GET /.
func (h *Handler) ShowPlanner(c *gin.Context) {
	v := h.controller.Load(h.session(c))
	h.RenderPage(c, "AI Travel Planner", "Planner", Planner(v))
}

// AddInterest serves POST /planner/interests, fired by Enter in the
// interest field.
func (h *Handler) AddInterest(c *gin.Context) {
	v := h.controller.AddInterest(h.session(c), c.PostForm("interest"))
	h.Render(c, http.StatusOK, InterestField(v))
}

// RemoveInterest serves DELETE /planner/interests. htmx sends the hx-vals of
// a DELETE in the query string; a form body is accepted too.
func (h *Handler) RemoveInterest(c *gin.Context) {
	tag, ok := c.GetQuery("tag")
	if !ok {
		tag = c.PostForm("tag")
	}
	v := h.controller.RemoveInterest(h.session(c), tag)
	h.Render(c, http.StatusOK, InterestField(v))
}

// Submit serves POST /planner/submit.
func (h *Handler) Submit(c *gin.Context) {
	v, accepted := h.controller.Submit(c.Request.Context(), h.session(c), c.PostForm("city"), c.PostForm("interest"))
	if !accepted {
		c.Header("HX-Reswap", "none")
		c.Status(http.StatusNoContent)
		return
	}
	h.renderPlanner(c, v)
}

// NewPlan serves POST /planner/new.
func (h *Handler) NewPlan(c *gin.Context) {
	h.renderPlanner(c, h.controller.NewPlan(h.session(c)))
}

// DismissError serves POST /planner/error/dismiss.
func (h *Handler) DismissError(c *gin.Context) {
	v := h.controller.DismissError(h.session(c), c.PostForm("city"), c.PostForm("interest"))
	h.renderPlanner(c, v)
}

func (h *Handler) renderPlanner(c *gin.Context, v View) {
	if triggers := afterSettleTriggers(v); triggers != "" {
		c.Header("HX-Trigger-After-Settle", triggers)
	}
	h.Render(c, http.StatusOK, Planner(v))
}

// afterSettleTriggers encodes the scroll and focus directives of v as htmx
// events for the page script.
func afterSettleTriggers(v View) string {
	events := map[string]any{}
	if v.Scroll != ScrollNone {
		events["planner:scroll"] = map[string]string{"target": string(v.Scroll)}
	}
	if v.FocusCityAfter > 0 {
		events["planner:focus"] = map[string]any{
			"target":  cityID,
			"delayMs": v.FocusCityAfter.Milliseconds(),
		}
	}
	if len(events) == 0 {
		return ""
	}
	raw, err := json.Marshal(events)
	if err != nil {
		return ""
	}
	return string(raw)
}
