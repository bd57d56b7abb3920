package planner

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/FACorreiaa/loci-planner/internal/app/models"
	"github.com/FACorreiaa/loci-planner/internal/app/observability/metrics"
)

// ItineraryClient calls the itinerary generation endpoint.
type ItineraryClient interface {
	Generate(ctx context.Context, req models.ItineraryRequest) (*models.ItineraryResult, error)
}

// Controller runs the planner form operations against a visitor Session and
// answers with the View to render.
type Controller struct {
	client  ItineraryClient
	logger  *zap.Logger
	metrics *metrics.AppMetrics
}

func NewController(client ItineraryClient, logger *zap.Logger, m *metrics.AppMetrics) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		client:  client,
		logger:  logger,
		metrics: m,
	}
}

// Load is a fresh page: nothing typed, no tags, input panel only. The button
// is never rendered busy here, since no response would later re-enable it in
// this page; a submit made while another tab's request is out is dropped.
func (c *Controller) Load(sess *Session) View {
	sess.Reset()
	return initialView("", "", []string{})
}

func (c *Controller) AddInterest(sess *Session, raw string) View {
	if sess.AddInterest(raw) {
		c.logger.Debug("Interest added", zap.String("interest", NormalizeInterest(raw)))
	}
	// The field is cleared whether or not the tag was new.
	v := initialView("", "", sess.Interests())
	v.Busy = sess.IsGenerating()
	return v
}

func (c *Controller) RemoveInterest(sess *Session, value string) View {
	if sess.RemoveInterest(value) {
		c.logger.Debug("Interest removed", zap.String("interest", value))
	}
	v := initialView("", "", sess.Interests())
	v.Busy = sess.IsGenerating()
	return v
}

// Submit validates the form and, unless a request is already outstanding,
// calls the itinerary endpoint. The boolean is false when the submission was
// dropped because of the in-flight guard; the View is then meaningless.
func (c *Controller) Submit(ctx context.Context, sess *Session, city, pending string) (View, bool) {
	city = strings.TrimSpace(city)
	interests := sess.Interests()

	if verr := validate(city, interests); verr != nil {
		c.metrics.RecordValidationFailure(ctx, verr.Message)
		c.logger.Debug("Submission rejected", zap.String("reason", verr.Message))
		return errorView(city, pending, interests, verr.UserMessage()), true
	}

	if !sess.BeginGenerating() {
		c.metrics.RecordDropped(ctx)
		c.logger.Info("Submission dropped, request already in flight", zap.String("city", city))
		return View{}, false
	}
	defer sess.EndGenerating()

	// An outstanding request always runs to completion, even if the browser
	// goes away.
	result, err := c.request(context.WithoutCancel(ctx), city, interests)
	if err != nil {
		c.metrics.RecordSubmission(ctx, "failure")
		c.logger.Error("Itinerary generation failed", zap.String("city", city), zap.Error(err))
		return errorView(city, pending, interests, models.MessageFor(err)), true
	}

	c.metrics.RecordSubmission(ctx, "success")
	c.logger.Info("Itinerary generated",
		zap.String("city", result.City),
		zap.Strings("interests", result.Interests),
	)
	return resultsView(city, interests, result), true
}

// NewPlan clears the form and returns to the initial panels.
func (c *Controller) NewPlan(sess *Session) View {
	sess.Reset()
	v := resetView()
	v.Busy = sess.IsGenerating()
	return v
}

// DismissError hides the error panel and keeps what the user typed.
func (c *Controller) DismissError(sess *Session, city, pending string) View {
	v := initialView(city, pending, sess.Interests())
	v.Busy = sess.IsGenerating()
	return v
}

func (c *Controller) request(ctx context.Context, city string, interests []string) (*models.ItineraryResult, error) {
	start := time.Now()
	defer func() {
		c.metrics.RecordUpstreamDuration(ctx, time.Since(start).Seconds())
	}()

	return c.client.Generate(ctx, models.ItineraryRequest{
		City:      city,
		Interests: interests,
	})
}

func validate(city string, interests []string) *models.ValidationError {
	if city == "" {
		return &models.ValidationError{Message: models.MsgCityRequired}
	}
	if len(interests) == 0 {
		return &models.ValidationError{Message: models.MsgInterestsRequired}
	}
	return nil
}
