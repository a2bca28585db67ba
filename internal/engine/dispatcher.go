// Package engine resolves the subscribers of a listing, renders the
// notification, and fans it out to the mail transport.
package engine

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"

	"github.com/donaldgifford/price-alert-notifier/internal/metrics"
	"github.com/donaldgifford/price-alert-notifier/internal/notify"
	"github.com/donaldgifford/price-alert-notifier/internal/store"
	domain "github.com/donaldgifford/price-alert-notifier/pkg/types"
)

const tracerName = "github.com/donaldgifford/price-alert-notifier/internal/engine"

var (
	// ErrInvalidAPIKey is returned when the request's API key does not match.
	ErrInvalidAPIKey = errors.New("invalid API key")

	// ErrMissingListingID is returned when the request carries no listing ID.
	ErrMissingListingID = errors.New("missing listing_id parameter")
)

// Dispatcher handles notification requests end to end.
type Dispatcher struct {
	store          store.Store
	mailer         notify.Mailer
	apiKey         []byte
	log            *slog.Logger
	tracer         trace.Tracer
	sends          metric.Int64Counter
	maxConcurrency int
}

// NewDispatcher creates a new Dispatcher with injected dependencies.
func NewDispatcher(
	s store.Store,
	m notify.Mailer,
	apiKey string,
	opts ...DispatcherOption,
) *Dispatcher {
	d := &Dispatcher{
		store:  s,
		mailer: m,
		apiKey: []byte(apiKey),
		log:    slog.Default(),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(d)
	}

	sends, err := otel.Meter(tracerName).Int64Counter("pan.mail.sends",
		metric.WithDescription("Outbound mail calls by result."))
	if err != nil {
		d.log.Warn("creating mail send instrument", "error", err)
		sends = noop.Int64Counter{}
	}
	d.sends = sends

	return d
}

// DispatcherOption configures the Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		d.log = l
	}
}

// WithMaxConcurrency caps the number of in-flight mail sends per request.
// Zero or less means one goroutine per recipient.
func WithMaxConcurrency(n int) DispatcherOption {
	return func(d *Dispatcher) {
		d.maxConcurrency = n
	}
}

// resolved is everything needed to dispatch a notification.
type resolved struct {
	subscribers int
	recipients  []string
	message     domain.RenderedMessage
}

// Notify validates req, resolves its subscribers and listing, and sends the
// rendered notification to every subscriber. Individual send failures are
// recorded in the summary and never fail the request. Once resolution
// succeeds the sends run to completion even if ctx is canceled.
func (d *Dispatcher) Notify(
	ctx context.Context,
	req domain.NotificationRequest,
) (*domain.DispatchSummary, error) {
	ctx, span := d.tracer.Start(ctx, "engine.Notify",
		trace.WithAttributes(attribute.String("listing.id", req.ListingID)))
	defer span.End()

	r, err := d.validateAndResolve(ctx, req.APIKey, req.ListingID)
	if err != nil {
		metrics.NotifyRequestsTotal.WithLabelValues(outcomeFor(err)).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	summary := &domain.DispatchSummary{
		ListingID:   req.ListingID,
		Subscribers: r.subscribers,
		Recipients:  len(r.recipients),
	}

	if r.subscribers == 0 {
		summary.NoSubscribers = true
		metrics.NotifyRequestsTotal.WithLabelValues(metrics.OutcomeNoSubscribers).Inc()
		d.log.Info("no subscribers for listing", "listing_id", req.ListingID)
		return summary, nil
	}

	metrics.SubscribersPerRequest.Observe(float64(len(r.recipients)))

	summary.Outcomes = d.dispatch(context.WithoutCancel(ctx), r)
	for _, o := range summary.Outcomes {
		if o.OK {
			summary.Sent++
		} else {
			summary.Failed++
		}
	}

	span.SetAttributes(
		attribute.Int("dispatch.recipients", summary.Recipients),
		attribute.Int("dispatch.sent", summary.Sent),
		attribute.Int("dispatch.failed", summary.Failed),
	)
	metrics.NotifyRequestsTotal.WithLabelValues(metrics.OutcomeSent).Inc()

	d.log.Info("notification dispatched",
		"listing_id", req.ListingID,
		"subscribers", summary.Subscribers,
		"recipients", summary.Recipients,
		"sent", summary.Sent,
		"failed", summary.Failed,
	)

	return summary, nil
}

// Preview runs the same validation and resolution as Notify and returns the
// message that would be sent without sending anything.
func (d *Dispatcher) Preview(
	ctx context.Context,
	apiKey, listingID string,
) (*domain.Preview, error) {
	ctx, span := d.tracer.Start(ctx, "engine.Preview",
		trace.WithAttributes(attribute.String("listing.id", listingID)))
	defer span.End()

	r, err := d.validateAndResolve(ctx, apiKey, listingID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	p := &domain.Preview{
		ListingID:  listingID,
		Subject:    r.message.Subject,
		Body:       r.message.Body,
		Recipients: r.recipients,
	}
	if p.Recipients == nil {
		p.Recipients = []string{}
	}
	return p, nil
}

func (d *Dispatcher) validateAndResolve(
	ctx context.Context,
	apiKey, listingID string,
) (*resolved, error) {
	if subtle.ConstantTimeCompare([]byte(apiKey), d.apiKey) != 1 {
		d.log.Warn("rejected request with invalid API key", "listing_id", listingID)
		return nil, ErrInvalidAPIKey
	}
	if listingID == "" {
		return nil, ErrMissingListingID
	}

	r, err := d.resolve(ctx, listingID)
	if err != nil {
		d.log.Error("resolving notification", "listing_id", listingID, "error", err)
		return nil, err
	}
	return r, nil
}

// resolve looks up subscribers and the listing. A listing without favorites
// resolves with zero subscribers and no further lookups.
func (d *Dispatcher) resolve(ctx context.Context, listingID string) (*resolved, error) {
	ctx, span := d.tracer.Start(ctx, "engine.resolve")
	defer span.End()

	userIDs, err := d.store.ListFavoriteUserIDs(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("listing favorites: %w", err)
	}
	if len(userIDs) == 0 {
		return &resolved{}, nil
	}

	profiles, err := d.store.ListSubscriberProfiles(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("listing subscriber profiles: %w", err)
	}

	listing, err := d.store.GetListingSnapshot(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("getting listing: %w", err)
	}

	msg, err := RenderMessage(listing)
	if err != nil {
		return nil, fmt.Errorf("rendering message: %w", err)
	}

	recipients := make([]string, 0, len(profiles))
	for _, p := range profiles {
		recipients = append(recipients, p.Username)
	}

	span.SetAttributes(
		attribute.Int("resolve.subscribers", len(userIDs)),
		attribute.Int("resolve.recipients", len(recipients)),
	)

	return &resolved{
		subscribers: len(userIDs),
		recipients:  recipients,
		message:     msg,
	}, nil
}

// dispatch sends the message to every recipient concurrently and waits for
// all sends to settle.
func (d *Dispatcher) dispatch(ctx context.Context, r *resolved) []domain.DispatchOutcome {
	ctx, span := d.tracer.Start(ctx, "engine.dispatch",
		trace.WithAttributes(attribute.Int("dispatch.recipients", len(r.recipients))))
	defer span.End()

	p := pool.NewWithResults[domain.DispatchOutcome]()
	if d.maxConcurrency > 0 {
		p = p.WithMaxGoroutines(d.maxConcurrency)
	}

	for _, to := range r.recipients {
		p.Go(func() domain.DispatchOutcome {
			return d.sendOne(ctx, to, r.message)
		})
	}

	return p.Wait()
}

func (d *Dispatcher) sendOne(
	ctx context.Context,
	to string,
	msg domain.RenderedMessage,
) domain.DispatchOutcome {
	start := time.Now()
	err := d.mailer.Send(ctx, notify.Message{
		To:      to,
		Subject: msg.Subject,
		HTML:    msg.Body,
		Text:    msg.Body,
	})
	metrics.MailSendDuration.Observe(time.Since(start).Seconds())

	if err == nil {
		metrics.MailSendsTotal.WithLabelValues(metrics.ResultOK).Inc()
		d.sends.Add(ctx, 1, metric.WithAttributes(attribute.String("result", metrics.ResultOK)))
		return domain.DispatchOutcome{Recipient: to, OK: true}
	}

	metrics.MailSendsTotal.WithLabelValues(metrics.ResultFailed).Inc()
	d.sends.Add(ctx, 1, metric.WithAttributes(attribute.String("result", metrics.ResultFailed)))

	var status int
	var sendErr *notify.SendError
	if errors.As(err, &sendErr) {
		status = sendErr.StatusCode
	}

	d.log.Warn("mail send failed",
		"recipient", to,
		"status", status,
		"error", err,
	)

	return domain.DispatchOutcome{Recipient: to, StatusCode: status, Err: err}
}

func outcomeFor(err error) string {
	switch {
	case errors.Is(err, ErrInvalidAPIKey):
		return metrics.OutcomeUnauthorized
	case errors.Is(err, ErrMissingListingID):
		return metrics.OutcomeBadRequest
	default:
		return metrics.OutcomeError
	}
}
