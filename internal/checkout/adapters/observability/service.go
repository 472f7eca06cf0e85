package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/shopflow/checkout/internal/checkout/application/types"
	"github.com/shopflow/checkout/internal/checkout/domain"
	"github.com/shopflow/checkout/internal/checkout/ports"
)

const tracerName = "github.com/shopflow/checkout/internal/checkout/adapters/observability/service"

var _ ports.Service = (*Service)(nil)

// Service decorates the checkout driving port with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create service metrics instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wires a decorator around the core service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

// AddItemToCart appends an item to the cart with instrumentation.
func (s *Service) AddItemToCart(ctx context.Context, item domain.LineItem) error {
	ctx, span := s.startSpan(ctx, "Checkout.AddItemToCart", attribute.String("cart.item", string(item)))
	defer span.End()

	if err := s.inner.AddItemToCart(ctx, item); err != nil {
		return s.handleError(ctx, span, err, "failed to add item to cart", slog.String("item", string(item)))
	}
	s.metrics.recordItemAdded(ctx)
	s.logInfo(ctx, "item added to cart", slog.String("item", string(item)))
	return nil
}

// Checkout submits the cart with instrumentation.
func (s *Service) Checkout(ctx context.Context) (*types.CheckoutResult, error) {
	ctx, span := s.startSpan(ctx, "Checkout.Checkout")
	defer span.End()

	s.logInfo(ctx, "checkout started")
	result, err := s.inner.Checkout(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "checkout failed")
	}
	if result != nil {
		span.SetAttributes(
			attribute.String("order.id", string(result.OrderID)),
			attribute.String("checkout.status", string(result.Status)),
		)
		s.metrics.recordCheckout(ctx, result.Status)
		s.logInfo(ctx, "checkout settled",
			slog.String("order.id", string(result.OrderID)),
			slog.String("status", string(result.Status)))
	}
	return result, nil
}

// CartItems exposes the cart contents.
func (s *Service) CartItems(ctx context.Context) []domain.LineItem {
	ctx, span := s.startSpan(ctx, "Checkout.CartItems")
	defer span.End()

	items := s.inner.CartItems(ctx)
	span.SetAttributes(attribute.Int("cart.size", len(items)))
	return items
}

// LastCartError exposes the cart's recorded rejection message.
func (s *Service) LastCartError(ctx context.Context) (string, bool) {
	return s.inner.LastCartError(ctx)
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := s.tracer
	if tracer == nil {
		tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if s.logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	}
	return err
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	itemsAdded metric.Int64Counter
	checkouts  metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	itemsAdded, _ := m.Int64Counter("checkout.cart.items_added", metric.WithDescription("Number of items added to carts"))
	checkouts, _ := m.Int64Counter("checkout.transactions", metric.WithDescription("Number of settled checkout transactions by status"))
	return serviceMetrics{itemsAdded: itemsAdded, checkouts: checkouts}
}

func (m serviceMetrics) recordItemAdded(ctx context.Context) {
	addCounter(ctx, m.itemsAdded, 1)
}

func (m serviceMetrics) recordCheckout(ctx context.Context, status types.CheckoutStatus) {
	addCounter(ctx, m.checkouts, 1, attribute.String("checkout.status", string(status)))
}

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}
