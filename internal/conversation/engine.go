// Package conversation implements the ordering chat: per-customer state,
// cart handling and order finalization.
package conversation

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"order_bot/internal/format"
	"order_bot/internal/models"
	"order_bot/internal/services"
	"order_bot/internal/session"
	"order_bot/pkg/whatsapp"

	"go.uber.org/zap"
)

// Inbound is one message received from the messaging channel.
type Inbound struct {
	From        string
	ProfileName string
	Body        string
	MediaURL    string
	MediaType   string
}

// HasImage reports whether the message carries an image attachment.
func (in Inbound) HasImage() bool {
	return in.MediaURL != "" && strings.HasPrefix(strings.ToLower(in.MediaType), "image/")
}

type Options struct {
	BusinessName       string
	PaymentLinkBaseURL string
	PaymentAlias       string
}

type Engine struct {
	sessions  session.Store
	locks     *session.Locker
	catalog   services.CatalogService
	orders    services.OrderService
	messenger services.WhatsAppService
	logger    *zap.Logger
	opts      Options

	now       func() time.Time
	lastOrder atomic.Int64
}

func NewEngine(
	sessions session.Store,
	catalog services.CatalogService,
	orders services.OrderService,
	messenger services.WhatsAppService,
	logger *zap.Logger,
	opts Options,
) *Engine {
	return &Engine{
		sessions:  sessions,
		locks:     session.NewLocker(),
		catalog:   catalog,
		orders:    orders,
		messenger: messenger,
		logger:    logger,
		opts:      opts,
		now:       time.Now,
	}
}

// turn carries the state of one inbound message through its transition.
type turn struct {
	in      Inbound
	text    string
	session *models.Session
	replies []string
}

func (t *turn) reply(msg string) {
	t.replies = append(t.replies, msg)
}

// HandleInbound processes one message end to end. Messages from the same
// customer are handled one at a time. On failure the customer gets an
// apology and the session keeps whatever changes were made before the
// failure; the error is returned for logging only.
func (e *Engine) HandleInbound(ctx context.Context, in Inbound) (err error) {
	phone := whatsapp.ParseAddress(in.From)
	if phone == "" {
		return fmt.Errorf("inbound message without sender")
	}

	unlock := e.locks.Lock(phone)
	defer unlock()

	sess, err := e.sessions.Load(ctx, phone)
	if err != nil {
		e.logger.Error("failed to load session", zap.String("phone", phone), zap.Error(err))
		e.send(ctx, phone, format.Apology())
		return fmt.Errorf("load session: %w", err)
	}

	t := &turn{in: in, text: strings.TrimSpace(in.Body), session: sess}
	kind := classify(in, sess)
	from := sess.State

	err = e.dispatch(ctx, t, kind)

	if saveErr := e.sessions.Save(ctx, sess); saveErr != nil {
		e.logger.Error("failed to save session", zap.String("phone", phone), zap.Error(saveErr))
		if err == nil {
			err = fmt.Errorf("save session: %w", saveErr)
		}
	}

	if err != nil {
		e.logger.Error("failed to process message",
			zap.String("phone", phone),
			zap.String("state", string(from)),
			zap.Stringer("input", kind),
			zap.Error(err))
		t.replies = append(t.replies, format.Apology())
	} else {
		e.logger.Debug("message processed",
			zap.String("phone", phone),
			zap.String("from", string(from)),
			zap.String("to", string(sess.State)),
			zap.Stringer("input", kind))
	}

	for _, msg := range t.replies {
		e.send(ctx, phone, msg)
	}
	return err
}

// dispatch runs the routed action, turning panics into errors.
func (e *Engine) dispatch(ctx context.Context, t *turn, kind InputKind) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while handling %s: %v", kind, r)
		}
	}()

	next, err := route(t.session.State, kind)(e, ctx, t)
	if err != nil {
		return err
	}
	t.session.State = next
	return nil
}

// NotifyStatusChange sends the canned message for status, if there is one.
func (e *Engine) NotifyStatusChange(ctx context.Context, phone string, status models.OrderStatus) bool {
	msg, ok := format.StatusMessage(status)
	if !ok {
		return false
	}
	e.send(ctx, phone, msg)
	return true
}

// send delivers best-effort: failures are logged and never retried.
func (e *Engine) send(ctx context.Context, phone, msg string) {
	if err := e.messenger.SendMessage(ctx, phone, msg); err != nil {
		e.logger.Warn("failed to deliver message", zap.String("phone", phone), zap.Error(err))
	}
}

// nextOrderNumber derives order numbers from the clock in milliseconds and
// never hands out the same or a smaller number twice.
func (e *Engine) nextOrderNumber() string {
	n := e.now().UnixMilli()
	for {
		last := e.lastOrder.Load()
		if n <= last {
			n = last + 1
		}
		if e.lastOrder.CompareAndSwap(last, n) {
			return fmt.Sprintf("ORD-%d", n)
		}
	}
}

func (e *Engine) paymentLink(order *models.Order) string {
	q := url.Values{}
	q.Set("order", order.OrderNumber)
	q.Set("amount", fmt.Sprintf("%.2f", order.Total))

	sep := "?"
	if strings.Contains(e.opts.PaymentLinkBaseURL, "?") {
		sep = "&"
	}
	return e.opts.PaymentLinkBaseURL + sep + q.Encode()
}
