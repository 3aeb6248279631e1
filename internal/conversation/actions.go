package conversation

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"unicode"

	"order_bot/internal/format"
	"order_bot/internal/models"

	"go.uber.org/zap"
)

func (e *Engine) showMenu(ctx context.Context, t *turn) (models.State, error) {
	products := e.catalog.FetchMenu(ctx)
	t.reply(format.Menu(products, t.session.Cart))
	return models.StateBrowsingProducts, nil
}

func (e *Engine) showCart(ctx context.Context, t *turn) (models.State, error) {
	t.reply(format.Cart(t.session.Cart))
	return t.session.State, nil
}

func (e *Engine) clearCart(ctx context.Context, t *turn) (models.State, error) {
	t.session.Reset()
	t.reply(format.Cleared())
	return models.StateMainMenu, nil
}

func (e *Engine) cancelOrder(ctx context.Context, t *turn) (models.State, error) {
	if t.session.Cart.IsEmpty() {
		t.reply(format.NothingToCancel())
		return t.session.State, nil
	}
	t.session.Reset()
	t.reply(format.Cancelled())
	return models.StateMainMenu, nil
}

func (e *Engine) finalize(ctx context.Context, t *turn) (models.State, error) {
	if t.session.Cart.IsEmpty() {
		t.reply(format.EmptyCart())
		return t.session.State, nil
	}
	t.session.ClearPending()
	t.reply(format.OrderSummary(t.session.Cart))
	return models.StateDeliveryInfo, nil
}

func (e *Engine) chooseDelivery(ctx context.Context, t *turn) (models.State, error) {
	t.session.DeliveryType = models.DeliveryHome
	t.session.Address = ""
	t.reply(format.AddressPrompt())
	return models.StatePaymentMethod, nil
}

func (e *Engine) choosePickup(ctx context.Context, t *turn) (models.State, error) {
	t.session.DeliveryType = models.DeliveryPickup
	t.session.Address = ""
	t.reply(format.PaymentOptions())
	return models.StatePaymentMethod, nil
}

func (e *Engine) repromptDelivery(ctx context.Context, t *turn) (models.State, error) {
	t.reply(format.InvalidDeliveryOption())
	return t.session.State, nil
}

// recordAddress stores the raw message as the delivery address.
func (e *Engine) recordAddress(ctx context.Context, t *turn) (models.State, error) {
	if t.text == "" {
		t.reply(format.AddressPrompt())
		return t.session.State, nil
	}
	t.session.Address = t.text
	t.reply(format.AddressRecorded(t.text))
	return models.StatePaymentMethod, nil
}

func (e *Engine) repromptPayment(ctx context.Context, t *turn) (models.State, error) {
	t.reply(format.InvalidPaymentOption())
	return t.session.State, nil
}

func (e *Engine) payCash(ctx context.Context, t *turn) (models.State, error) {
	if t.session.Cart.IsEmpty() {
		t.session.Reset()
		t.reply(format.EmptyCart())
		return models.StateMainMenu, nil
	}
	e.processOrder(ctx, t, models.PaymentCash)
	return models.StateMainMenu, nil
}

func (e *Engine) payOnline(ctx context.Context, t *turn) (models.State, error) {
	if t.session.Cart.IsEmpty() {
		t.session.Reset()
		t.reply(format.EmptyCart())
		return models.StateMainMenu, nil
	}
	order := e.processOrder(ctx, t, models.PaymentOnline)
	t.reply(format.PaymentInstructions(e.paymentLink(order), e.opts.PaymentAlias, order.Total))
	return models.StatePaymentConfirmation, nil
}

func (e *Engine) confirmPayment(ctx context.Context, t *turn) (models.State, error) {
	found, err := e.orders.MarkPaymentReceived(ctx, t.session.Phone)
	switch {
	case err != nil:
		e.logger.Error("failed to mark payment received", zap.String("phone", t.session.Phone), zap.Error(err))
	case !found:
		e.logger.Warn("payment proof without a matching order", zap.String("phone", t.session.Phone))
	default:
		e.logger.Info("payment proof received",
			zap.String("phone", t.session.Phone), zap.String("media_url", t.in.MediaURL))
	}
	t.reply(format.PaymentReceived())
	return models.StateMainMenu, nil
}

func (e *Engine) welcome(ctx context.Context, t *turn) (models.State, error) {
	t.reply(format.Welcome(t.in.ProfileName, e.opts.BusinessName))
	return models.StateMainMenu, nil
}

// selectProducts adds every id in the message to the cart, one unit per
// occurrence. Tokens that are not integers are ignored; ids missing from
// the catalog, including ones too large to parse, are reported back.
func (e *Engine) selectProducts(ctx context.Context, t *turn) (models.State, error) {
	products := e.catalog.FetchMenu(ctx)
	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		if _, dup := byID[p.ID]; !dup {
			byID[p.ID] = p
		}
	}

	var added, missing []string
	for _, token := range splitSelection(t.text) {
		id, err := strconv.Atoi(token)
		if errors.Is(err, strconv.ErrRange) {
			missing = append(missing, token)
			continue
		}
		if err != nil {
			continue
		}
		p, ok := byID[strconv.Itoa(id)]
		if !ok {
			missing = append(missing, token)
			continue
		}
		t.session.Cart.Add(p)
		added = append(added, p.Name)
	}

	t.reply(format.SelectionResult(added, missing, t.session.Cart))
	return models.StateBrowsingProducts, nil
}

func splitSelection(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}
