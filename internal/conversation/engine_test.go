package conversation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"order_bot/internal/format"
	"order_bot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstMessageWelcomes(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.say(t, "hola"))

	assert.Equal(t, format.Welcome("Ana", "La Esquina"), h.messenger.last())
	assert.Equal(t, models.StateMainMenu, h.session(t).State)
	assert.Equal(t, customer, h.messenger.sent[0].phone)
}

func TestMenuShowsCatalogAndBrowses(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.say(t, "MENU"))

	assert.Contains(t, h.messenger.last(), "1. Hamburguesa - $10.00")
	assert.Equal(t, models.StateBrowsingProducts, h.session(t).State)
}

func TestSelectionAddsOneUnitPerOccurrence(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.say(t, "1,2,1"))

	sess := h.session(t)
	assert.Equal(t, models.StateBrowsingProducts, sess.State)
	require.Len(t, sess.Cart.Lines, 2)

	burger, ok := sess.Cart.Line("1")
	require.True(t, ok)
	assert.Equal(t, 2, burger.Quantity)
	fries, ok := sess.Cart.Line("2")
	require.True(t, ok)
	assert.Equal(t, 1, fries.Quantity)
	assert.InDelta(t, 25.0, sess.Cart.Total(), 0.001)
	assert.Contains(t, h.messenger.last(), "*Total: $25.00*")
}

func TestSelectionReportsMissingIDs(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.say(t, "3 9"))

	assert.Contains(t, h.messenger.last(), "No encontramos los productos: 9")
	line, ok := h.session(t).Cart.Line("3")
	require.True(t, ok)
	assert.Equal(t, 1, line.Quantity)
}

func TestSelectionReportsOutOfRangeIDs(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.say(t, "1, 99999999999999999999"))

	last := h.messenger.last()
	assert.Contains(t, last, "Hamburguesa")
	assert.Contains(t, last, "No encontramos los productos: 99999999999999999999")
	require.Len(t, h.session(t).Cart.Lines, 1)
}

func TestCartCommandKeepsState(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.say(t, "2"))

	require.NoError(t, h.say(t, "carrito"))

	assert.Equal(t, format.Cart(h.session(t).Cart), h.messenger.last())
	assert.Equal(t, models.StateBrowsingProducts, h.session(t).State)
}

func TestClearThenCartShowsEmpty(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.say(t, "1,2"))

	require.NoError(t, h.say(t, "limpiar"))
	assert.Equal(t, models.StateMainMenu, h.session(t).State)

	require.NoError(t, h.say(t, "carrito"))
	assert.Contains(t, h.messenger.last(), "Total: $0.00")
	assert.True(t, h.session(t).Cart.IsEmpty())
}

func TestCancel(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.say(t, "cancelar"))
	assert.Equal(t, format.NothingToCancel(), h.messenger.last())

	require.NoError(t, h.say(t, "1"))
	require.NoError(t, h.say(t, "cancelar"))
	assert.Equal(t, format.Cancelled(), h.messenger.last())
	assert.True(t, h.session(t).Cart.IsEmpty())
	assert.Equal(t, models.StateMainMenu, h.session(t).State)
}

func TestFinalizeWithEmptyCart(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.say(t, "finalizar"))

	assert.Equal(t, format.EmptyCart(), h.messenger.last())
	assert.Equal(t, models.StateMainMenu, h.session(t).State)
}

func TestInvalidDeliveryOptionReprompts(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.say(t, "1"))
	require.NoError(t, h.say(t, "finalizar"))
	require.Equal(t, models.StateDeliveryInfo, h.session(t).State)

	require.NoError(t, h.say(t, "3"))

	assert.Equal(t, format.InvalidDeliveryOption(), h.messenger.last())
	assert.Equal(t, models.StateDeliveryInfo, h.session(t).State)
	line, _ := h.session(t).Cart.Line("1")
	assert.Equal(t, 1, line.Quantity)
}

func TestDeliveryCashFlow(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.say(t, "1,1,3"))
	require.NoError(t, h.say(t, "finalizar"))
	require.NoError(t, h.say(t, "1"))

	assert.Equal(t, format.AddressPrompt(), h.messenger.last())
	assert.Equal(t, models.StatePaymentMethod, h.session(t).State)
	assert.True(t, h.session(t).AwaitingAddress())

	require.NoError(t, h.say(t, "Av. Siempre Viva 742"))
	assert.Equal(t, format.AddressRecorded("Av. Siempre Viva 742"), h.messenger.last())
	assert.Equal(t, "Av. Siempre Viva 742", h.session(t).Address)

	require.NoError(t, h.say(t, "1"))

	require.Len(t, h.orders.saved, 1)
	order := h.orders.saved[0]
	assert.Equal(t, "ORD-1700000000000", order.OrderNumber)
	assert.Equal(t, customer, order.CustomerPhone)
	assert.Equal(t, "Ana", order.CustomerName)
	assert.Equal(t, models.DeliveryHome, order.DeliveryType)
	assert.Equal(t, "Av. Siempre Viva 742", order.Address)
	assert.Equal(t, models.PaymentCash, order.PaymentMethod)
	assert.Equal(t, models.PaymentConfirmed, order.PaymentStatus)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.InDelta(t, 23.0, order.Total, 0.001)
	require.Len(t, order.Items, 2)
	assert.Equal(t, 2, order.Items[0].Quantity)

	assert.Equal(t, format.OrderConfirmation(order), h.messenger.last())

	sess := h.session(t)
	assert.Equal(t, models.StateMainMenu, sess.State)
	assert.True(t, sess.Cart.IsEmpty())
	assert.Empty(t, sess.DeliveryType)
	assert.Empty(t, sess.Address)
}

func TestPickupOnlineFlowAndPaymentProof(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.say(t, "2"))
	require.NoError(t, h.say(t, "finalizar"))
	require.NoError(t, h.say(t, "2"))
	assert.Equal(t, format.PaymentOptions(), h.messenger.last())

	require.NoError(t, h.say(t, "2"))

	require.Len(t, h.orders.saved, 1)
	order := h.orders.saved[0]
	assert.Equal(t, models.DeliveryPickup, order.DeliveryType)
	assert.Empty(t, order.Address)
	assert.Equal(t, models.PaymentOnline, order.PaymentMethod)
	assert.Equal(t, models.PaymentPending, order.PaymentStatus)

	last := h.messenger.last()
	assert.Contains(t, last, "https://pay.example.com/checkout?amount=5.00&order=ORD-1700000000000")
	assert.Contains(t, last, "la.esquina.mp")

	sess := h.session(t)
	assert.Equal(t, models.StatePaymentConfirmation, sess.State)
	assert.True(t, sess.Cart.IsEmpty())

	require.NoError(t, h.engine.HandleInbound(context.Background(), Inbound{
		From:      "whatsapp:" + customer,
		MediaURL:  "https://media.example.com/proof.jpg",
		MediaType: "image/jpeg",
	}))

	assert.Equal(t, format.PaymentReceived(), h.messenger.last())
	assert.Equal(t, []string{customer}, h.orders.paidPhone)
	assert.Equal(t, models.StateMainMenu, h.session(t).State)
}

func TestImageOutsidePaymentConfirmationIsIgnored(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.engine.HandleInbound(context.Background(), Inbound{
		From:      "whatsapp:" + customer,
		MediaURL:  "https://media.example.com/cat.jpg",
		MediaType: "image/jpeg",
	}))

	assert.Empty(t, h.orders.paidPhone)
	assert.Equal(t, format.Welcome("", "La Esquina"), h.messenger.last())
}

func TestInvalidPaymentOptionReprompts(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.say(t, "1"))
	require.NoError(t, h.say(t, "finalizar"))
	require.NoError(t, h.say(t, "2"))

	require.NoError(t, h.say(t, "con tarjeta"))

	assert.Equal(t, format.InvalidPaymentOption(), h.messenger.last())
	assert.Equal(t, models.StatePaymentMethod, h.session(t).State)
	assert.Empty(t, h.orders.saved)
}

func TestOrderIsConfirmedWhenStoreFails(t *testing.T) {
	h := newHarness(t)
	h.orders.saveErr = errors.New("sheet unavailable")
	require.NoError(t, h.say(t, "1"))
	require.NoError(t, h.say(t, "finalizar"))
	require.NoError(t, h.say(t, "2"))

	require.NoError(t, h.say(t, "1"))

	assert.Contains(t, h.messenger.last(), "Pedido confirmado")
	assert.True(t, h.session(t).Cart.IsEmpty())
	assert.Equal(t, models.StateMainMenu, h.session(t).State)
}

func TestFinalizeRestartsDeliveryCollection(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.say(t, "1"))
	require.NoError(t, h.say(t, "finalizar"))
	require.NoError(t, h.say(t, "1"))
	require.NoError(t, h.say(t, "Calle Falsa 123"))

	require.NoError(t, h.say(t, "finalizar"))

	sess := h.session(t)
	assert.Equal(t, models.StateDeliveryInfo, sess.State)
	assert.Empty(t, sess.DeliveryType)
	assert.Empty(t, sess.Address)
	assert.False(t, sess.Cart.IsEmpty())
}

func TestPanicSendsApologyAndKeepsSession(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.say(t, "carrito"))
	h.catalog.panics = true

	err := h.say(t, "menu")

	require.Error(t, err)
	assert.Equal(t, format.Apology(), h.messenger.last())
	assert.Equal(t, models.StateMainMenu, h.session(t).State)
	assert.Equal(t, 1, h.sessions.Len())
}

func TestDeliveryFailureIsNotFatal(t *testing.T) {
	h := newHarness(t)
	h.messenger.err = errors.New("gateway down")

	require.NoError(t, h.say(t, "1"))

	assert.Equal(t, 1, h.messenger.count())
	line, ok := h.session(t).Cart.Line("1")
	require.True(t, ok)
	assert.Equal(t, 1, line.Quantity)
}

func TestConcurrentSelectionsFromOneCustomer(t *testing.T) {
	h := newHarness(t)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = h.say(t, "1")
		}()
	}
	wg.Wait()

	line, ok := h.session(t).Cart.Line("1")
	require.True(t, ok)
	assert.Equal(t, 50, line.Quantity)
}

func TestConcurrentCustomersAreIndependent(t *testing.T) {
	h := newHarness(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = h.engine.HandleInbound(context.Background(), Inbound{
				From: fmt.Sprintf("whatsapp:+54911000000%02d", n),
				Body: "2",
			})
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, h.sessions.Len())
}

func TestOrderNumbersIncrease(t *testing.T) {
	h := newHarness(t)

	first := h.engine.nextOrderNumber()
	second := h.engine.nextOrderNumber()

	assert.Equal(t, "ORD-1700000000000", first)
	assert.Equal(t, "ORD-1700000000001", second)
}

func TestNotifyStatusChange(t *testing.T) {
	h := newHarness(t)

	assert.True(t, h.engine.NotifyStatusChange(context.Background(), customer, models.OrderReady))
	msg, _ := format.StatusMessage(models.OrderReady)
	assert.Equal(t, msg, h.messenger.last())

	assert.False(t, h.engine.NotifyStatusChange(context.Background(), customer, models.OrderPending))
	assert.Equal(t, 1, h.messenger.count())
}

func TestMissingSender(t *testing.T) {
	h := newHarness(t)

	err := h.engine.HandleInbound(context.Background(), Inbound{Body: "hola"})

	require.Error(t, err)
	assert.Zero(t, h.messenger.count())
}
