// Package format renders the customer-facing chat messages.
package format

import (
	"fmt"
	"strings"

	"order_bot/internal/models"
)

func Money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func Welcome(name, business string) string {
	if name == "" {
		name = "👋"
	}
	return fmt.Sprintf("¡Hola %s! Bienvenido/a a *%s* 🍽️\n\n"+
		"Escribí:\n"+
		"• *menu* para ver los productos\n"+
		"• *carrito* para ver tu pedido\n"+
		"• *finalizar* para confirmar tu pedido\n"+
		"• *cancelar* para cancelar tu pedido", name, business)
}

// Menu lists available products grouped by category, in catalog order,
// followed by the current cart.
func Menu(products []models.Product, cart models.Cart) string {
	if len(products) == 0 {
		return "😕 No hay productos disponibles en este momento. Probá de nuevo más tarde.\n\n" + Cart(cart)
	}

	var categories []string
	byCategory := make(map[string][]models.Product)
	for _, p := range products {
		category := p.Category
		if category == "" {
			category = "Otros"
		}
		if _, seen := byCategory[category]; !seen {
			categories = append(categories, category)
		}
		byCategory[category] = append(byCategory[category], p)
	}

	var b strings.Builder
	b.WriteString("📋 *MENÚ*\n")
	for _, category := range categories {
		fmt.Fprintf(&b, "\n*%s*\n", strings.ToUpper(category))
		for _, p := range byCategory[category] {
			fmt.Fprintf(&b, "%s. %s - %s\n", p.ID, p.Name, Money(p.Price))
			if p.Description != "" {
				fmt.Fprintf(&b, "   _%s_\n", p.Description)
			}
		}
	}
	b.WriteString("\nEnviá el número del producto para agregarlo. Podés sumar varios separados por coma (ej: 1,2,2).\n\n")
	b.WriteString(Cart(cart))
	return b.String()
}

// Cart renders each line with its subtotal and the total computed from the
// lines.
func Cart(cart models.Cart) string {
	if cart.IsEmpty() {
		return "🛒 Tu carrito está vacío.\n*Total: " + Money(0) + "*"
	}

	var b strings.Builder
	b.WriteString("🛒 *Tu carrito:*\n")
	for _, line := range cart.Lines {
		fmt.Fprintf(&b, "• %dx %s (%s c/u) = %s\n",
			line.Quantity, line.Product.Name, Money(line.Product.Price), Money(line.Subtotal()))
	}
	fmt.Fprintf(&b, "\n*Total: %s*\n\n", Money(cart.Total()))
	b.WriteString("Escribí *finalizar* para confirmar o *limpiar* para vaciar el carrito.")
	return b.String()
}

// SelectionResult reports the products added and the ids that did not match
// the catalog, then the updated cart.
func SelectionResult(added, missing []string, cart models.Cart) string {
	var b strings.Builder
	if len(added) > 0 {
		b.WriteString("✅ Agregado al carrito:\n")
		for _, name := range added {
			fmt.Fprintf(&b, "• %s\n", name)
		}
	}
	if len(missing) > 0 {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "⚠️ No encontramos los productos: %s\n", strings.Join(missing, ", "))
	}
	b.WriteString("\n")
	b.WriteString(Cart(cart))
	return b.String()
}

func EmptyCart() string {
	return "🛒 Tu carrito está vacío. Escribí *menu* para ver los productos."
}

func Cleared() string {
	return "🧹 Vaciamos tu carrito. Escribí *menu* para empezar de nuevo."
}

func Cancelled() string {
	return "❌ Tu pedido fue cancelado. Escribí *menu* cuando quieras volver a pedir."
}

func NothingToCancel() string {
	return "No tenés ningún pedido en curso para cancelar."
}

// OrderSummary precedes the delivery type choice.
func OrderSummary(cart models.Cart) string {
	var b strings.Builder
	b.WriteString("📝 *Resumen de tu pedido:*\n")
	for _, line := range cart.Lines {
		fmt.Fprintf(&b, "• %dx %s = %s\n", line.Quantity, line.Product.Name, Money(line.Subtotal()))
	}
	fmt.Fprintf(&b, "\n*Total: %s*\n\n", Money(cart.Total()))
	b.WriteString(DeliveryOptions())
	return b.String()
}

func DeliveryOptions() string {
	return "¿Cómo querés recibir tu pedido?\n" +
		"1️⃣ Delivery\n" +
		"2️⃣ Retiro en el local"
}

func InvalidDeliveryOption() string {
	return "⚠️ Opción inválida. Respondé *1* o *2*.\n\n" + DeliveryOptions()
}

func AddressPrompt() string {
	return "📍 Enviá la dirección de entrega (calle, número, piso/depto)."
}

func AddressRecorded(address string) string {
	return fmt.Sprintf("📍 Dirección registrada: %s\n\n%s", address, PaymentOptions())
}

func PaymentOptions() string {
	return "💳 ¿Cómo querés pagar?\n" +
		"1️⃣ Efectivo\n" +
		"2️⃣ Pago online (link de pago / transferencia)"
}

func InvalidPaymentOption() string {
	return "⚠️ Opción inválida. Respondé *1* o *2*.\n\n" + PaymentOptions()
}

// OrderConfirmation itemizes a finalized order.
func OrderConfirmation(order *models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🎉 *¡Pedido confirmado!* (%s)\n\n", order.OrderNumber)
	for _, item := range order.Items {
		fmt.Fprintf(&b, "• %dx %s = %s\n", item.Quantity, item.Name, Money(item.Price*float64(item.Quantity)))
	}
	fmt.Fprintf(&b, "\n*Total: %s*\n", Money(order.Total))

	switch order.DeliveryType {
	case models.DeliveryHome:
		fmt.Fprintf(&b, "\n🛵 Delivery a: %s\nTiempo estimado de entrega: 30 a 45 minutos.\n", order.Address)
	default:
		b.WriteString("\n🏪 Retiro en el local\nTu pedido estará listo en 20 a 30 minutos.\n")
	}

	switch order.PaymentMethod {
	case models.PaymentOnline:
		b.WriteString("\n💳 Pago online: te enviamos el link de pago a continuación. " +
			"Cuando pagues, mandanos la foto del comprobante por este chat.")
	default:
		b.WriteString("\n💵 Pago en efectivo al recibir/retirar el pedido.")
	}
	return b.String()
}

// PaymentInstructions carries the payment link and, when configured, the
// bank transfer alias.
func PaymentInstructions(link, alias string, total float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🔗 Link de pago por %s:\n%s\n", Money(total), link)
	if alias != "" {
		fmt.Fprintf(&b, "\n🏦 También podés transferir al alias: *%s*\n", alias)
	}
	b.WriteString("\n📸 Enviá la foto del comprobante para confirmar tu pago.")
	return b.String()
}

func PaymentReceived() string {
	return "✅ ¡Recibimos tu comprobante! Vamos a verificar el pago y te avisamos cuando tu pedido esté en preparación."
}

func Apology() string {
	return "😓 Disculpá, ocurrió un error procesando tu mensaje. Intentá de nuevo en unos minutos."
}

var statusMessages = map[models.OrderStatus]string{
	models.OrderPreparing: "👨‍🍳 Tu pedido está en preparación.",
	models.OrderReady:     "✅ ¡Tu pedido está listo!",
	models.OrderOnTheWay:  "🛵 Tu pedido está en camino.",
	models.OrderDelivered: "📦 Tu pedido fue entregado. ¡Que lo disfrutes!",
	models.OrderFinished:  "🙌 Pedido finalizado. ¡Gracias por elegirnos!",
	models.OrderCancelled: "❌ Tu pedido fue cancelado. Si tenés dudas, respondé este mensaje.",
}

// StatusMessage returns the customer notification for a lifecycle status.
// Statuses outside the admin vocabulary have no message.
func StatusMessage(status models.OrderStatus) (string, bool) {
	msg, ok := statusMessages[status]
	return msg, ok
}
