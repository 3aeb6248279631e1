package conversation

import (
	"context"
	"regexp"
	"strings"

	"order_bot/internal/models"
)

// InputKind classifies an inbound message for dispatch.
type InputKind int

const (
	InputText InputKind = iota
	InputMenu
	InputCart
	InputClear
	InputCancel
	InputFinalize
	InputOptionOne
	InputOptionTwo
	InputSelection
	InputAddress
	InputPaymentProof
)

var inputKindNames = map[InputKind]string{
	InputText:         "text",
	InputMenu:         "menu",
	InputCart:         "cart",
	InputClear:        "clear",
	InputCancel:       "cancel",
	InputFinalize:     "finalize",
	InputOptionOne:    "option_1",
	InputOptionTwo:    "option_2",
	InputSelection:    "selection",
	InputAddress:      "address",
	InputPaymentProof: "payment_proof",
}

func (k InputKind) String() string {
	if name, ok := inputKindNames[k]; ok {
		return name
	}
	return "unknown"
}

var commands = map[string]InputKind{
	"menu":      InputMenu,
	"menú":      InputMenu,
	"carrito":   InputCart,
	"limpiar":   InputClear,
	"cancelar":  InputCancel,
	"finalizar": InputFinalize,
}

var selectionPattern = regexp.MustCompile(`^[\d,\s]*\d[\d,\s]*$`)

// classify resolves what the message means for the session's current state.
// Commands win over everything; address capture and payment proofs only
// exist in the states that wait for them.
func classify(in Inbound, s *models.Session) InputKind {
	text := strings.TrimSpace(in.Body)

	if kind, ok := commands[strings.ToLower(text)]; ok {
		return kind
	}
	if s.AwaitingAddress() {
		return InputAddress
	}
	if s.State == models.StatePaymentConfirmation && in.HasImage() {
		return InputPaymentProof
	}

	switch text {
	case "1":
		return InputOptionOne
	case "2":
		return InputOptionTwo
	}
	if selectionPattern.MatchString(text) {
		return InputSelection
	}
	return InputText
}

// action runs one transition and returns the state the session moves to.
type action func(e *Engine, ctx context.Context, t *turn) (models.State, error)

// commandRoutes apply in every state.
var commandRoutes = map[InputKind]action{
	InputMenu:     (*Engine).showMenu,
	InputCart:     (*Engine).showCart,
	InputClear:    (*Engine).clearCart,
	InputCancel:   (*Engine).cancelOrder,
	InputFinalize: (*Engine).finalize,
}

// stateRoutes hold the handling specific to a state.
var stateRoutes = map[models.State]map[InputKind]action{
	models.StateDeliveryInfo: {
		InputOptionOne: (*Engine).chooseDelivery,
		InputOptionTwo: (*Engine).choosePickup,
		InputSelection: (*Engine).repromptDelivery,
		InputText:      (*Engine).repromptDelivery,
	},
	models.StatePaymentMethod: {
		InputAddress:   (*Engine).recordAddress,
		InputOptionOne: (*Engine).payCash,
		InputOptionTwo: (*Engine).payOnline,
		InputSelection: (*Engine).repromptPayment,
		InputText:      (*Engine).repromptPayment,
	},
	models.StatePaymentConfirmation: {
		InputPaymentProof: (*Engine).confirmPayment,
	},
}

// defaultRoutes apply when neither a command nor the state claims the input.
var defaultRoutes = map[InputKind]action{
	InputOptionOne:    (*Engine).selectProducts,
	InputOptionTwo:    (*Engine).selectProducts,
	InputSelection:    (*Engine).selectProducts,
	InputText:         (*Engine).welcome,
	InputAddress:      (*Engine).welcome,
	InputPaymentProof: (*Engine).welcome,
}

func route(state models.State, kind InputKind) action {
	if a, ok := commandRoutes[kind]; ok {
		return a
	}
	if a, ok := stateRoutes[state][kind]; ok {
		return a
	}
	if a, ok := defaultRoutes[kind]; ok {
		return a
	}
	return (*Engine).welcome
}
