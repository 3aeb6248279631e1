package models

import "time"

// State is a step of the ordering conversation.
type State string

const (
	StateMainMenu            State = "MAIN_MENU"
	StateBrowsingProducts    State = "BROWSING_PRODUCTS"
	StateDeliveryInfo        State = "DELIVERY_INFO"
	StatePaymentMethod       State = "PAYMENT_METHOD"
	StatePaymentConfirmation State = "PAYMENT_CONFIRMATION"
)

// States lists every conversation state.
var States = []State{
	StateMainMenu,
	StateBrowsingProducts,
	StateDeliveryInfo,
	StatePaymentMethod,
	StatePaymentConfirmation,
}

type Session struct {
	Phone        string       `json:"phone"`
	State        State        `json:"state"`
	Cart         Cart         `json:"cart"`
	DeliveryType DeliveryType `json:"delivery_type,omitempty"`
	Address      string       `json:"address,omitempty"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

func NewSession(phone string) *Session {
	return &Session{
		Phone:     phone,
		State:     StateMainMenu,
		UpdatedAt: time.Now(),
	}
}

// ClearPending forgets the delivery type and address collected so far.
func (s *Session) ClearPending() {
	s.DeliveryType = ""
	s.Address = ""
}

// Reset empties the cart, clears pending fields and returns to the main menu.
func (s *Session) Reset() {
	s.Cart.Clear()
	s.ClearPending()
	s.State = StateMainMenu
}

// AwaitingAddress is true while a delivery order still needs its address.
func (s *Session) AwaitingAddress() bool {
	return s.State == StatePaymentMethod && s.DeliveryType == DeliveryHome && s.Address == ""
}
