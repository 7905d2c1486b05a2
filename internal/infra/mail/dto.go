package mail

import "gopkg.in/gomail.v2"

type OrderConfirmationData struct {
	Name    string
	OrderID string
	Items   []OrderLine
	Total   string
}

type OrderLine struct {
	Name      string
	Quantity  int
	UnitPrice string
}

// Dialer is satisfied by *gomail.Dialer.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type EmailSender struct {
	From   string
	Dialer Dialer
}
