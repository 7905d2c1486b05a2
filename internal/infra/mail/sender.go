package mail

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"

	"github.com/raskraski/storefront/internal/infra/queue"
)

//go:embed templates/*.html
var templatesFS embed.FS

var orderConfirmationTmpl = template.Must(template.ParseFS(templatesFS, "templates/order_confirmation.html"))

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		From:   from,
		Dialer: gomail.NewDialer(host, port, user, password),
	}
}

func (s *EmailSender) SendOrderConfirmation(ctx context.Context, payload queue.OrderPlacedPayload) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data := OrderConfirmationData{
		Name:    payload.CustomerName,
		OrderID: payload.OrderID,
		Total:   payload.Total,
	}
	for _, it := range payload.Items {
		data.Items = append(data.Items, OrderLine{
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}

	var body bytes.Buffer
	if err := orderConfirmationTmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", payload.CustomerEmail)
	m.SetHeader("Subject", fmt.Sprintf("Заказ %s принят", shortID(payload.OrderID)))
	m.SetBody("text/html", body.String())

	if err := s.Dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send SMTP email: %w", err)
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
