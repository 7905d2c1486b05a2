package mail

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"mime"
	"testing"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/raskraski/storefront/internal/infra/queue"
)

type MockDialer struct {
	mock.Mock
}

func (m *MockDialer) DialAndSend(msgs ...*gomail.Message) error {
	args := m.Called(msgs)
	return args.Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendOrderConfirmation(ctx context.Context, payload queue.OrderPlacedPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

func testPayload() queue.OrderPlacedPayload {
	return queue.OrderPlacedPayload{
		OrderID:       "0f8fad5b-d9cb-469f-a165-70867728950e",
		CustomerName:  "Анна <script>",
		CustomerEmail: "anna@example.com",
		Items:         []queue.OrderPlacedItem{{Name: "Album", Quantity: 2, UnitPrice: "150.00"}},
		Total:         "300.00",
	}
}

func TestSendOrderConfirmation(t *testing.T) {
	var sent *gomail.Message
	dialer := new(MockDialer)
	dialer.On("DialAndSend", mock.Anything).Run(func(args mock.Arguments) {
		sent = args.Get(0).([]*gomail.Message)[0]
	}).Return(nil)

	s := &EmailSender{From: "shop@example.com", Dialer: dialer}
	require.NoError(t, s.SendOrderConfirmation(context.Background(), testPayload()))

	require.NotNil(t, sent)
	assert.Equal(t, []string{"anna@example.com"}, sent.GetHeader("To"))
	// gomail stores non-ASCII headers already Q-encoded
	subject := sent.GetHeader("Subject")
	require.Len(t, subject, 1)
	decoded, err := new(mime.WordDecoder).DecodeHeader(subject[0])
	require.NoError(t, err)
	assert.Equal(t, "Заказ 0f8fad5b принят", decoded)

	var buf bytes.Buffer
	_, err = sent.WriteTo(&buf)
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "<script>")
}

func TestSendOrderConfirmation_DialError(t *testing.T) {
	dialer := new(MockDialer)
	dialer.On("DialAndSend", mock.Anything).Return(errors.New("connection refused"))

	s := &EmailSender{From: "shop@example.com", Dialer: dialer}
	err := s.SendOrderConfirmation(context.Background(), testPayload())

	assert.ErrorContains(t, err, "failed to send SMTP email")
}

func TestBreakerSender_OpensAfterConsecutiveFailures(t *testing.T) {
	ctx := context.Background()
	next := new(MockNotifier)
	next.On("SendOrderConfirmation", ctx, mock.Anything).Return(errors.New("smtp down"))

	s := NewBreakerSender(next, slog.New(slog.NewTextHandler(io.Discard, nil)))
	for i := 0; i < 5; i++ {
		assert.Error(t, s.SendOrderConfirmation(ctx, testPayload()))
	}

	assert.Equal(t, gobreaker.StateOpen, s.State())
	err := s.SendOrderConfirmation(ctx, testPayload())
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	next.AssertNumberOfCalls(t, "SendOrderConfirmation", 5)
}
