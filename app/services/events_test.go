package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/Rakhulsr/ace-genuine-parts/app/models"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockChannel struct {
	mock.Mock
}

func (m *MockChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	return m.Called(exchange, key, mandatory, immediate, msg).Error(0)
}

func (m *MockChannel) Close() error {
	return m.Called().Error(0)
}

func sampleOrder() *models.Order {
	return &models.Order{
		ID:          "7d1c9f0e-3b1a-4c55-9a51-0d7b8f3e2a10",
		OrderNumber: "ACE250310A1B2C3",
		UserID:      "0b6f2c1e-58c4-4f7e-9d0a-2a7c4b9e1f33",
		Status:      models.OrderStatusConfirmed,
		TotalAmount: decimal.NewFromInt(2459),
	}
}

func TestAMQPPublisher_Publish(t *testing.T) {
	ch := &MockChannel{}
	at := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	event := NewOrderEvent(EventOrderCreated, sampleOrder(), at)

	ch.On("PublishWithContext", "ace.orders", EventOrderCreated, false, false, mock.MatchedBy(func(msg amqp.Publishing) bool {
		var got OrderEvent
		if err := json.Unmarshal(msg.Body, &got); err != nil {
			return false
		}
		return msg.ContentType == "application/json" &&
			msg.DeliveryMode == amqp.Persistent &&
			msg.MessageId != "" &&
			msg.Timestamp.Equal(at) &&
			got.OrderNumber == "ACE250310A1B2C3" &&
			got.TotalAmount.Equal(decimal.NewFromInt(2459))
	})).Return(nil)

	p := NewAMQPPublisherWithChannel(ch, "ace.orders")
	require.NoError(t, p.Publish(context.Background(), event))
	ch.AssertExpectations(t)
}

func TestAMQPPublisher_PublishError(t *testing.T) {
	ch := &MockChannel{}
	ch.On("PublishWithContext", "ace.orders", EventOrderCancelled, false, false, mock.Anything).Return(errors.New("channel closed"))

	p := NewAMQPPublisherWithChannel(ch, "ace.orders")
	err := p.Publish(context.Background(), NewOrderEvent(EventOrderCancelled, sampleOrder(), time.Now()))
	assert.EqualError(t, err, "channel closed")
}

func TestAMQPPublisher_Close(t *testing.T) {
	ch := &MockChannel{}
	ch.On("Close").Return(nil)

	require.NoError(t, NewAMQPPublisherWithChannel(ch, "ace.orders").Close())
	ch.AssertCalled(t, "Close")
}

type failingPublisher struct{}

func (failingPublisher) Publish(ctx context.Context, event OrderEvent) error {
	return errors.New("broker down")
}

func (failingPublisher) Close() error { return nil }

func TestCreateOrder_SurvivesPublishFailure(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Seal Kit", "800")
	svc := NewOrderService(f.db, f.orders, f.items, f.history, f.cart, f.addresses, failingPublisher{})

	order, err := svc.CreateOrder(context.Background(), "5a3f3e0a-1d9b-4a4e-8d71-6c2f0b7e9a11", CreateOrderInput{
		Items: []OrderLineInput{{ProductID: p.ID, ProductName: p.Name, Price: p.Price, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusConfirmed, order.Status)
}

func TestErrorGroups(t *testing.T) {
	assert.True(t, IsNotFound(ErrOrderNotFound))
	assert.True(t, IsNotFound(ErrNotInWishlist))
	assert.False(t, IsNotFound(ErrOrderNotCancellable))
	assert.True(t, IsRejected(ErrOrderNotCancellable))
	assert.True(t, IsRejected(ErrEmptyCart))
	assert.False(t, IsRejected(ErrNotDealer))
}
