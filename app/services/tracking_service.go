package services

import (
	"context"
	"time"

	"github.com/Rakhulsr/ace-genuine-parts/app/models"
	"github.com/Rakhulsr/ace-genuine-parts/app/repositories"
)

// TimelineStep is the gap assumed between flow statuses when an order has no
// recorded history for a step.
const TimelineStep = 4 * time.Hour

var statusProgress = map[string]int{
	models.OrderStatusConfirmed:      20,
	models.OrderStatusPreparing:      40,
	models.OrderStatusShipped:        60,
	models.OrderStatusOutForDelivery: 80,
	models.OrderStatusDelivered:      100,
	models.OrderStatusCancelled:      0,
}

var statusLabels = map[string]string{
	models.OrderStatusConfirmed:      "Order Confirmed",
	models.OrderStatusPreparing:      "Preparing for Dispatch",
	models.OrderStatusShipped:        "Shipped",
	models.OrderStatusOutForDelivery: "Out for Delivery",
	models.OrderStatusDelivered:      "Delivered",
	models.OrderStatusCancelled:      "Cancelled",
}

var cannedLocations = map[string]string{
	models.OrderStatusConfirmed:      "ACE Order Desk, Faridabad",
	models.OrderStatusPreparing:      "ACE Central Warehouse, Faridabad",
	models.OrderStatusShipped:        "In transit, regional sorting hub",
	models.OrderStatusOutForDelivery: "Local delivery hub",
	models.OrderStatusDelivered:      "Delivery address",
}

// Progress is 0 for cancelled and unknown statuses.
func Progress(status string) int {
	return statusProgress[status]
}

func CannedLocation(status string) string {
	return cannedLocations[status]
}

type TimelineEntry struct {
	Status    string     `json:"status"`
	Label     string     `json:"label"`
	Location  string     `json:"location,omitempty"`
	Note      string     `json:"note,omitempty"`
	Timestamp *time.Time `json:"timestamp"`
	Completed bool       `json:"completed"`
	Current   bool       `json:"current"`
}

type TrackingInfo struct {
	OrderID           string          `json:"order_id"`
	OrderNumber       string          `json:"order_number"`
	TrackingNumber    string          `json:"tracking_number"`
	Status            string          `json:"status"`
	Progress          int             `json:"progress"`
	DeliveryOption    string          `json:"delivery_option"`
	EstimatedDelivery time.Time       `json:"estimated_delivery"`
	Timeline          []TimelineEntry `json:"timeline"`
}

type LiveTracking struct {
	TrackingNumber    string    `json:"tracking_number"`
	OrderNumber       string    `json:"order_number"`
	Status            string    `json:"status"`
	Progress          int       `json:"progress"`
	LastLocation      string    `json:"last_location"`
	CourierName       string    `json:"courier_name,omitempty"`
	CourierPhone      string    `json:"courier_phone,omitempty"`
	EstimatedDelivery time.Time `json:"estimated_delivery"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type TrackingService struct {
	orderRepo repositories.OrderRepository
}

func NewTrackingService(orderRepo repositories.OrderRepository) *TrackingService {
	return &TrackingService{orderRepo: orderRepo}
}

func (s *TrackingService) Track(ctx context.Context, userID, orderID string) (*TrackingInfo, error) {
	order, err := s.orderRepo.FindByIDForUser(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	return &TrackingInfo{
		OrderID:           order.ID,
		OrderNumber:       order.OrderNumber,
		TrackingNumber:    order.TrackingNumber,
		Status:            order.Status,
		Progress:          Progress(order.Status),
		DeliveryOption:    order.DeliveryOption,
		EstimatedDelivery: order.EstimatedDelivery,
		Timeline:          BuildTimeline(order),
	}, nil
}

func (s *TrackingService) Live(ctx context.Context, userID, trackingNumber string) (*LiveTracking, error) {
	order, err := s.orderRepo.FindByTrackingNumberForUser(ctx, trackingNumber, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	live := &LiveTracking{
		TrackingNumber:    order.TrackingNumber,
		OrderNumber:       order.OrderNumber,
		Status:            order.Status,
		Progress:          Progress(order.Status),
		LastLocation:      CannedLocation(order.Status),
		CourierName:       order.CourierName,
		CourierPhone:      order.CourierPhone,
		EstimatedDelivery: order.EstimatedDelivery,
		UpdatedAt:         order.UpdatedAt,
	}

	for i := len(order.StatusHistory) - 1; i >= 0; i-- {
		if loc := order.StatusHistory[i].Location; loc != "" {
			live.LastLocation = loc
			break
		}
	}
	return live, nil
}

// BuildTimeline lays the order's recorded history over the status flow.
// Steps reached without a recorded row fall back to created_at + i*TimelineStep
// and the canned location for the step.
func BuildTimeline(order *models.Order) []TimelineEntry {
	if order.Status == models.OrderStatusCancelled {
		return cancelledTimeline(order)
	}

	recorded := make(map[string]models.OrderStatusHistory, len(order.StatusHistory))
	for _, h := range order.StatusHistory {
		recorded[h.Status] = h
	}

	current := models.StatusIndex(order.Status)
	timeline := make([]TimelineEntry, 0, len(models.OrderStatusFlow))

	for i, status := range models.OrderStatusFlow {
		entry := TimelineEntry{
			Status:    status,
			Label:     statusLabels[status],
			Completed: i <= current,
			Current:   i == current,
		}

		if entry.Completed {
			if h, ok := recorded[status]; ok {
				ts := h.CreatedAt
				entry.Timestamp = &ts
				entry.Location = h.Location
				entry.Note = h.Note
			} else {
				ts := order.CreatedAt.Add(time.Duration(i) * TimelineStep)
				entry.Timestamp = &ts
			}
			if entry.Location == "" {
				entry.Location = CannedLocation(status)
			}
		}

		timeline = append(timeline, entry)
	}
	return timeline
}

func cancelledTimeline(order *models.Order) []TimelineEntry {
	timeline := make([]TimelineEntry, 0, len(order.StatusHistory)+1)

	for _, h := range order.StatusHistory {
		if h.Status == models.OrderStatusCancelled {
			continue
		}
		ts := h.CreatedAt
		timeline = append(timeline, TimelineEntry{
			Status:    h.Status,
			Label:     statusLabels[h.Status],
			Location:  h.Location,
			Note:      h.Note,
			Timestamp: &ts,
			Completed: true,
		})
	}

	if len(timeline) == 0 {
		ts := order.CreatedAt
		timeline = append(timeline, TimelineEntry{
			Status:    models.OrderStatusConfirmed,
			Label:     statusLabels[models.OrderStatusConfirmed],
			Location:  CannedLocation(models.OrderStatusConfirmed),
			Timestamp: &ts,
			Completed: true,
		})
	}

	cancelledAt := order.UpdatedAt
	if order.CancelledAt != nil {
		cancelledAt = *order.CancelledAt
	}
	return append(timeline, TimelineEntry{
		Status:    models.OrderStatusCancelled,
		Label:     statusLabels[models.OrderStatusCancelled],
		Note:      order.CancellationReason,
		Timestamp: &cancelledAt,
		Completed: true,
		Current:   true,
	})
}
