package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"ecoride/internal/domain"
)

// NotificationType represents the type of notification.
type NotificationType string

const (
	NotificationRideCreated      NotificationType = "RIDE_CREATED"
	NotificationBookingConfirmed NotificationType = "BOOKING_CONFIRMED"
	NotificationRideSoldOut      NotificationType = "RIDE_SOLD_OUT"
	NotificationRideCompleted    NotificationType = "RIDE_COMPLETED"
	NotificationRideCancelled    NotificationType = "RIDE_CANCELLED"
)

// Notification represents a notification to be sent.
type Notification struct {
	Type        NotificationType
	RecipientID string
	Title       string
	Message     string
	Data        map[string]interface{}
	CreatedAt   time.Time
}

// NotificationService handles notification delivery.
type NotificationService struct {
	// In a real system, this would have:
	// - Push notification client (FCM, APNS)
	// - Email client (SendGrid)
	// - WebSocket connections for real-time
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// NotifyRideCreated confirms a new offer to its driver.
func (s *NotificationService) NotifyRideCreated(ctx context.Context, ride *domain.Ride) error {
	notification := Notification{
		Type:        NotificationRideCreated,
		RecipientID: ride.DriverID,
		Title:       "Ride Published",
		Message:     fmt.Sprintf("Your ride %s to %s is live with %d seats", ride.Origin, ride.Destination, ride.AvailableSeats),
		Data: map[string]interface{}{
			"ride_id":     ride.ID,
			"origin":      ride.Origin,
			"destination": ride.Destination,
			"seats":       ride.AvailableSeats,
		},
		CreatedAt: time.Now(),
	}
	return s.send(ctx, notification)
}

// NotifyBookingConfirmed notifies both passenger and driver about a booking.
func (s *NotificationService) NotifyBookingConfirmed(ctx context.Context, booking *domain.Booking, ride *domain.Ride, passenger *domain.User) error {
	notification := Notification{
		Type:        NotificationBookingConfirmed,
		RecipientID: ride.DriverID,
		Title:       "Seat Booked",
		Message:     fmt.Sprintf("%s booked a seat on your ride to %s (%d left)", passenger.Name, ride.Destination, ride.AvailableSeats),
		Data: map[string]interface{}{
			"booking_id":   booking.ID,
			"ride_id":      ride.ID,
			"passenger_id": passenger.ID,
			"seats_left":   ride.AvailableSeats,
		},
		CreatedAt: time.Now(),
	}
	return s.send(ctx, notification)
}

// NotifyRideSoldOut notifies the driver that the last seat was taken.
func (s *NotificationService) NotifyRideSoldOut(ctx context.Context, ride *domain.Ride) error {
	notification := Notification{
		Type:        NotificationRideSoldOut,
		RecipientID: ride.DriverID,
		Title:       "Ride Full",
		Message:     fmt.Sprintf("All seats on your ride to %s are booked", ride.Destination),
		Data: map[string]interface{}{
			"ride_id": ride.ID,
		},
		CreatedAt: time.Now(),
	}
	return s.send(ctx, notification)
}

// NotifyRideStatusChanged notifies the driver about a lifecycle transition.
func (s *NotificationService) NotifyRideStatusChanged(ctx context.Context, ride *domain.Ride) error {
	typ := NotificationRideCompleted
	title := "Ride Completed"
	if ride.Status == domain.RideStatusCancelled {
		typ = NotificationRideCancelled
		title = "Ride Cancelled"
	}

	notification := Notification{
		Type:        typ,
		RecipientID: ride.DriverID,
		Title:       title,
		Message:     fmt.Sprintf("Your ride %s to %s is now %s", ride.Origin, ride.Destination, ride.Status),
		Data: map[string]interface{}{
			"ride_id": ride.ID,
			"status":  string(ride.Status),
		},
		CreatedAt: time.Now(),
	}
	return s.send(ctx, notification)
}

// send delivers a notification (mock implementation).
func (s *NotificationService) send(ctx context.Context, notification Notification) error {
	// In a real implementation, this would store the notification and push
	// it over FCM/APNS, email, or a WebSocket.
	log.Printf("[NOTIFICATION] Type=%s, Recipient=%s, Title=%s, Message=%s",
		notification.Type, notification.RecipientID, notification.Title, notification.Message)

	return nil
}
