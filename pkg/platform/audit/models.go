// Package audit captures key domain actions as events. Emission is
// best-effort: an audit failure must never fail the request that caused it.
package audit

import (
	"context"
	"time"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp time.Time
	// Subject identifies who or what the event is about: an admin email for
	// auth events, a robot or waste record ID for fleet events.
	Subject string
	Action  string
	// ActorID tracks the authenticated admin performing the action when
	// different from the subject (e.g. an admin activating a robot).
	ActorID string
	// RequestID carries the correlation ID from the HTTP request context.
	RequestID string
}

type AuditEvent string

const (
	// Auth events
	EventAdminRegistered     AuditEvent = "admin_registered"
	EventLoginSucceeded      AuditEvent = "login_succeeded"
	EventLoginFailed         AuditEvent = "login_failed"
	EventAdminProfileUpdated AuditEvent = "admin_profile_updated"

	// Robot events
	EventRobotCreated     AuditEvent = "robot_created"
	EventRobotActivated   AuditEvent = "robot_activated"
	EventRobotDeactivated AuditEvent = "robot_deactivated"
	EventRobotDeleted     AuditEvent = "robot_deleted"

	// Waste events
	EventWasteDetected  AuditEvent = "waste_detected"
	EventWasteCollected AuditEvent = "waste_collected"
	EventWasteDeleted   AuditEvent = "waste_deleted"
)

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListBySubject(ctx context.Context, subject string) ([]Event, error)
}
