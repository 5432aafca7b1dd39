package household

import (
	"time"

	"github.com/google/uuid"
)

// Domain Events - Events that occur within the household domain

// ProfileCreatedEvent is raised when a household profile is created
type ProfileCreatedEvent struct {
	ProfileID   uuid.UUID
	WorkspaceID uuid.UUID
	MemberCount int
	CreatedAt   time.Time
}

func (e ProfileCreatedEvent) EventName() string {
	return "household.profile.created"
}

func (e ProfileCreatedEvent) OccurredAt() time.Time {
	return e.CreatedAt
}

// MemberAddedEvent is raised when a member joins the household
type MemberAddedEvent struct {
	ProfileID uuid.UUID
	Name      string
	AddedAt   time.Time
}

func (e MemberAddedEvent) EventName() string {
	return "household.member.added"
}

func (e MemberAddedEvent) OccurredAt() time.Time {
	return e.AddedAt
}
