// Package household contains the domain model for the family profile a
// meal plan is built for: who eats, what they cannot or will not eat,
// and how the household likes to cook.
package household

import (
	"time"

	"github.com/google/uuid"
	"github.com/mealsmith/planner/internal/domain/shared"
)

// Profile represents a household profile. Member order is significant:
// constraint warnings are reported member by member in declaration
// order.
type Profile struct {
	// Aggregate root identifier
	id          uuid.UUID
	workspaceID uuid.UUID

	// Ordered members, at least one
	members []FamilyMember

	// Cooking preferences
	cookingMethods    []string
	timeCeilings      map[Period]time.Duration
	weeknightPriority string

	// Metadata
	createdAt time.Time
	updatedAt time.Time

	// Domain events to be dispatched
	events []shared.DomainEvent
}

// NewProfile creates a new household profile with validation
func NewProfile(workspaceID uuid.UUID, members []FamilyMember) (*Profile, error) {
	if len(members) == 0 {
		return nil, ErrNoMembers
	}
	if err := validateMembers(members); err != nil {
		return nil, err
	}

	now := time.Now()
	p := &Profile{
		id:          uuid.New(),
		workspaceID: workspaceID,
		members:     members,
		createdAt:   now,
		updatedAt:   now,
		events:      []shared.DomainEvent{},
	}

	p.addEvent(ProfileCreatedEvent{
		ProfileID:   p.id,
		WorkspaceID: workspaceID,
		MemberCount: len(members),
		CreatedAt:   now,
	})

	return p, nil
}

// ReconstructProfile rebuilds a Profile from persisted state without
// raising events
func ReconstructProfile(
	id uuid.UUID,
	workspaceID uuid.UUID,
	members []FamilyMember,
	cookingMethods []string,
	timeCeilings map[Period]time.Duration,
	weeknightPriority string,
	createdAt time.Time,
	updatedAt time.Time,
) (*Profile, error) {
	if len(members) == 0 {
		return nil, ErrNoMembers
	}
	if err := validateMembers(members); err != nil {
		return nil, err
	}

	return &Profile{
		id:                id,
		workspaceID:       workspaceID,
		members:           members,
		cookingMethods:    cookingMethods,
		timeCeilings:      timeCeilings,
		weeknightPriority: weeknightPriority,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
		events:            []shared.DomainEvent{},
	}, nil
}

// ID returns the profile's unique identifier
func (p *Profile) ID() uuid.UUID {
	return p.id
}

// WorkspaceID returns the owning workspace identifier
func (p *Profile) WorkspaceID() uuid.UUID {
	return p.workspaceID
}

// Members returns the family members in declaration order
func (p *Profile) Members() []FamilyMember {
	return p.members
}

// MemberNames returns the member names in declaration order
func (p *Profile) MemberNames() []string {
	names := make([]string, len(p.members))
	for i, m := range p.members {
		names[i] = m.Name
	}
	return names
}

// CookingMethods returns the preferred cooking methods
func (p *Profile) CookingMethods() []string {
	return p.cookingMethods
}

// TimeCeiling returns the cooking-time ceiling for a period, if set
func (p *Profile) TimeCeiling(period Period) (time.Duration, bool) {
	d, ok := p.timeCeilings[period]
	return d, ok
}

// TimeCeilings returns all configured cooking-time ceilings
func (p *Profile) TimeCeilings() map[Period]time.Duration {
	return p.timeCeilings
}

// WeeknightPriority returns the weeknight-priority phrase, empty when
// unset
func (p *Profile) WeeknightPriority() string {
	return p.weeknightPriority
}

// CreatedAt returns when the profile was created
func (p *Profile) CreatedAt() time.Time {
	return p.createdAt
}

// UpdatedAt returns when the profile was last updated
func (p *Profile) UpdatedAt() time.Time {
	return p.updatedAt
}

// AddMember appends a member, enforcing unique names within the
// household
func (p *Profile) AddMember(member FamilyMember) error {
	if err := member.Validate(); err != nil {
		return err
	}
	for _, existing := range p.members {
		if existing.Name == member.Name {
			return ErrDuplicateMemberName
		}
	}

	p.members = append(p.members, member)
	p.updatedAt = time.Now()

	p.addEvent(MemberAddedEvent{
		ProfileID: p.id,
		Name:      member.Name,
		AddedAt:   p.updatedAt,
	})

	return nil
}

// SetCookingMethods replaces the preferred cooking methods
func (p *Profile) SetCookingMethods(methods []string) {
	p.cookingMethods = methods
	p.updatedAt = time.Now()
}

// SetTimeCeiling records a cooking-time ceiling for a period
func (p *Profile) SetTimeCeiling(period Period, ceiling time.Duration) error {
	if !period.IsValid() {
		return ErrInvalidPeriod
	}
	if ceiling <= 0 {
		return ErrInvalidTimeCeiling
	}

	if p.timeCeilings == nil {
		p.timeCeilings = make(map[Period]time.Duration)
	}
	p.timeCeilings[period] = ceiling
	p.updatedAt = time.Now()

	return nil
}

// SetWeeknightPriority records the weeknight-priority phrase
func (p *Profile) SetWeeknightPriority(phrase string) {
	p.weeknightPriority = phrase
	p.updatedAt = time.Now()
}

// addEvent adds a domain event to be dispatched
func (p *Profile) addEvent(event shared.DomainEvent) {
	p.events = append(p.events, event)
}

// Events returns and clears pending domain events
func (p *Profile) Events() []shared.DomainEvent {
	events := p.events
	p.events = []shared.DomainEvent{}
	return events
}

// validateMembers checks each member and name uniqueness
func validateMembers(members []FamilyMember) error {
	seen := make(map[string]struct{}, len(members))
	for _, m := range members {
		if err := m.Validate(); err != nil {
			return err
		}
		if _, dup := seen[m.Name]; dup {
			return ErrDuplicateMemberName
		}
		seen[m.Name] = struct{}{}
	}
	return nil
}
