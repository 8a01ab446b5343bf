package domain

import "time"

// GuestIdentifier is the reserved sentinel meaning "no server-tracked
// identity": actions by a guest are rewarded in local memory only and never
// confirmed against the database.
const GuestIdentifier = "Guest"

// UserRecord is the authoritative per-identifier state: lifetime points,
// today's per-action counters, and the per-action daily ceilings.
type UserRecord struct {
	Identifier   string
	Points       int
	DailyCounts  map[ActionKind]int
	DailyLimits  map[ActionKind]int
	LastResetDay string
	WelcomeSeen  bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUserRecord returns the zero-state record for an identifier the store
// has never seen.
func NewUserRecord(identifier string) *UserRecord {
	return &UserRecord{
		Identifier:  identifier,
		DailyCounts: map[ActionKind]int{},
		DailyLimits: map[ActionKind]int{},
	}
}

// IsGuest reports whether the record belongs to the guest sentinel.
func (u *UserRecord) IsGuest() bool {
	return u.Identifier == GuestIdentifier
}

// LimitFor returns the daily ceiling for the kind. A server-supplied limit is
// authoritative when present; the built-in default is a fallback only.
func (u *UserRecord) LimitFor(kind ActionKind) int {
	if u != nil && u.DailyLimits != nil {
		if limit, ok := u.DailyLimits[kind]; ok && limit > 0 {
			return limit
		}
	}
	return kind.DefaultDailyLimit()
}

type badgeThreshold struct {
	points int
	name   string
}

var badgeThresholds = []badgeThreshold{
	{10, "First Steps"},
	{50, "Eco Explorer"},
	{150, "Green Champion"},
	{300, "Air Guardian"},
}

// BadgesForPoints derives the badge set for a points total. Badges are never
// stored; they are recomputed on every read.
func BadgesForPoints(points int) []string {
	badges := []string{}
	for _, t := range badgeThresholds {
		if points >= t.points {
			badges = append(badges, t.name)
		}
	}
	return badges
}

// Badges returns the derived badge set for the record.
func (u *UserRecord) Badges() []string {
	if u == nil {
		return []string{}
	}
	return BadgesForPoints(u.Points)
}
