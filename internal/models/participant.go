package models

// ParticipantKind distinguishes the two split units a room can use.
type ParticipantKind string

const (
	KindUser      ParticipantKind = "user"
	KindHousehold ParticipantKind = "household"
)

// Participant is one split unit of a room: a member user, or a member
// household when the room splits by household.
//
// Every participant owes exactly one equal share regardless of Kind or
// MemberCount.
type Participant struct {
	// ID is the user id or household id.
	ID string

	// DisplayName is the user's name or the household's name.
	DisplayName string

	// Kind tells whether this participant is a user or a household.
	Kind ParticipantKind

	// MemberCount is the number of users behind the participant.
	// Informational only: it does not weight the split.
	MemberCount int
}

// User is a person who can pay for expenses.
type User struct {
	ID          string
	DisplayName string
	Email       string
	CreatedAt   int64
}

// Household groups users who share one split in household-mode rooms.
type Household struct {
	ID        string
	Name      string
	MemberIDs []string
	CreatedAt int64
}
