package models

// Player is the long-lived profile of a participant across matches
type Player struct {
	// ID is the external user id of the player
	ID string

	// Name is the display name of the player
	Name string

	// Level gates role unlocks
	Level int

	// Experience is progress towards the next level
	Experience int

	// GamesPlayed counts finished matches
	GamesPlayed int

	// GamesWon counts matches won
	GamesWon int

	// GamesLost counts matches lost
	GamesLost int

	// CurrentMatchID is the match the player is in, if any
	CurrentMatchID string
}

// StatsDelta is what one finished match adds to a player's profile
type StatsDelta struct {
	// ParticipantID is the player the delta applies to
	ParticipantID string

	// Faction is the faction the participant played
	Faction Faction

	// Won indicates the participant's faction won
	Won bool

	// Experience is the XP awarded
	Experience int
}
