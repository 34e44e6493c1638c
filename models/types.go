package models

import "time"

// NoSuggestions is returned by a round clear when there was nothing to pick from.
const NoSuggestions = "No suggestions"

// SuggestionWindow is how long a creator has to wait between suggestions.
const SuggestionWindow = 24 * time.Hour

// Command names understood by the bot
const (
	CommandStart   = "start"
	CommandHelp    = "help"
	CommandList    = "list"
	CommandAdd     = "add"
	CommandResults = "results"
	CommandClear   = "clear"
	CommandRemove  = "remove"
)

// Domain types

type Suggestion struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	CreatorID int64     `json:"creator_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (s Suggestion) String() string {
	return s.Text
}

// Vote is the single live choice of a user
type Vote struct {
	UserID       int64     `json:"user_id"`
	SuggestionID int64     `json:"suggestion_id"`
	CastAt       time.Time `json:"cast_at"`
}

// Round binds an open poll to the suggestions it was built from.
// SuggestionIDs[i] is the suggestion behind poll option i.
type Round struct {
	PollID        string    `json:"poll_id"`
	ChatID        int64     `json:"chat_id"`
	MessageID     int       `json:"message_id"`
	SuggestionIDs []int64   `json:"suggestion_ids"`
	Answers       int       `json:"answers"`
	OpenedAt      time.Time `json:"opened_at"`
}

type TallyEntry struct {
	Text  string `json:"text"`
	Count int    `json:"count"`
}

// Tally is ordered by the first listing position of each text
type Tally []TallyEntry

// Counts returns the tally as text -> count
func (t Tally) Counts() map[string]int {
	counts := make(map[string]int, len(t))
	for _, e := range t {
		counts[e.Text] = e.Count
	}
	return counts
}

// Total is the number of votes counted
func (t Tally) Total() int {
	total := 0
	for _, e := range t {
		total += e.Count
	}
	return total
}

// Inbound events

// Command is a slash command sent by a chat member
type Command struct {
	Name      string
	Args      string
	ChatID    int64
	MessageID int
	UserID    int64
	Username  string
	FullName  string
}

// PollAnswer is a member answering (or retracting) a poll
type PollAnswer struct {
	PollID    string
	UserID    int64
	Username  string
	OptionIDs []int
}

// Event carries exactly one of Command or PollAnswer
type Event struct {
	ID         string
	Command    *Command
	PollAnswer *PollAnswer
}

// Outbound messages

type OutgoingText struct {
	ChatID   int64
	Text     string
	ReplyTo  int
	Markdown bool
	Keyboard bool
}

type OutgoingPoll struct {
	ChatID   int64
	Question string
	Options  []string
	CloseAt  time.Time
}

// SentPoll identifies a poll after the gateway delivered it
type SentPoll struct {
	PollID    string
	MessageID int
}

// HTTP types

type HealthResponse struct {
	Status      string `json:"status"`
	Suggestions int    `json:"suggestions"`
	Votes       int    `json:"votes"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
