package microboard

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jimiolaniyan/microboard/auth"
	"github.com/jimiolaniyan/microboard/internal/fault"
)

// MaxTextLength is the longest message text accepted, in characters.
const MaxTextLength = 255

var (
	ErrBlankText       = fmt.Errorf("%w: message text cannot be blank", fault.InvalidInput)
	ErrTextTooLong     = fmt.Errorf("%w: message text must be at most %d characters", fault.InvalidInput, MaxTextLength)
	ErrInvalidAuthor   = fmt.Errorf("%w: invalid user (posted_by) specified in the message", fault.InvalidInput)
	ErrAccountNotFound = fmt.Errorf("%w: user not found", fault.NotFound)
	ErrMessageNotFound = fmt.Errorf("%w: message not found", fault.NotFound)
)

// Repository persists messages. FindByID returns ErrMessageNotFound when
// nothing matches; Store assigns the ID; Update replaces the stored message
// with the same ID.
type Repository interface {
	FindByID(ctx context.Context, id MessageID) (*Message, error)
	FindAll(ctx context.Context) ([]Message, error)
	FindByAuthor(ctx context.Context, author auth.ID) ([]Message, error)
	Store(ctx context.Context, m *Message) error
	Update(ctx context.Context, m *Message) error
	Delete(ctx context.Context, id MessageID) (bool, error)
}

type MessageID int

type Message struct {
	ID       MessageID `json:"messageId"`
	PostedBy auth.ID   `json:"postedBy"`
	Text     string    `json:"messageText"`
	// TimePosted is carried through unchecked, in epoch seconds.
	TimePosted int64 `json:"timePostedEpoch"`
}

// Outcome is the result of an update or delete that does not fail on
// invalid input or missing messages.
type Outcome int

const (
	NotApplied Outcome = 0
	Applied    Outcome = 1
)

// NewMessage validates text and returns an unsaved message. The author is
// checked by the service.
func NewMessage(postedBy auth.ID, text string, timePosted int64) (*Message, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrBlankText
	}

	if utf8.RuneCountInString(text) > MaxTextLength {
		return nil, ErrTextTooLong
	}

	return &Message{PostedBy: postedBy, Text: text, TimePosted: timePosted}, nil
}

func validText(text string) bool {
	return strings.TrimSpace(text) != "" && utf8.RuneCountInString(text) <= MaxTextLength
}
