package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Wire form of the "generate greeting" button payload: generate_birthday_<id>.
const greetingPayloadPrefix = "generate_birthday_"

var ErrMalformedPayload = errors.New("malformed callback payload")

// GreetingAction is the typed payload carried by a birthday notification button.
type GreetingAction struct {
	FriendID int64
}

// Encode renders the callback data string for the action.
func (a GreetingAction) Encode() string {
	return greetingPayloadPrefix + strconv.FormatInt(a.FriendID, 10)
}

// ParseGreetingAction validates callback data and extracts the record id.
// Any shape mismatch yields ErrMalformedPayload.
func ParseGreetingAction(data string) (GreetingAction, error) {
	raw, ok := strings.CutPrefix(data, greetingPayloadPrefix)
	if !ok || raw == "" {
		return GreetingAction{}, fmt.Errorf("%w: %q", ErrMalformedPayload, data)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return GreetingAction{}, fmt.Errorf("%w: %q", ErrMalformedPayload, data)
	}
	return GreetingAction{FriendID: id}, nil
}
