package domain

import (
	"errors"
	"testing"
)

func TestGreetingActionRoundtrip(t *testing.T) {
	data := GreetingAction{FriendID: 42}.Encode()
	if data != "generate_birthday_42" {
		t.Fatalf("unexpected wire form: %s", data)
	}
	a, err := ParseGreetingAction(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if a.FriendID != 42 {
		t.Fatalf("want 42, got %d", a.FriendID)
	}
}

func TestParseGreetingAction_Malformed(t *testing.T) {
	cases := []string{
		"",
		"generate_birthday_",
		"generate_birthday_abc",
		"generate_birthday_-1",
		"generate_birthday_0",
		"delete_birthday_5",
		"42",
	}
	for _, in := range cases {
		if _, err := ParseGreetingAction(in); !errors.Is(err, ErrMalformedPayload) {
			t.Errorf("ParseGreetingAction(%q): want ErrMalformedPayload, got %v", in, err)
		}
	}
}
