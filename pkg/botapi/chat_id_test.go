package botapi

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestChatIDJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want ChatID
	}{
		{name: "number", raw: `-1000987654321`, want: ID(-1000987654321)},
		{name: "numeric string", raw: `"-123456"`, want: ID(-123456)},
		{name: "username", raw: `"@gophers"`, want: Username("gophers")},
		{name: "bare username", raw: `"gophers"`, want: Username("gophers")},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			var got ChatID
			if err := json.Unmarshal([]byte(testCase.raw), &got); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if got != testCase.want {
				t.Fatalf("Unmarshal() = %+v, want %+v", got, testCase.want)
			}
		})
	}

	encoded, err := json.Marshal(Username("@gophers"))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(encoded) != `"@gophers"` {
		t.Fatalf("Marshal() = %s, want \"@gophers\"", encoded)
	}
}

func TestChatIDValidate(t *testing.T) {
	t.Parallel()

	if err := (ChatID{}).Validate(); !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("Validate() error = %v, want ErrInvalidParams", err)
	}
	if err := (ChatID{ID: 1, Username: "x"}).Validate(); !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("Validate() error = %v, want ErrInvalidParams", err)
	}
	if err := ID(7).Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if got := ID(-42).String(); got != "-42" {
		t.Fatalf("String() = %q, want -42", got)
	}
}
