package dapnet

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

// MaxTextLength is the longest call or news text DAPNET accepts.
const MaxTextLength = 80

// DefaultNewsNumber is the Skyper slot used when none is given.
const DefaultNewsNumber = 1

func validateText(text string) error {
	if text == "" {
		return ErrTextRequired
	}
	if n := utf8.RuneCountInString(text); n > MaxTextLength {
		return fmt.Errorf("%w: got %d", ErrTextTooLong, n)
	}
	return nil
}

// OutgoingCall is a validated page ready to be submitted with Client.NewCall.
// Obtain one with NewOutgoingCall.
type OutgoingCall struct {
	text              string
	recipients        []string
	transmitterGroups []string
	emergency         bool
}

// CallOption customises an OutgoingCall.
type CallOption func(*OutgoingCall)

// WithEmergency sets the high priority flag.
func WithEmergency(emergency bool) CallOption {
	return func(c *OutgoingCall) { c.emergency = emergency }
}

// NewOutgoingCall validates text and returns a call to the given call signs
// over the given transmitter groups.
//
// Text must be non-empty and at most MaxTextLength characters. Recipients and
// groups are passed through as-is; the API rejects empty lists itself.
func NewOutgoingCall(text string, recipients, transmitterGroups []string, opts ...CallOption) (OutgoingCall, error) {
	if err := validateText(text); err != nil {
		return OutgoingCall{}, err
	}

	c := OutgoingCall{
		text:              text,
		recipients:        append([]string(nil), recipients...),
		transmitterGroups: append([]string(nil), transmitterGroups...),
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c, nil
}

func (c OutgoingCall) Text() string                { return c.text }
func (c OutgoingCall) Recipients() []string        { return append([]string(nil), c.recipients...) }
func (c OutgoingCall) TransmitterGroups() []string { return append([]string(nil), c.transmitterGroups...) }
func (c OutgoingCall) Emergency() bool             { return c.emergency }

type outgoingCallJSON struct {
	Text              string   `json:"text"`
	Recipients        []string `json:"callSignNames"`
	TransmitterGroups []string `json:"transmitterGroupNames"`
	Emergency         bool     `json:"emergency"`
}

// MarshalJSON encodes the call in the shape POST /calls expects.
func (c OutgoingCall) MarshalJSON() ([]byte, error) {
	return json.Marshal(outgoingCallJSON{
		Text:              c.text,
		Recipients:        nonNil(c.recipients),
		TransmitterGroups: nonNil(c.transmitterGroups),
		Emergency:         c.emergency,
	})
}

// OutgoingNews is a validated news item ready to be submitted with
// Client.NewNews. Obtain one with NewOutgoingNews.
type OutgoingNews struct {
	rubric string
	text   string
	number int
}

// NewsOption customises an OutgoingNews.
type NewsOption func(*OutgoingNews)

// WithNumber sets the news slot. Skyper pagers expect 1-10; the value is not
// checked locally.
func WithNumber(n int) NewsOption {
	return func(o *OutgoingNews) { o.number = n }
}

// NewOutgoingNews validates text and returns a news item for the given rubric.
func NewOutgoingNews(rubric, text string, opts ...NewsOption) (OutgoingNews, error) {
	if err := validateText(text); err != nil {
		return OutgoingNews{}, err
	}

	n := OutgoingNews{rubric: rubric, text: text, number: DefaultNewsNumber}
	for _, opt := range opts {
		opt(&n)
	}
	return n, nil
}

func (n OutgoingNews) Rubric() string { return n.rubric }
func (n OutgoingNews) Text() string   { return n.text }
func (n OutgoingNews) Number() int    { return n.number }

type outgoingNewsJSON struct {
	Rubric string `json:"rubricName"`
	Text   string `json:"text"`
	Number int    `json:"number"`
}

// MarshalJSON encodes the item in the shape POST /news expects.
func (n OutgoingNews) MarshalJSON() ([]byte, error) {
	return json.Marshal(outgoingNewsJSON{Rubric: n.rubric, Text: n.text, Number: n.number})
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
