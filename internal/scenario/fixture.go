package scenario

import (
	"errors"
	"strings"
)

// Fixture holds the phones and free-text values the scenario sends.
type Fixture struct {
	RootPhone    string
	Level1Phones []string
	Level2Phones []string
	Level3Phones []string
	// LateLevel1Phone and LateLevel2Phone join after the first RSVP round.
	LateLevel1Phone string
	LateLevel2Phone string
	// ReturningPhone is a level 1 member created implicitly by group.add.
	ReturningPhone string

	Level2Name string
	Level3Name string
	EventName  string
	Locations  [2]string
	Times      [3]string
	// OddAnswer is an RSVP reply that is neither yes nor no.
	OddAnswer string
}

// DefaultFixture mirrors the hand-run walkthrough the server team uses.
func DefaultFixture() Fixture {
	return Fixture{
		RootPhone:       "0826607134",
		Level1Phones:    []string{"0821111111", "0821111112"},
		Level2Phones:    []string{"0822222221", "0822222222"},
		Level3Phones:    []string{"0823333331", "0823333332"},
		LateLevel1Phone: "0821111113",
		LateLevel2Phone: "0822222223",
		ReturningPhone:  "0821111111",
		Level2Name:      "level 2",
		Level3Name:      "level 3",
		EventName:       "sub groups and all",
		Locations:       [2]string{"ellispark", "loftus"},
		Times:           [3]string{"30th 11pm", "30th 10pm", "30th 9pm"},
		OddAnswer:       "not sure",
	}
}

func (f Fixture) validate() error {
	var errs []error
	required := map[string]string{
		"root phone":         f.RootPhone,
		"late level 1 phone": f.LateLevel1Phone,
		"late level 2 phone": f.LateLevel2Phone,
		"returning phone":    f.ReturningPhone,
		"level 2 name":       f.Level2Name,
		"level 3 name":       f.Level3Name,
		"event name":         f.EventName,
		"odd answer":         f.OddAnswer,
	}
	for name, val := range required {
		if strings.TrimSpace(val) == "" {
			errs = append(errs, errors.New(name+" is required"))
		}
	}
	if len(f.Level1Phones) == 0 {
		errs = append(errs, errors.New("at least one level 1 phone is required"))
	}
	if len(f.Level2Phones) < 2 {
		errs = append(errs, errors.New("two level 2 phones are required"))
	}
	if len(f.Level3Phones) < 2 {
		errs = append(errs, errors.New("two level 3 phones are required"))
	}
	return errors.Join(errs...)
}
