package audio

import (
	"fmt"
	"strings"
)

// Policy decides whether playback may start without prior user input.
type Policy string

const (
	// PolicyGesture rejects Play until the user has interacted at least once.
	PolicyGesture Policy = "gesture"
	// PolicyAllow lets playback start unsolicited.
	PolicyAllow Policy = "allow"
)

// ParsePolicy maps a config value to a Policy. Empty means PolicyGesture.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyGesture:
		return PolicyGesture, nil
	case PolicyAllow:
		return PolicyAllow, nil
	}
	return "", fmt.Errorf("unknown autoplay policy %q", s)
}

// Activation reports sticky user activation.
type Activation interface {
	Activated() bool
}
