package auth

// State is a stage of the login state machine.
type State int

const (
	// StateAwaitingPrimaryAuth is the start state: nothing submitted yet
	StateAwaitingPrimaryAuth State = iota
	// StateAwaitingSecondFactor means the provider asked for a verification code
	StateAwaitingSecondFactor
	// StateAuthenticated is the terminal state
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAwaitingPrimaryAuth:
		return "AwaitingPrimaryAuth"
	case StateAwaitingSecondFactor:
		return "AwaitingSecondFactor"
	case StateAuthenticated:
		return "Authenticated"
	default:
		return "Unknown"
	}
}

// Classifier decides the next state from the URL reached after submitting credentials.
type Classifier func(currentURL string) State

// ExactURLClassifier routes to the second-factor branch only when the URL is
// exactly verificationURL. Anything else, including CAPTCHA pages and failed
// logins, is treated as authenticated.
func ExactURLClassifier(verificationURL string) Classifier {
	return func(currentURL string) State {
		if currentURL == verificationURL {
			return StateAwaitingSecondFactor
		}
		return StateAuthenticated
	}
}
