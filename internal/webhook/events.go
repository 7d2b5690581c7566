// Package webhook verifies and decodes signed account-lifecycle events
// pushed by the identity provider.
package webhook

import "encoding/json"

// Event is the closed set of decoded webhook events. The concrete types are
// UserCreatedEvent, UserDeletedEvent, and UnknownEvent; callers switch
// exhaustively over them.
type Event interface {
	EventType() string
}

// UserCreatedEvent signals a new account at the identity provider.
type UserCreatedEvent struct {
	ID       string
	Username string
	Email    string
	Avatar   string
}

func (UserCreatedEvent) EventType() string { return TypeUserCreated }

// UserDeletedEvent signals an account deletion at the identity provider.
type UserDeletedEvent struct {
	ID string
}

func (UserDeletedEvent) EventType() string { return TypeUserDeleted }

// UnknownEvent is any verified event whose type is not handled. It is
// acknowledged but never applied.
type UnknownEvent struct {
	Type string
	Data json.RawMessage
}

func (e UnknownEvent) EventType() string { return e.Type }

const (
	TypeUserCreated = "user.created"
	TypeUserDeleted = "user.deleted"
)

type envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type userCreatedData struct {
	ID             string         `json:"id"`
	Username       *string        `json:"username"`
	EmailAddresses []emailAddress `json:"email_addresses"`
	ProfileImgURL  string         `json:"profile_img_url"`
}

type emailAddress struct {
	ID           string `json:"id"`
	EmailAddress string `json:"email_address"`
}

type userDeletedData struct {
	ID string `json:"id"`
}

// decodeEvent classifies a verified payload into an Event. Payloads whose
// type is known but whose shape does not match are rejected rather than
// passed through.
func decodeEvent(payload []byte) (Event, error) {
	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, &VerificationError{Reason: "malformed payload", Err: err}
	}

	switch env.Type {
	case TypeUserCreated:
		var data userCreatedData
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return nil, &VerificationError{Reason: "malformed user.created data", Err: err}
		}
		if data.ID == "" || len(data.EmailAddresses) == 0 {
			return nil, &VerificationError{Reason: "user.created event missing id or email"}
		}
		email := data.EmailAddresses[0].EmailAddress
		// Username falls back to the first registered email.
		username := email
		if data.Username != nil && *data.Username != "" {
			username = *data.Username
		}
		return UserCreatedEvent{
			ID:       data.ID,
			Username: username,
			Email:    email,
			Avatar:   data.ProfileImgURL,
		}, nil
	case TypeUserDeleted:
		var data userDeletedData
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return nil, &VerificationError{Reason: "malformed user.deleted data", Err: err}
		}
		if data.ID == "" {
			return nil, &VerificationError{Reason: "user.deleted event missing id"}
		}
		return UserDeletedEvent{ID: data.ID}, nil
	default:
		return UnknownEvent{Type: env.Type, Data: env.Data}, nil
	}
}
