package interfaces

import "context"

// Mail is one outgoing message with an HTML body and a plain text fallback.
type Mail struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

type Sender interface {
	Send(ctx context.Context, mail Mail) error
}
