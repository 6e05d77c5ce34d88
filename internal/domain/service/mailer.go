package service

import "context"

// Mailer sends transactional mail. Delivery failures surface as errors; the
// caller decides whether they abort the surrounding operation.
type Mailer interface {
	// SendPasswordReset mails the reset link to the account's address.
	SendPasswordReset(ctx context.Context, to, displayName, resetURL string) error
}
