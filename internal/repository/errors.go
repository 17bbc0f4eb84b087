// Package repository implements raw-SQL data access against MySQL. The
// sentinel errors below are shared across repositories so that handlers
// can map failure scenarios onto HTTP responses. Business-rule negatives
// (date conflicts, wrong state, wrong owner) are deliberately NOT errors:
// the guarded writes report them as zero affected rows and the methods
// return false, so only genuine store faults travel the error path.
package repository

import "errors"

// ErrUnlinkedUser is returned when a customer account has no client
// profile attached. The account is misconfigured and booking on its
// behalf is impossible until an admin links a profile.
var ErrUnlinkedUser = errors.New("user has no linked client profile")
