// Package domain contains the core entities: references, favorites, tags and users.
package domain

import "errors"

// ErrInvalidReference is wrapped by Reference.Validate failures.
var ErrInvalidReference = errors.New("invalid reference")
