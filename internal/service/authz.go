package service

import "errors"

// ErrForbidden is returned when the resource exists but the caller is not
// allowed to touch it. Existence is always checked first: a missing resource
// is a not-found error, never a permission one, and vice versa.
var ErrForbidden = errors.New("not enough permissions")

// Owned is any resource with exactly one owner, set at creation and never
// reassigned through the API.
type Owned interface {
	Owner() int64
}

// Public is optionally implemented by resources that allow anyone to read
// them regardless of ownership (example projects).
type Public interface {
	IsPublic() bool
}

// authorizeOwner allows the operation iff the user owns the resource.
func authorizeOwner(res Owned, userID int64) error {
	if res.Owner() != userID {
		return ErrForbidden
	}
	return nil
}

// authorizeReadable allows a read iff the user owns the resource or the
// resource is publicly readable.
func authorizeReadable(res Owned, userID int64) error {
	if pub, ok := res.(Public); ok && pub.IsPublic() {
		return nil
	}
	return authorizeOwner(res, userID)
}
