package employee

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrEmailExists        = errors.New("employee email already exists")
	ErrUserAlreadyLinked  = errors.New("user already has an employee profile")
	ErrLinkedUserNotFound = errors.New("linked user not found")
	ErrNotOwner           = errors.New("you can only update your own employee record")
)
