package task

import "errors"

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrNotTaskOwner     = errors.New("you can only manage tasks assigned to you")
)
