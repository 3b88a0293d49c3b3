package classroom

import "errors"

var (
	ErrClassroomNotFound = errors.New("classroom not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrNotTeacher        = errors.New("only teachers can manage classrooms")
	ErrNotOwner          = errors.New("classroom belongs to another teacher")
)
