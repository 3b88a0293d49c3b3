package classroom

import (
	"context"

	"investimon-go/internal/domain/user"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	CreateClassroom(ctx context.Context, classroom *Classroom) error
	GetClassroom(ctx context.Context, id string) (*Classroom, error)
	ListActiveByTeacher(ctx context.Context, teacherID string) ([]Classroom, error)
	Deactivate(ctx context.Context, id string) error

	AddStudent(ctx context.Context, classroomID, studentID string) error
	ListStudentIDs(ctx context.Context, classroomID string) ([]string, error)
	ListClassroomIDsByStudent(ctx context.Context, studentID string) ([]string, error)

	GetUser(ctx context.Context, id string) (*user.User, error)
	UsersByIDs(ctx context.Context, ids []string) ([]user.User, error)
	SetTeacher(ctx context.Context, studentID, teacherID string) error
}
