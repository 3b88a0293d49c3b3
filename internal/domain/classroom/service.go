package classroom

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"investimon-go/internal/auth"
	"investimon-go/internal/domain/user"
)

const (
	studentEmailDomain = "classroom.investamon.com"
	tempPasswordSuffix = "123!"
	tempCodeLength     = 8
)

// Registrar is the identity-registration contract used for bulk student
// provisioning.
type Registrar interface {
	Register(ctx context.Context, input user.RegisterInput) (*user.User, error)
}

type Service struct {
	repo     Repository
	accounts Registrar
}

func NewService(repo Repository, accounts Registrar) *Service {
	return &Service{repo: repo, accounts: accounts}
}

type CreateInput struct {
	Name    string
	Grade   *string
	Subject *string
}

func (s *Service) CreateClassroom(ctx context.Context, teacherID string, input CreateInput) (*Classroom, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, fmt.Errorf("name is required")
	}

	teacher, err := s.requireTeacher(ctx, teacherID)
	if err != nil {
		return nil, err
	}

	room := Classroom{
		ID:        uuid.NewString(),
		Name:      input.Name,
		Grade:     input.Grade,
		Subject:   input.Subject,
		TeacherID: teacher.ID,
		IsActive:  true,
	}
	if err := s.repo.CreateClassroom(ctx, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

// AddStudent enrolls a student. The membership row serves both sides of
// the relationship, so enrollment cannot leave a one-sided reference.
func (s *Service) AddStudent(ctx context.Context, classroomID, studentID string) error {
	if _, err := s.repo.GetClassroom(ctx, classroomID); err != nil {
		return err
	}
	if _, err := s.repo.GetUser(ctx, studentID); err != nil {
		return err
	}
	return s.repo.AddStudent(ctx, classroomID, studentID)
}

// BulkCreateStudents provisions one account per input record. A failure
// for one record is captured in its result and never aborts the rest;
// results come back in input order.
func (s *Service) BulkCreateStudents(ctx context.Context, teacherID, classroomID string, items []StudentInput) ([]BulkResult, error) {
	teacher, err := s.requireTeacher(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	room, err := s.repo.GetClassroom(ctx, classroomID)
	if err != nil {
		return nil, err
	}
	if room.TeacherID != teacher.ID {
		return nil, ErrNotOwner
	}

	results := make([]BulkResult, 0, len(items))
	for _, item := range items {
		results = append(results, s.provisionStudent(ctx, teacher.ID, room.ID, item))
	}
	return results, nil
}

func (s *Service) provisionStudent(ctx context.Context, teacherID, classroomID string, item StudentInput) BulkResult {
	name := strings.TrimSpace(item.Name)
	if name == "" {
		return BulkResult{Name: item.Name, Error: "name is required"}
	}

	email := strings.TrimSpace(item.Email)
	if email == "" {
		email = deriveStudentEmail(name)
	}

	code, err := auth.RandomCode(tempCodeLength)
	if err != nil {
		return BulkResult{Name: name, Error: err.Error()}
	}
	tempPassword := code + tempPasswordSuffix

	account, err := s.accounts.Register(ctx, user.RegisterInput{
		Email:    email,
		Password: tempPassword,
		Name:     name,
		Role:     user.RoleStudent,
		Age:      item.Age,
	})
	if err != nil {
		return BulkResult{Name: name, Error: err.Error()}
	}

	err = s.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.AddStudent(ctx, classroomID, account.ID); err != nil {
			return err
		}
		return tx.SetTeacher(ctx, account.ID, teacherID)
	})
	if err != nil {
		return BulkResult{Name: name, Error: err.Error()}
	}

	return BulkResult{
		Success:      true,
		Name:         name,
		StudentID:    account.ID,
		Email:        account.Email,
		TempPassword: tempPassword,
	}
}

// ClassroomStudents resolves the member ids to full accounts, silently
// dropping ids that no longer resolve.
func (s *Service) ClassroomStudents(ctx context.Context, classroomID string) ([]user.User, error) {
	if _, err := s.repo.GetClassroom(ctx, classroomID); err != nil {
		return nil, err
	}

	ids, err := s.repo.ListStudentIDs(ctx, classroomID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []user.User{}, nil
	}
	return s.repo.UsersByIDs(ctx, ids)
}

// TeacherClassrooms lists a teacher's classrooms, excluding deactivated
// ones.
func (s *Service) TeacherClassrooms(ctx context.Context, teacherID string) ([]Classroom, error) {
	return s.repo.ListActiveByTeacher(ctx, teacherID)
}

// DeactivateClassroom soft-deletes a classroom: it disappears from
// listings but the record and its memberships remain.
func (s *Service) DeactivateClassroom(ctx context.Context, teacherID, classroomID string) error {
	room, err := s.repo.GetClassroom(ctx, classroomID)
	if err != nil {
		return err
	}
	if room.TeacherID != teacherID {
		return ErrNotOwner
	}
	return s.repo.Deactivate(ctx, classroomID)
}

// StudentClassrooms lists the classrooms a student belongs to.
func (s *Service) StudentClassrooms(ctx context.Context, studentID string) ([]Classroom, error) {
	ids, err := s.repo.ListClassroomIDsByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	rooms := make([]Classroom, 0, len(ids))
	for _, id := range ids {
		room, err := s.repo.GetClassroom(ctx, id)
		if err != nil {
			continue
		}
		if room.IsActive {
			rooms = append(rooms, *room)
		}
	}
	return rooms, nil
}

func (s *Service) requireTeacher(ctx context.Context, teacherID string) (*user.User, error) {
	teacher, err := s.repo.GetUser(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	if teacher.Role != user.RoleTeacher {
		return nil, ErrNotTeacher
	}
	return teacher, nil
}

func deriveStudentEmail(name string) string {
	local := strings.Join(strings.Fields(strings.ToLower(name)), ".")
	return local + "@" + studentEmailDomain
}
