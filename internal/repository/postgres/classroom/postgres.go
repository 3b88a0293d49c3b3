package classroom

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	classroomdomain "investimon-go/internal/domain/classroom"
	userdomain "investimon-go/internal/domain/user"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(classroomdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) CreateClassroom(ctx context.Context, classroom *classroomdomain.Classroom) error {
	return r.db.WithContext(ctx).Create(classroom).Error
}

func (r *PostgresRepository) GetClassroom(ctx context.Context, id string) (*classroomdomain.Classroom, error) {
	var classroom classroomdomain.Classroom
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&classroom).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, classroomdomain.ErrClassroomNotFound
		}
		return nil, err
	}
	return &classroom, nil
}

func (r *PostgresRepository) ListActiveByTeacher(ctx context.Context, teacherID string) ([]classroomdomain.Classroom, error) {
	var classrooms []classroomdomain.Classroom
	err := r.db.WithContext(ctx).
		Where("teacher_id = ? AND is_active = ?", teacherID, true).
		Order("created_at asc").
		Find(&classrooms).Error
	if err != nil {
		return nil, err
	}
	return classrooms, nil
}

func (r *PostgresRepository) Deactivate(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Model(&classroomdomain.Classroom{}).
		Where("id = ?", id).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return classroomdomain.ErrClassroomNotFound
	}
	return nil
}

func (r *PostgresRepository) AddStudent(ctx context.Context, classroomID, studentID string) error {
	member := classroomdomain.Membership{ClassroomID: classroomID, StudentID: studentID}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&member).Error
}

func (r *PostgresRepository) ListStudentIDs(ctx context.Context, classroomID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&classroomdomain.Membership{}).
		Where("classroom_id = ?", classroomID).
		Order("added_at asc").
		Pluck("student_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *PostgresRepository) ListClassroomIDsByStudent(ctx context.Context, studentID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&classroomdomain.Membership{}).
		Where("student_id = ?", studentID).
		Order("added_at asc").
		Pluck("classroom_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *PostgresRepository) GetUser(ctx context.Context, id string) (*userdomain.User, error) {
	var user userdomain.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, classroomdomain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *PostgresRepository) UsersByIDs(ctx context.Context, ids []string) ([]userdomain.User, error) {
	var users []userdomain.User
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *PostgresRepository) SetTeacher(ctx context.Context, studentID, teacherID string) error {
	return r.db.WithContext(ctx).Model(&userdomain.User{}).Where("id = ?", studentID).Update("teacher_id", teacherID).Error
}
