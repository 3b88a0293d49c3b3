package classroom

import "time"

type Classroom struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Grade     *string   `json:"grade,omitempty"`
	Subject   *string   `json:"subject,omitempty"`
	TeacherID string    `gorm:"not null;index" json:"teacherId"`
	IsActive  bool      `gorm:"not null" json:"isActive"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// Membership is the single physical record behind both directions of the
// classroom↔student relationship: the classroom's students set and the
// student's classrooms set are projections of the same rows.
type Membership struct {
	ClassroomID string    `gorm:"primaryKey"`
	StudentID   string    `gorm:"primaryKey;index"`
	AddedAt     time.Time `gorm:"autoCreateTime"`
}

func (Membership) TableName() string {
	return "classroom_students"
}

type StudentInput struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Age   *int   `json:"age,omitempty"`
}

// BulkResult is one per-input outcome of a bulk provisioning run, in
// input order. Either the provisioned credentials or the error is set.
type BulkResult struct {
	Success      bool   `json:"success"`
	Name         string `json:"name"`
	StudentID    string `json:"studentId,omitempty"`
	Email        string `json:"email,omitempty"`
	TempPassword string `json:"tempPassword,omitempty"`
	Error        string `json:"error,omitempty"`
}
