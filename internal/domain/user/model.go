package user

import "time"

const (
	RoleParent  = "parent"
	RoleChild   = "child"
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

type User struct {
	ID               string    `gorm:"type:uuid;primaryKey" json:"id"`
	Email            string    `gorm:"not null;uniqueIndex" json:"email"`
	PasswordHash     string    `gorm:"not null" json:"-"`
	Name             string    `gorm:"not null" json:"name"`
	Role             string    `gorm:"type:varchar(16);not null;index" json:"role"`
	Age              *int      `json:"age,omitempty"`
	Balance          int64     `gorm:"not null" json:"balance"`
	Experience       int       `gorm:"not null" json:"experience"`
	Level            int       `gorm:"not null" json:"level"`
	SpendingLimit    *int64    `json:"spendingLimit,omitempty"`
	RequiresApproval bool      `gorm:"not null" json:"requiresApproval"`
	ParentID         *string   `gorm:"index" json:"parentId,omitempty"`
	TeacherID        *string   `gorm:"index" json:"teacherId,omitempty"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// AccountDefaults is the single source of the starting values applied to
// every new account. Supervised roles (child, student) additionally get a
// spending limit and the approval requirement.
type AccountDefaults struct {
	Balance       int64
	Experience    int
	Level         int
	SpendingLimit int64
}

var accountDefaults = AccountDefaults{
	Balance:       10000,
	Experience:    0,
	Level:         1,
	SpendingLimit: 1000,
}

// IsSupervised reports whether the role belongs to an account that is
// linked to a guardian and carries the supervision fields.
func IsSupervised(role string) bool {
	return role == RoleChild || role == RoleStudent
}

func validRole(role string) bool {
	switch role {
	case RoleParent, RoleChild, RoleTeacher, RoleStudent:
		return true
	}
	return false
}

// applyDefaults merges the default record into a freshly created user.
func applyDefaults(u *User) {
	u.Balance = accountDefaults.Balance
	u.Experience = accountDefaults.Experience
	u.Level = accountDefaults.Level
	if IsSupervised(u.Role) {
		limit := accountDefaults.SpendingLimit
		u.SpendingLimit = &limit
		u.RequiresApproval = true
	}
}

// LevelForExperience maps accumulated experience to an adventure level.
// Each level requires 100 more experience than the previous one.
func LevelForExperience(experience int) int {
	if experience < 0 {
		return 1
	}
	return experience/100 + 1
}
