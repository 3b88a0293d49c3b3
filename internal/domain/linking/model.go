package linking

import "time"

// Invite is a single-use, time-limited token authorizing a child or
// student account to link to the parent or teacher that minted it.
// Redeemed invites are kept as an audit trail, never deleted.
type Invite struct {
	Code          string     `gorm:"size:8;primaryKey" json:"code"`
	CreatedBy     string     `gorm:"not null;index" json:"createdBy"`
	CreatedByRole string     `gorm:"type:varchar(16);not null" json:"createdByRole"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	ExpiresAt     time.Time  `gorm:"not null" json:"expiresAt"`
	Used          bool       `gorm:"not null" json:"used"`
	UsedBy        *string    `json:"usedBy,omitempty"`
	UsedAt        *time.Time `json:"usedAt,omitempty"`
}

// FamilyLink is the guardian-side half of the parent↔child relationship.
// The child-side half is users.parent_id; both are written in the same
// transaction. Link rows carry no FK so reads must tolerate dangling ids.
type FamilyLink struct {
	ParentID string    `gorm:"primaryKey"`
	ChildID  string    `gorm:"primaryKey"`
	LinkedAt time.Time `gorm:"autoCreateTime"`
}

type LinkResult struct {
	ParentID string `json:"parentId"`
	ChildID  string `json:"childId"`
}
