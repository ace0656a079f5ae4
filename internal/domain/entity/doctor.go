package entity

// Doctor represents the doctor profile attached to a user
type Doctor struct {
	ID             int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         int64  `gorm:"not null;uniqueIndex" json:"user_id"`
	Specialization string `gorm:"type:varchar(255);index" json:"specialization,omitempty"`
	DepartmentID   *int64 `gorm:"index" json:"department_id,omitempty"`

	// Relationships
	User       User        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Department *Department `gorm:"foreignKey:DepartmentID;constraint:OnDelete:CASCADE" json:"department,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}
