package entity

// Department groups doctors. HeadDoctorID has no database foreign key:
// doctors already reference departments, and the cycle cannot be created
// with constraints on both sides. The store clears it when the doctor goes.
type Department struct {
	ID           int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	HeadDoctorID *int64 `gorm:"uniqueIndex" json:"head_doctor_id,omitempty"`

	// Relationships
	HeadDoctor *Doctor `gorm:"foreignKey:HeadDoctorID;-:migration" json:"head_doctor,omitempty"`
}

func (Department) TableName() string {
	return "departments"
}
