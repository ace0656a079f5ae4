package entity

// Insurance represents the single insurance policy a patient may hold
type Insurance struct {
	ID              int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID       int64  `gorm:"not null;uniqueIndex" json:"patient_id"`
	Provider        string `gorm:"type:varchar(255);index" json:"provider,omitempty"`
	PolicyNumber    string `gorm:"type:varchar(255)" json:"policy_number,omitempty"`
	CoverageDetails string `gorm:"type:text" json:"coverage_details,omitempty"`

	// Relationships
	Patient Patient `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"patient,omitempty"`
}

func (Insurance) TableName() string {
	return "insurances"
}
