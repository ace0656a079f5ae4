package entity

// Prescription belongs to exactly one appointment and repeats its
// patient/doctor pair for direct lookups.
type Prescription struct {
	ID             int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	AppointmentID  int64  `gorm:"not null;uniqueIndex" json:"appointment_id"`
	DoctorID       int64  `gorm:"not null;index" json:"doctor_id"`
	PatientID      int64  `gorm:"not null;index" json:"patient_id"`
	MedicineDetail string `gorm:"type:text" json:"medicine_detail,omitempty"`
	Instructions   string `gorm:"type:text" json:"instructions,omitempty"`

	// Relationships
	Appointment Appointment `gorm:"foreignKey:AppointmentID;constraint:OnDelete:CASCADE" json:"appointment,omitempty"`
	Doctor      Doctor      `gorm:"foreignKey:DoctorID;constraint:OnDelete:CASCADE" json:"doctor,omitempty"`
	Patient     Patient     `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"patient,omitempty"`
}

func (Prescription) TableName() string {
	return "prescriptions"
}

// MatchesAppointment checks the denormalized pair against the appointment
func (p *Prescription) MatchesAppointment(a *Appointment) bool {
	return p.PatientID == a.PatientID && p.DoctorID == a.DoctorID
}
