package models

// StaffSchedule is one shift entry: a mechanic's contiguous working interval
// on one date. WorkDate is stored as YYYY-MM-DD and the clock times as
// zero-padded HH:MM, so string order equals chronological order. For a given
// mechanic and date no two entries may overlap; the route layer checks this,
// the database does not enforce it.
type StaffSchedule struct {
	BaseModel
	MechanicID string `gorm:"size:36;index;not null" json:"mechanicId"`
	WorkDate   string `gorm:"size:10;index;not null" json:"workDate"`
	StartTime  string `gorm:"size:5;not null" json:"startTime"`
	EndTime    string `gorm:"size:5;not null" json:"endTime"`

	Mechanic User `gorm:"foreignKey:MechanicID" json:"-"`
}
