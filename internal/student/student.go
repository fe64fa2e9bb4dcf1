package student

import "time"

// Student is one child registered at the center. Guardian and health fields
// mirror the registration form; Present and LastChange carry the live
// attendance state.
type Student struct {
	ID            int64
	Name          string
	NationalID    string
	BloodType     string
	GuardianName  string
	GuardianPhone string
	BackupName    string
	BackupPhone   string
	Medications   string
	Condition     string
	PhotoRef      string
	Present       bool
	LastChange    *time.Time
}

// Fields carries the mutable registration fields for create/update. The photo
// reference travels separately because updates may keep the existing file.
type Fields struct {
	Name          string
	NationalID    string
	BloodType     string
	GuardianName  string
	GuardianPhone string
	BackupName    string
	BackupPhone   string
	Medications   string
	Condition     string
}
