package web

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"minikadimlar/internal/student"
)

// studentForm mirrors the registration form fields. The client masks TC and
// phone input; the same shapes are enforced here so a bypassed mask cannot
// store garbage.
type studentForm struct {
	Name          string `form:"ad" binding:"required"`
	NationalID    string `form:"tc" binding:"required,tckn"`
	BloodType     string `form:"kan" binding:"omitempty,oneof='A Rh+' 'A Rh-' 'B Rh+' 'B Rh-' 'AB Rh+' 'AB Rh-' '0 Rh+' '0 Rh-'"`
	GuardianName  string `form:"v1" binding:"required"`
	GuardianPhone string `form:"v1t" binding:"required,trphone"`
	BackupName    string `form:"v2"`
	BackupPhone   string `form:"v2t" binding:"omitempty,trphone"`
	Medications   string `form:"ilac"`
	Condition     string `form:"ozel"`
}

func (f studentForm) fields() student.Fields {
	return student.Fields{
		Name:          f.Name,
		NationalID:    f.NationalID,
		BloodType:     f.BloodType,
		GuardianName:  f.GuardianName,
		GuardianPhone: f.GuardianPhone,
		BackupName:    f.BackupName,
		BackupPhone:   f.BackupPhone,
		Medications:   f.Medications,
		Condition:     f.Condition,
	}
}

var (
	tcknPattern    = regexp.MustCompile(`^[0-9]{11}$`)
	trPhonePattern = regexp.MustCompile(`^0[0-9]{3} [0-9]{3} [0-9]{2} [0-9]{2}$`)
)

// RegisterValidators installs the custom form rules on gin's validator. Phone
// numbers are stored exactly as the client formats them (0xxx xxx xx xx); no
// canonicalization happens server-side.
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("tckn", func(fl validator.FieldLevel) bool {
		return tcknPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("trphone", func(fl validator.FieldLevel) bool {
		return trPhonePattern.MatchString(fl.Field().String())
	})
}
