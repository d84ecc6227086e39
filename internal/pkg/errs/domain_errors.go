package errs

// Lookup errors shared by the command and query sides
var (
	ErrDoctorNotFound      = New("doctor not found")
	ErrUserNotFound        = New("user not found")
	ErrAppointmentNotFound = New("appointment not found")
)
