package event

type Type string

const (
	TypeAppointmentBooked    Type = "APPOINTMENT_BOOKED"
	TypeAppointmentCancelled Type = "APPOINTMENT_CANCELLED"
	TypePaymentSuccess       Type = "PAYMENT_SUCCESS"
)

func (t Type) String() string {
	return string(t)
}

// IsKnown reports whether t belongs to the closed set of event kinds this system emits.
// Receivers still accept unknown kinds.
func (t Type) IsKnown() bool {
	switch t {
	case TypeAppointmentBooked, TypeAppointmentCancelled, TypePaymentSuccess:
		return true
	default:
		return false
	}
}

func Types() []Type {
	return []Type{TypeAppointmentBooked, TypeAppointmentCancelled, TypePaymentSuccess}
}

// Payload keys shared by the publisher and the receivers.
const (
	KeyUserEmail   = "userEmail"
	KeyUserName    = "userName"
	KeyDoctorName  = "doctorName"
	KeySlotDate    = "slotDate"
	KeySlotTime    = "slotTime"
	KeyAmount      = "amount"
	KeyCancelledBy = "cancelledBy"
)
