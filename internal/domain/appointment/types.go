package appointment

type ActorKind string

const (
	ActorUser   ActorKind = "USER"
	ActorDoctor ActorKind = "DOCTOR"
	ActorAdmin  ActorKind = "ADMIN"
)

func (k ActorKind) String() string {
	return string(k)
}

func (k ActorKind) IsValid() bool {
	switch k {
	case ActorUser, ActorDoctor, ActorAdmin:
		return true
	default:
		return false
	}
}

type PaymentStatus string

const (
	PaymentPaid   PaymentStatus = "paid"
	PaymentFailed PaymentStatus = "failed"
)
