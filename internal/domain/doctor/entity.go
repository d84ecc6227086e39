package doctor

import (
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName        = errors.New("doctor name is required")
	ErrNegativeFees     = errors.New("fees cannot be negative")
	ErrSlotAlreadyTaken = errors.New("slot already booked")
)

// BookedSlots maps a slot date to the ordered list of booked times on that date.
// It is the authoritative availability record.
type BookedSlots map[string][]string

func (b BookedSlots) Clone() BookedSlots {
	out := make(BookedSlots, len(b))
	for date, times := range b {
		out[date] = slices.Clone(times)
	}
	return out
}

func (b BookedSlots) On(date string) []string {
	return slices.Clone(b[date])
}

func (b BookedSlots) Contains(date, slotTime string) bool {
	return slices.Contains(b[date], slotTime)
}

type Doctor struct {
	id          uuid.UUID
	name        string
	email       string
	speciality  string
	degree      string
	experience  string
	about       string
	fees        int64
	available   bool
	slotsBooked BookedSlots
	createdAt   time.Time
}

type Profile struct {
	Name       string
	Email      string
	Speciality string
	Degree     string
	Experience string
	About      string
	Fees       int64
}

func NewDoctor(p Profile) (*Doctor, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if p.Fees < 0 {
		return nil, ErrNegativeFees
	}
	return &Doctor{
		id:          uuid.New(),
		name:        name,
		email:       p.Email,
		speciality:  p.Speciality,
		degree:      p.Degree,
		experience:  p.Experience,
		about:       p.About,
		fees:        p.Fees,
		available:   true,
		slotsBooked: BookedSlots{},
	}, nil
}

func ReconstructDoctor(id uuid.UUID, p Profile, available bool, slots BookedSlots, createdAt time.Time) *Doctor {
	if slots == nil {
		slots = BookedSlots{}
	}
	return &Doctor{
		id:          id,
		name:        p.Name,
		email:       p.Email,
		speciality:  p.Speciality,
		degree:      p.Degree,
		experience:  p.Experience,
		about:       p.About,
		fees:        p.Fees,
		available:   available,
		slotsBooked: slots,
		createdAt:   createdAt,
	}
}

func (d *Doctor) ID() uuid.UUID            { return d.id }
func (d *Doctor) Name() string             { return d.name }
func (d *Doctor) Email() string            { return d.email }
func (d *Doctor) Speciality() string       { return d.speciality }
func (d *Doctor) Degree() string           { return d.degree }
func (d *Doctor) Experience() string       { return d.experience }
func (d *Doctor) About() string            { return d.about }
func (d *Doctor) Fees() int64              { return d.fees }
func (d *Doctor) Available() bool          { return d.available }
func (d *Doctor) CreatedAt() time.Time     { return d.createdAt }
func (d *Doctor) SlotsBooked() BookedSlots { return d.slotsBooked.Clone() }

func (d *Doctor) IsBooked(date, slotTime string) bool {
	return d.slotsBooked.Contains(date, slotTime)
}

// Reserve appends slotTime to the booked list for date.
func (d *Doctor) Reserve(date, slotTime string) error {
	if d.IsBooked(date, slotTime) {
		return ErrSlotAlreadyTaken
	}
	d.slotsBooked[date] = append(d.slotsBooked[date], slotTime)
	return nil
}

// Release removes slotTime from the booked list for date. Releasing a free slot is a no-op.
func (d *Doctor) Release(date, slotTime string) {
	times := d.slotsBooked[date]
	idx := slices.Index(times, slotTime)
	if idx < 0 {
		return
	}
	times = slices.Delete(times, idx, idx+1)
	if len(times) == 0 {
		delete(d.slotsBooked, date)
		return
	}
	d.slotsBooked[date] = times
}

func (d *Doctor) ToggleAvailability() {
	d.available = !d.available
}

// ProfileChange holds the fields a doctor may edit on their own profile.
// Nil fields are left untouched.
type ProfileChange struct {
	Fees      *int64
	About     *string
	Available *bool
}

func (c ProfileChange) Empty() bool {
	return c.Fees == nil && c.About == nil && c.Available == nil
}

// ApplyProfileChange validates c and applies it. On error the doctor is unchanged.
func (d *Doctor) ApplyProfileChange(c ProfileChange) error {
	if c.Fees != nil && *c.Fees < 0 {
		return ErrNegativeFees
	}
	if c.Fees != nil {
		d.fees = *c.Fees
	}
	if c.About != nil {
		d.about = strings.TrimSpace(*c.About)
	}
	if c.Available != nil {
		d.available = *c.Available
	}
	return nil
}

// Snapshot is the copy embedded into appointments at booking time.
type Snapshot struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Speciality string    `json:"speciality"`
	Degree     string    `json:"degree,omitempty"`
	Fees       int64     `json:"fees"`
}

func (d *Doctor) Snapshot() Snapshot {
	return Snapshot{
		ID:         d.id,
		Name:       d.name,
		Email:      d.email,
		Speciality: d.speciality,
		Degree:     d.degree,
		Fees:       d.fees,
	}
}
