package notification

import (
	"bytes"
	"html/template"

	"doctor-booking/internal/domain/event"
	"doctor-booking/internal/pkg/errs"
)

var ErrNoRecipient = errs.New("event payload has no recipient email")

// EmailBuilder renders the email side effect for one event type.
type EmailBuilder func(ev event.Event) (Email, error)

// Builders maps each event type to its email side effect. Types without an
// entry are stored but produce no email.
type Builders map[event.Type]EmailBuilder

func DefaultBuilders() Builders {
	return Builders{
		event.TypeAppointmentBooked:    templateBuilder("Appointment Confirmed", bookedTmpl),
		event.TypeAppointmentCancelled: templateBuilder("Appointment Cancelled", cancelledTmpl),
		event.TypePaymentSuccess:       templateBuilder("Payment Successful", paymentTmpl),
	}
}

var (
	bookedTmpl = template.Must(template.New("booked").Parse(`<h2>Appointment Confirmed</h2>
<p>Hi {{.UserName}},</p>
<p>Your appointment with <b>{{.DoctorName}}</b> on <b>{{.SlotDate}}</b> at <b>{{.SlotTime}}</b> is confirmed.</p>
{{if .Amount}}<p>Consultation fee: {{.Amount}}</p>{{end}}`))

	cancelledTmpl = template.Must(template.New("cancelled").Parse(`<h2>Appointment Cancelled</h2>
<p>Hi {{.UserName}},</p>
<p>Your appointment with <b>{{.DoctorName}}</b> on <b>{{.SlotDate}}</b> at <b>{{.SlotTime}}</b> has been cancelled{{if .CancelledBy}} by {{.CancelledBy}}{{end}}.</p>`))

	paymentTmpl = template.Must(template.New("payment").Parse(`<h2>Payment Successful</h2>
<p>Hi {{.UserName}},</p>
<p>We received your payment{{if .Amount}} of {{.Amount}}{{end}} for the appointment with <b>{{.DoctorName}}</b> on <b>{{.SlotDate}}</b> at <b>{{.SlotTime}}</b>.</p>`))
)

type templateData struct {
	UserName    string
	DoctorName  string
	SlotDate    string
	SlotTime    string
	Amount      string
	CancelledBy string
}

func templateBuilder(subject string, tmpl *template.Template) EmailBuilder {
	return func(ev event.Event) (Email, error) {
		to, ok := ev.Recipient()
		if !ok {
			return Email{}, ErrNoRecipient
		}

		data := templateData{
			UserName:    ev.Payload.Text(event.KeyUserName),
			DoctorName:  ev.Payload.Text(event.KeyDoctorName),
			SlotDate:    ev.Payload.Text(event.KeySlotDate),
			SlotTime:    ev.Payload.Text(event.KeySlotTime),
			Amount:      ev.Payload.Text(event.KeyAmount),
			CancelledBy: ev.Payload.Text(event.KeyCancelledBy),
		}
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return Email{}, errs.Wrap(err, "render email")
		}
		return Email{To: to, Subject: subject, HTMLBody: buf.String()}, nil
	}
}
