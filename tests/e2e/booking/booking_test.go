//go:build e2e

package booking_test

import (
	"net/http"
	"sync"
	"testing"
	"time"

	"doctor-booking/internal/domain/appointment"
	"doctor-booking/internal/domain/event"
	"doctor-booking/internal/domain/user"
	"doctor-booking/internal/handler/dto/request"
	"doctor-booking/internal/handler/dto/response"
	"doctor-booking/internal/handler/middleware"
	"doctor-booking/internal/infra/lock"
	"doctor-booking/internal/usecase/queries"
	"doctor-booking/tests/common/authtest"
	"doctor-booking/tests/common/dbtest"
	"doctor-booking/tests/common/httptest"
	"doctor-booking/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	appointmentsURL = "/api/appointments"
	doctorsURL      = "/api/doctors"
	paymentURL      = "/api/payments/callback"
	slotDate        = "2024-01-02"
	slotTime        = "10:00"
)

type BookingSuite struct {
	e2e.SharedSuite
	jwt *authtest.JWTHelper
}

func (s *BookingSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwt = authtest.NewJWTHelper(s.Config.JWT)
}

func TestBookingSuite(t *testing.T) {
	suite.Run(t, new(BookingSuite))
}

type fixture struct {
	userID       uuid.UUID
	doctorID     uuid.UUID
	patientToken string
	doctorToken  string
	adminToken   string
}

func (s *BookingSuite) seed() fixture {
	t := s.T()
	userID := dbtest.CreateTestUser(t, s.DB, "Jane Patient", "jane@example.com")
	doctorID := dbtest.CreateTestDoctor(t, s.DB, "Dr. Richard James", "richard@example.com", 50)
	return fixture{
		userID:       userID,
		doctorID:     doctorID,
		patientToken: s.jwt.GenerateToken(t, userID, user.RolePatient),
		doctorToken:  s.jwt.GenerateToken(t, doctorID, user.RoleDoctor),
		adminToken:   s.jwt.GenerateToken(t, uuid.New(), user.RoleAdmin),
	}
}

func (s *BookingSuite) book(token string, doctorID uuid.UUID, date, at string) (int, response.BookingResponse) {
	rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, appointmentsURL,
		request.BookAppointmentRequest{DoctorID: doctorID, SlotDate: date, SlotTime: at}, token)
	var body response.BookingResponse
	_ = httptest.DecodeResponseBody(s.T(), rec.Body, &body)
	return rec.Code, body
}

func (s *BookingSuite) listDoctors() []queries.DoctorView {
	rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, doctorsURL, nil, "")
	var body response.DoctorsResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
	return body.Doctors
}

func (s *BookingSuite) eventuallyDelivered(sink *e2e.EventSink, want event.Type) {
	s.Require().Eventually(func() bool {
		for _, got := range sink.Types() {
			if got == want {
				return true
			}
		}
		return false
	}, 3*time.Second, 20*time.Millisecond, "event %s not delivered", want)
}

// =============================================================================
// TestBookSlot
// =============================================================================

func (s *BookingSuite) TestBookSlot() {
	s.Run("Normal case: patient books a free slot", func() {
		f := s.seed()

		code, body := s.book(f.patientToken, f.doctorID, slotDate, slotTime)
		s.Require().Equal(http.StatusCreated, code)
		s.True(body.Success)
		s.Equal("Appointment Booked", body.Message)
		s.NotEqual(uuid.Nil, body.AppointmentID)

		doctors := s.listDoctors()
		s.Require().Len(doctors, 1)
		if diff := cmp.Diff([]string{slotTime}, doctors[0].SlotsBooked[slotDate]); diff != "" {
			s.Failf("booked slots mismatch", "(-want +got):\n%s", diff)
		}

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, appointmentsURL, nil, f.patientToken)
		var list response.AppointmentsResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &list)
		s.Require().Len(list.Appointments, 1)
		s.Equal(body.AppointmentID, list.Appointments[0].ID)
		s.Equal(int64(50), list.Appointments[0].Amount)
		s.Equal("Dr. Richard James", list.Appointments[0].DoctorData.Name)

		s.eventuallyDelivered(s.Notifications, event.TypeAppointmentBooked)
		s.eventuallyDelivered(s.Audits, event.TypeAppointmentBooked)
	})

	s.Run("Error case: the same slot twice", func() {
		f := s.seed()
		other := dbtest.CreateTestUser(s.T(), s.DB, "John Patient", "john@example.com")

		code, _ := s.book(f.patientToken, f.doctorID, slotDate, slotTime)
		s.Require().Equal(http.StatusCreated, code)

		code, body := s.book(s.jwt.GenerateToken(s.T(), other, user.RolePatient), f.doctorID, slotDate, slotTime)
		s.Equal(http.StatusConflict, code)
		s.False(body.Success)
		s.Equal("Slot not Available", body.Message)
		s.Equal(1, dbtest.CountAppointments(s.T(), s.DB, f.doctorID))
	})

	s.Run("Concurrency: exactly one of many simultaneous bookings wins", func() {
		f := s.seed()
		const callers = 10

		tokens := make([]string, callers)
		for i := range callers {
			id := dbtest.CreateTestUser(s.T(), s.DB, "Patient", uuid.NewString()+"@example.com")
			tokens[i] = s.jwt.GenerateToken(s.T(), id, user.RolePatient)
		}

		codes := make([]int, callers)
		var wg sync.WaitGroup
		for i := range callers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				codes[i], _ = s.book(tokens[i], f.doctorID, slotDate, slotTime)
			}()
		}
		wg.Wait()

		created := 0
		for _, c := range codes {
			switch c {
			case http.StatusCreated:
				created++
			case http.StatusConflict:
			default:
				s.Failf("unexpected status", "got %d", c)
			}
		}
		s.Equal(1, created)
		s.Equal(1, dbtest.CountAppointments(s.T(), s.DB, f.doctorID))
	})

	s.Run("Error case: unavailable doctor", func() {
		f := s.seed()
		dbtest.SetDoctorAvailable(s.T(), s.DB, f.doctorID, false)

		code, body := s.book(f.patientToken, f.doctorID, slotDate, slotTime)
		s.Equal(http.StatusConflict, code)
		s.Equal("Doctor not Available", body.Message)
	})

	s.Run("Error case: slot lock held elsewhere", func() {
		f := s.seed()
		slot, err := appointment.NewSlot(f.doctorID, slotDate, slotTime)
		s.Require().NoError(err)
		s.Require().NoError(s.Redis.Set(lock.Key(slot), "other"))

		code, body := s.book(f.patientToken, f.doctorID, slotDate, slotTime)
		s.Equal(http.StatusConflict, code)
		s.Equal("Slot is being booked, please try again", body.Message)
		s.Equal(0, dbtest.CountAppointments(s.T(), s.DB, f.doctorID))
	})

	s.Run("Error case: doctors cannot book", func() {
		f := s.seed()
		code, _ := s.book(f.doctorToken, f.doctorID, slotDate, slotTime)
		s.Equal(http.StatusForbidden, code)
	})
}

// =============================================================================
// TestAppointmentLifecycle
// =============================================================================

func (s *BookingSuite) TestAppointmentLifecycle() {
	s.Run("Normal case: cancel frees the slot for rebooking", func() {
		f := s.seed()
		code, booked := s.book(f.patientToken, f.doctorID, slotDate, slotTime)
		s.Require().Equal(http.StatusCreated, code)

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
			appointmentsURL+"/"+booked.AppointmentID.String()+"/cancel", nil, f.patientToken)
		s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
		s.Empty(s.listDoctors()[0].SlotsBooked[slotDate])
		s.eventuallyDelivered(s.Notifications, event.TypeAppointmentCancelled)

		code, _ = s.book(f.patientToken, f.doctorID, slotDate, slotTime)
		s.Equal(http.StatusCreated, code)
	})

	s.Run("Error case: another patient cannot cancel", func() {
		f := s.seed()
		code, booked := s.book(f.patientToken, f.doctorID, slotDate, slotTime)
		s.Require().Equal(http.StatusCreated, code)

		stranger := s.jwt.GenerateToken(s.T(), uuid.New(), user.RolePatient)
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
			appointmentsURL+"/"+booked.AppointmentID.String()+"/cancel", nil, stranger)
		httptest.AssertResultError(s.T(), rec, http.StatusForbidden, "Unauthorized Action")
	})

	s.Run("Normal case: payment then completion show on the dashboards", func() {
		f := s.seed()
		code, booked := s.book(f.patientToken, f.doctorID, slotDate, slotTime)
		s.Require().Equal(http.StatusCreated, code)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.Router, http.MethodPost, paymentURL,
			request.PaymentCallbackRequest{AppointmentID: booked.AppointmentID, Status: "paid"},
			map[string]string{middleware.WebhookSecretHeader: s.Config.Payment.WebhookSecret})
		var paid response.PaymentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &paid)
		s.True(paid.Changed)
		s.eventuallyDelivered(s.Audits, event.TypePaymentSuccess)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
			appointmentsURL+"/"+booked.AppointmentID.String()+"/complete", nil, f.doctorToken)
		s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, doctorsURL+"/me/dashboard", nil, f.doctorToken)
		var dash response.DashboardResponse[queries.DoctorDashboard]
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &dash)
		s.Equal(int64(50), dash.DashData.Earnings)
		s.Equal(1, dash.DashData.Appointments)
		s.Equal(1, dash.DashData.Patients)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/admin/dashboard", nil, f.adminToken)
		var admin response.DashboardResponse[queries.AdminDashboard]
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &admin)
		s.Equal(1, admin.DashData.Doctors)
		s.Equal(1, admin.DashData.Appointments)
		s.Equal(1, admin.DashData.Patients)
	})

	s.Run("Error case: payment callback without the secret", func() {
		f := s.seed()
		code, booked := s.book(f.patientToken, f.doctorID, slotDate, slotTime)
		s.Require().Equal(http.StatusCreated, code)

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, paymentURL,
			request.PaymentCallbackRequest{AppointmentID: booked.AppointmentID, Status: "paid"}, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}

// =============================================================================
// TestAvailability
// =============================================================================

func (s *BookingSuite) TestAvailability() {
	s.Run("Normal case: doctor toggles own availability", func() {
		f := s.seed()
		s.True(s.listDoctors()[0].Available)

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPatch,
			doctorsURL+"/"+f.doctorID.String()+"/availability", nil, f.doctorToken)
		var body response.AvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.False(body.Available)
		s.False(s.listDoctors()[0].Available)

		code, _ := s.book(f.patientToken, f.doctorID, slotDate, slotTime)
		s.Equal(http.StatusConflict, code)
	})

	s.Run("Error case: patients cannot toggle", func() {
		f := s.seed()
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPatch,
			doctorsURL+"/"+f.doctorID.String()+"/availability", nil, f.patientToken)
		require.Equal(s.T(), http.StatusForbidden, rec.Code)
	})
}

// =============================================================================
// TestProfilesAndLists
// =============================================================================

func (s *BookingSuite) TestProfilesAndLists() {
	s.Run("Normal case: profile edits replace the cached profile", func() {
		f := s.seed()

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, doctorsURL+"/me/profile", nil, f.doctorToken)
		var before response.DoctorProfileResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &before)
		s.Equal(int64(50), before.ProfileData.Fees)
		s.Equal("richard@example.com", before.ProfileData.Email)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPatch, doctorsURL+"/me/profile",
			map[string]any{"fees": 90, "about": "Sees children"}, f.doctorToken)
		s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, doctorsURL+"/me/profile", nil, f.doctorToken)
		var after response.DoctorProfileResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &after)
		s.Equal(int64(90), after.ProfileData.Fees)
		s.Equal("Sees children", after.ProfileData.About)
		s.Equal(int64(90), s.listDoctors()[0].Fees)
	})

	s.Run("Normal case: patient reads own profile", func() {
		f := s.seed()
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/users/me/profile", nil, f.patientToken)
		var body response.UserProfileResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(f.userID, body.UserData.ID)
		s.Equal("jane@example.com", body.UserData.Email)
	})

	s.Run("Normal case: appointment lists follow bookings and cancellations", func() {
		f := s.seed()
		doctorList := func() []queries.AppointmentView {
			rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, doctorsURL+"/me/appointments", nil, f.doctorToken)
			var body response.AppointmentsResponse
			httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
			return body.Appointments
		}
		adminList := func() []queries.AppointmentView {
			rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/admin/appointments", nil, f.adminToken)
			var body response.AppointmentsResponse
			httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
			return body.Appointments
		}
		s.Empty(doctorList())
		s.Empty(adminList())

		code, booked := s.book(f.patientToken, f.doctorID, slotDate, slotTime)
		s.Require().Equal(http.StatusCreated, code)
		s.Require().Len(doctorList(), 1)
		s.Require().Len(adminList(), 1)

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
			appointmentsURL+"/"+booked.AppointmentID.String()+"/cancel", nil, f.patientToken)
		s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
		s.True(doctorList()[0].Cancelled)
		s.True(adminList()[0].Cancelled)
	})

	s.Run("Error case: patients cannot read the admin list", func() {
		f := s.seed()
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/admin/appointments", nil, f.patientToken)
		s.Equal(http.StatusForbidden, rec.Code)
	})
}
