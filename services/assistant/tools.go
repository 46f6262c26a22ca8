package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"docassist/models"
	"docassist/services/booking"
	"docassist/services/doctor"
	"docassist/services/user"
	"docassist/utils"

	"go.uber.org/zap"
)

const navigateDelayMS = 200

// toolSpec pairs a tool's access requirements with its handler. The
// requiresAuth/requiresAdmin flags are the single place access is decided;
// the dispatcher enforces them before run is called.
type toolSpec struct {
	requiresAuth  bool
	requiresAdmin bool
	run           func(s *DefaultAssistantService, ctx context.Context, auth *AuthContext, args map[string]string, chatCtx *models.ChatContext) models.Envelope
}

var toolTable = map[string]toolSpec{
	"show_dashboard":       {requiresAuth: true, run: runShowDashboard},
	"show_admin_dashboard": {requiresAuth: true, requiresAdmin: true, run: runShowAdminDashboard},
	"show_doctors":         {run: runShowDoctors},
	"show_appointments":    {requiresAuth: true, run: runShowAppointments},
	"show_profile":         {requiresAuth: true, run: runShowProfile},
	"start_booking":        {requiresAuth: true, run: runStartBooking},
	"book_appointment":     {requiresAuth: true, run: runBookAppointment},
	"show_users":           {requiresAuth: true, requiresAdmin: true, run: runShowUsers},
	"delete_user":          {requiresAuth: true, requiresAdmin: true, run: runDeleteUser},
	"edit_user":            {requiresAuth: true, requiresAdmin: true, run: runEditUser},
	"update_profile":       {requiresAuth: true, run: runUpdateProfile},
	"add_doctor":           {requiresAuth: true, requiresAdmin: true, run: runAddDoctor},
	"delete_doctor":        {requiresAuth: true, requiresAdmin: true, run: runDeleteDoctor},
	"edit_doctor":          {requiresAuth: true, requiresAdmin: true, run: runEditDoctor},
}

func runShowDashboard(s *DefaultAssistantService, ctx context.Context, auth *AuthContext, args map[string]string, chatCtx *models.ChatContext) models.Envelope {
	return models.NavigateTo("/dashboard", navigateDelayMS, true, "Opening your dashboard...")
}

func runShowAdminDashboard(s *DefaultAssistantService, ctx context.Context, auth *AuthContext, args map[string]string, chatCtx *models.ChatContext) models.Envelope {
	return models.NavigateTo("/admin", navigateDelayMS, true, "Opening the admin dashboard...")
}

func runShowDoctors(s *DefaultAssistantService, ctx context.Context, auth *AuthContext, args map[string]string, chatCtx *models.ChatContext) models.Envelope {
	doctors, err := s.Doctors.ListDoctors()
	if err != nil {
		utils.GetLogger().Error("assistant list doctors failed", zap.Error(err))
		return models.MessageOf(false, "I couldn't load the doctor list right now.")
	}
	env := models.NavigateTo("/doctors", navigateDelayMS, true, "Here are our doctors. Taking you to the directory...")
	env.Data = doctors
	return env
}

func runShowAppointments(s *DefaultAssistantService, ctx context.Context, auth *AuthContext, args map[string]string, chatCtx *models.ChatContext) models.Envelope {
	appts, err := s.Booking.ListByUser(auth.UserID)
	if err != nil {
		utils.GetLogger().Error("assistant list appointments failed", zap.Error(err))
		return models.MessageOf(false, "I couldn't load your appointments right now.")
	}
	msg := "Opening your appointments..."
	if len(appts) == 0 {
		msg = "You have no appointments yet. Taking you to the appointments page..."
	}
	env := models.NavigateTo("/appointments", navigateDelayMS, true, msg)
	env.Data = appts
	return env
}

func runShowProfile(s *DefaultAssistantService, ctx context.Context, auth *AuthContext, args map[string]string, chatCtx *models.ChatContext) models.Envelope {
	return models.NavigateTo("/profile", navigateDelayMS, true, "Opening your profile...")
}

// runStartBooking pins the doctor of an in-progress booking, or enumerates
// the directory when the name is missing or unknown.
func runStartBooking(s *DefaultAssistantService, ctx context.Context, auth *AuthContext, args map[string]string, chatCtx *models.ChatContext) models.Envelope {
	name := strings.TrimSpace(args["doctor_name"])
	if name != "" {
		doc, err := s.Doctors.FindDoctorByName(name)
		if err == nil {
			chatCtx.PendingDoctorID = doc.ID
			chatCtx.PendingDoctorName = doc.Name
			return models.MessageOf(true, fmt.Sprintf(
				"You're booking with Dr. %s (%s, $%.2f per visit). What date and time work for you?",
				doc.Name, doc.Specialty, doc.Fee))
		}
		if !errors.Is(err, doctor.ErrNotFound) {
			utils.GetLogger().Error("assistant doctor lookup failed", zap.Error(err))
			return models.MessageOf(false, "I couldn't look up that doctor right now.")
		}
	}

	doctors, err := s.Doctors.ListDoctors()
	if err != nil || len(doctors) == 0 {
		return models.MessageOf(false, "I couldn't find a matching doctor, and the directory is empty right now.")
	}
	var sb strings.Builder
	if name != "" {
		fmt.Fprintf(&sb, "I couldn't find a doctor named %q. ", name)
	}
	sb.WriteString("Here are some of our doctors:\n")
	for i, doc := range doctors {
		if i == 5 {
			break
		}
		fmt.Fprintf(&sb, "- Dr. %s (%s, $%.2f)\n", doc.Name, doc.Specialty, doc.Fee)
	}
	sb.WriteString("Who would you like to see?")
	return models.MessageOf(true, sb.String())
}

// runBookAppointment fills the booking slots from the arguments and the
// pending context, then hands off to the booking service. A successful
// initiate clears the pending slots and redirects to checkout.
func runBookAppointment(s *DefaultAssistantService, ctx context.Context, auth *AuthContext, args map[string]string, chatCtx *models.ChatContext) models.Envelope {
	doctorID := strings.TrimSpace(args["doctor_id"])
	if doctorID == "" {
		if name := strings.TrimSpace(args["doctor_name"]); name != "" {
			doc, err := s.Doctors.FindDoctorByName(name)
			if err != nil {
				if errors.Is(err, doctor.ErrNotFound) {
					return models.MessageOf(false, fmt.Sprintf("I couldn't find a doctor named %q.", name))
				}
				utils.GetLogger().Error("assistant doctor lookup failed", zap.Error(err))
				return models.MessageOf(false, "I couldn't look up that doctor right now.")
			}
			doctorID = doc.ID
			chatCtx.PendingDoctorID = doc.ID
			chatCtx.PendingDoctorName = doc.Name
		}
	}
	if doctorID == "" {
		doctorID = chatCtx.PendingDoctorID
	}
	if doctorID == "" {
		return models.MessageOf(false, "Which doctor would you like to see? Say something like \"book with Dr. Patel\".")
	}

	dateText := strings.TrimSpace(args["date"])
	if dateText == "" {
		dateText = chatCtx.PendingDate
	}
	timeText := strings.TrimSpace(args["time"])
	if timeText == "" {
		timeText = chatCtx.PendingTime
	}
	reason := strings.TrimSpace(args["reason"])
	if reason == "" {
		reason = chatCtx.PendingReason
	}

	if dateText == "" || timeText == "" {
		chatCtx.PendingDoctorID = doctorID
		chatCtx.PendingDate = dateText
		chatCtx.PendingTime = timeText
		chatCtx.PendingReason = reason
		switch {
		case dateText == "" && timeText == "":
			return models.MessageOf(true, "What date and time would you like?")
		case dateText == "":
			return models.MessageOf(true, "What date would you like?")
		default:
			return models.MessageOf(true, "What time would you like?")
		}
	}

	date, err := ResolveDate(dateText, time.Now())
	if err != nil {
		return models.MessageOf(false, err.Error())
	}

	caller, err := s.Users.GetUserByID(auth.UserID)
	if err != nil {
		utils.GetLogger().Error("assistant caller lookup failed", zap.Error(err))
		return models.MessageOf(false, "I couldn't verify your account right now.")
	}

	session, doc, err := s.Booking.Initiate(ctx, caller, models.AppointmentRequest{
		DoctorID: doctorID,
		Date:     date,
		Time:     timeText,
		Reason:   reason,
	})
	if err != nil {
		var invalidDate *booking.InvalidDateError
		var duplicate *booking.DuplicateBookingError
		switch {
		case errors.As(err, &invalidDate), errors.As(err, &duplicate):
			return models.MessageOf(false, err.Error())
		case errors.Is(err, booking.ErrDoctorNotFound):
			return models.MessageOf(false, "That doctor is no longer in our directory.")
		default:
			utils.GetLogger().Error("assistant booking initiate failed", zap.Error(err))
			return models.MessageOf(false, "Something went wrong while setting up your booking. Please try again.")
		}
	}

	chatCtx.PendingDoctorID = ""
	chatCtx.PendingDoctorName = ""
	chatCtx.PendingDate = ""
	chatCtx.PendingTime = ""
	chatCtx.PendingReason = ""

	return models.Envelope{
		Type:       models.EnvelopePayment,
		Success:    true,
		Message:    fmt.Sprintf("Your appointment with Dr. %s is ready. Redirecting you to secure payment...", doc.Name),
		PaymentURL: session.URL,
		Details: models.AppointmentDetails{
			Doctor:    doc.Name,
			Specialty: doc.Specialty,
			Date:      date,
			Time:      timeText,
			Fee:       doc.Fee,
		},
	}
}

func runShowUsers(s *DefaultAssistantService, ctx context.Context, auth *AuthContext, args map[string]string, chatCtx *models.ChatContext) models.Envelope {
	users, err := s.Users.GetAllUsers()
	if err != nil {
		utils.GetLogger().Error("assistant list users failed", zap.Error(err))
		return models.MessageOf(false, "I couldn't load the user list right now.")
	}
	env := models.NavigateTo("/admin", navigateDelayMS, true, "Opening the user list...")
	env.Data = users
	return env
}

func runDeleteUser(s *DefaultAssistantService, ctx context.Context, auth *AuthContext, args map[string]string, chatCtx *models.ChatContext) models.Envelope {
	name := strings.TrimSpace(args["user_name"])
	if name == "" {
		return models.MessageOf(false, "Whose account should I delete? Give me their name.")
	}
	target, err := s.Users.FindUserByName(name)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return models.MessageOf(false, fmt.Sprintf("I couldn't find a user named %q.", name))
		}
		utils.GetLogger().Error("assistant user lookup failed", zap.Error(err))
		return models.MessageOf(false, "I couldn't look up that user right now.")
	}

	if err := s.Users.DeleteUser(auth.UserID, target.ID); err != nil {
		var blocked *user.HasAppointmentsError
		switch {
		case errors.Is(err, user.ErrSelfDelete), errors.As(err, &blocked):
			return models.MessageOf(false, err.Error())
		default:
			utils.GetLogger().Error("assistant delete user failed", zap.Error(err))
			return models.MessageOf(false, "Something went wrong while deleting that account.")
		}
	}
	return models.MessageOf(true, fmt.Sprintf("Deleted %s's account.", target.Name))
}

func runEditUser(s *DefaultAssistantService, ctx context.Context, auth *AuthContext, args map[string]string, chatCtx *models.ChatContext) models.Envelope {
	name := strings.TrimSpace(args["user_name"])
	if name == "" {
		return models.MessageOf(false, "Whose account should I open? Give me their name.")
	}
	target, err := s.Users.FindUserByName(name)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return models.MessageOf(false, fmt.Sprintf("I couldn't find a user named %q.", name))
		}
		utils.GetLogger().Error("assistant user lookup failed", zap.Error(err))
		return models.MessageOf(false, "I couldn't look up that user right now.")
	}
	env := models.NavigateTo("/admin", navigateDelayMS, true, fmt.Sprintf("Opening %s's account for editing...", target.Name))
	env.Data = target
	return env
}

func runUpdateProfile(s *DefaultAssistantService, ctx context.Context, auth *AuthContext, args map[string]string, chatCtx *models.ChatContext) models.Envelope {
	var upd models.UserUpdate
	var changed []string
	if v, ok := args["name"]; ok && strings.TrimSpace(v) != "" {
		v := strings.TrimSpace(v)
		upd.Name = &v
		changed = append(changed, "name")
	}
	if v, ok := args["email"]; ok && strings.TrimSpace(v) != "" {
		v := strings.TrimSpace(v)
		upd.Email = &v
		changed = append(changed, "email")
	}
	if v, ok := args["phone_number"]; ok && strings.TrimSpace(v) != "" {
		v := strings.TrimSpace(v)
		upd.PhoneNumber = &v
		changed = append(changed, "phone number")
	}
	if v, ok := args["date_of_birth"]; ok && strings.TrimSpace(v) != "" {
		v := strings.TrimSpace(v)
		upd.DateOfBirth = &v
		changed = append(changed, "date of birth")
	}
	if len(changed) == 0 {
		return models.MessageOf(false, "Tell me what to change, for example \"update my phone number to 555-0101\".")
	}

	if _, err := s.Users.UpdateProfile(auth.UserID, upd); err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return models.MessageOf(false, err.Error())
		}
		utils.GetLogger().Error("assistant profile update failed", zap.Error(err))
		return models.MessageOf(false, "Something went wrong while updating your profile.")
	}
	return models.MessageOf(true, "Updated your "+strings.Join(changed, ", ")+".")
}

func runAddDoctor(s *DefaultAssistantService, ctx context.Context, auth *AuthContext, args map[string]string, chatCtx *models.ChatContext) models.Envelope {
	return models.NavigateTo("/admin", navigateDelayMS, true, "Opening the add-doctor form...")
}

func runDeleteDoctor(s *DefaultAssistantService, ctx context.Context, auth *AuthContext, args map[string]string, chatCtx *models.ChatContext) models.Envelope {
	name := strings.TrimSpace(args["doctor_name"])
	if name == "" {
		return models.MessageOf(false, "Which doctor should I remove? Give me their name.")
	}
	doc, err := s.Doctors.FindDoctorByName(name)
	if err != nil {
		if errors.Is(err, doctor.ErrNotFound) {
			return models.MessageOf(false, fmt.Sprintf("I couldn't find a doctor named %q.", name))
		}
		utils.GetLogger().Error("assistant doctor lookup failed", zap.Error(err))
		return models.MessageOf(false, "I couldn't look up that doctor right now.")
	}

	if err := s.Doctors.DeleteDoctor(doc.ID); err != nil {
		var blocked *doctor.HasActiveAppointmentsError
		if errors.As(err, &blocked) {
			return models.MessageOf(false, err.Error())
		}
		utils.GetLogger().Error("assistant delete doctor failed", zap.Error(err))
		return models.MessageOf(false, "Something went wrong while removing that doctor.")
	}
	return models.MessageOf(true, fmt.Sprintf("Removed Dr. %s from the directory.", doc.Name))
}

func runEditDoctor(s *DefaultAssistantService, ctx context.Context, auth *AuthContext, args map[string]string, chatCtx *models.ChatContext) models.Envelope {
	name := strings.TrimSpace(args["doctor_name"])
	if name == "" {
		return models.MessageOf(false, "Which doctor should I open? Give me their name.")
	}
	doc, err := s.Doctors.FindDoctorByName(name)
	if err != nil {
		if errors.Is(err, doctor.ErrNotFound) {
			return models.MessageOf(false, fmt.Sprintf("I couldn't find a doctor named %q.", name))
		}
		utils.GetLogger().Error("assistant doctor lookup failed", zap.Error(err))
		return models.MessageOf(false, "I couldn't look up that doctor right now.")
	}
	env := models.NavigateTo("/admin", navigateDelayMS, true, fmt.Sprintf("Opening Dr. %s for editing...", doc.Name))
	env.Data = doc
	return env
}
