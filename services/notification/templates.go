package notification

import (
	"fmt"

	"docassist/config"
	"docassist/models"
)

func confirmationBody(md models.BookingMetadata) string {
	return fmt.Sprintf(`Dear %s,

Your appointment has been successfully booked!

Appointment Details:
- Doctor: Dr. %s
- Specialty: %s
- Date: %s
- Time: %s
- Reason: %s

Please arrive 15 minutes early for your appointment.

If you need to cancel or reschedule, please contact us at least 24 hours in advance.

Thank you for choosing HealthCare+!

Best regards,
HealthCare+ Team
`, md.UserName, md.DoctorName, md.DoctorSpecialty, md.Date, md.Time, md.Reason)
}

func reminderBody(p models.ReminderPayload) string {
	return fmt.Sprintf(`Dear %s,

This is a reminder of your upcoming appointment.

- Doctor: Dr. %s
- Date: %s
- Time: %s

Please arrive 15 minutes early.

Best regards,
HealthCare+ Team
`, p.UserName, p.DoctorName, p.Date, p.Time)
}

func resetBody(name, token string) string {
	link := fmt.Sprintf("%s/reset-password?token=%s", config.AppConfig.FrontendURL, token)
	return fmt.Sprintf(`Dear %s,

A password reset was requested for your account. Follow the link below to
choose a new password. The link expires in %d minutes.

%s

If you did not request this, you can ignore this email.

Best regards,
HealthCare+ Team
`, name, config.AppConfig.ResetExpireMinutes, link)
}
