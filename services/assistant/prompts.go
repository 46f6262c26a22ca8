package assistant

import (
	"fmt"
	"strings"
	"time"

	"docassist/models"
)

const intentInstructions = `You are the assistant of a doctor appointment booking site.
Map the user's latest message to exactly one JSON object, with no markdown
fences and no commentary around it.

To invoke a tool, answer:
  {"tool": "<tool name>", "args": {"<arg>": "<value>"}}

For small talk or anything no tool covers, answer:
  {"reply": "<short helpful sentence>"}

Available tools:
  show_dashboard          - open the user's dashboard
  show_admin_dashboard    - open the admin dashboard
  show_doctors            - list the doctors or open the directory
  show_appointments       - show the user's appointments
  show_profile            - open the user's profile page
  start_booking           - begin booking; args: doctor_name (optional)
  book_appointment        - book; args: doctor_name or doctor_id, date, time, reason (optional)
  show_users              - admin: open the user list
  delete_user             - admin: delete an account; args: user_name
  edit_user               - admin: open an account for editing; args: user_name
  update_profile          - change own details; args: name, email, phone_number, date_of_birth (all optional)
  add_doctor              - admin: open the add-doctor form
  delete_doctor           - admin: remove a doctor; args: doctor_name
  edit_doctor             - admin: open a doctor for editing; args: doctor_name

Dates may be passed through as the user said them ("tomorrow", "next friday",
"2026-09-14"); they are resolved after dispatch. Times should be HH:MM
24-hour. Never invent doctor names or ids the user did not mention.`

// buildPrompt assembles the dispatch prompt from the system instructions,
// the conversation so far, and the pending booking slots.
func buildPrompt(chatCtx *models.ChatContext, auth *AuthContext, message string, now time.Time) string {
	var sb strings.Builder
	sb.WriteString(intentInstructions)
	sb.WriteString("\n\nToday is ")
	sb.WriteString(now.Format("Monday, 2006-01-02"))
	sb.WriteString(".\n")

	if auth != nil {
		who := auth.Name
		if who == "" {
			who = auth.Email
		}
		fmt.Fprintf(&sb, "The user is logged in as %s (role %s).\n", who, auth.Role)
	} else {
		sb.WriteString("The user is not logged in.\n")
	}

	if chatCtx.PendingDoctorName != "" {
		fmt.Fprintf(&sb, "A booking with Dr. %s is in progress", chatCtx.PendingDoctorName)
		if chatCtx.PendingDate != "" {
			fmt.Fprintf(&sb, " for %s", chatCtx.PendingDate)
		}
		sb.WriteString("; missing details likely belong to it.\n")
	}

	if len(chatCtx.Transcript) > 0 {
		sb.WriteString("\nConversation so far:\n")
		for _, line := range chatCtx.Transcript {
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\nUser: ")
	sb.WriteString(message)
	return sb.String()
}
