package mailer

import (
	"fmt"
	"html"
	"strings"
)

// VoteConfirmationEmail renders the HTML body confirming a participant's
// availability submission. dateTime is the human-formatted slot list.
func VoteConfirmationEmail(eventName, participantName, dateTime string) string {
	eventName = html.EscapeString(eventName)
	participantName = html.EscapeString(participantName)
	dateTime = html.EscapeString(dateTime)
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
  <body>
    <div style="font-family: Arial, sans-serif; padding: 20px;">
      <h2>Thanks for voting, %s!</h2>
      <p>You've successfully voted for the event "%s".</p>
      <p>Selected time slot: %s</p>
      <p>We'll notify you once the final time is confirmed.</p>
      <br/>
      <p>Best regards,</p>
      <p>Your Event Team</p>
    </div>
  </body>
</html>`, participantName, eventName, dateTime)
}

// EventCompletionEmail renders the HTML body announcing a finalized event.
// finalDateTime, location and details may be empty; their sections are
// omitted when they are.
func EventCompletionEmail(eventName, participantName, finalDateTime, location, details string) string {
	eventName = html.EscapeString(eventName)
	participantName = html.EscapeString(participantName)

	var b strings.Builder
	b.WriteString(`<!DOCTYPE html>
<html>
  <body>
    <div style="font-family: Arial, sans-serif; padding: 20px; background-color: #f9fafb;">
      <div style="max-width: 600px; margin: 0 auto; background-color: white; border-radius: 8px; padding: 32px;">
`)
	fmt.Fprintf(&b, "        <h2 style=\"color: #1f2937;\">Event Completed: %s</h2>\n", eventName)
	fmt.Fprintf(&b, "        <p style=\"color: #374151;\">Hi %s,</p>\n", participantName)
	fmt.Fprintf(&b, "        <p style=\"color: #374151;\">The voting for \"%s\" has been completed and the event has been finalized.</p>\n", eventName)
	if finalDateTime != "" {
		fmt.Fprintf(&b, `        <div style="background-color: #dbeafe; border-left: 4px solid #3b82f6; padding: 16px; margin: 24px 0;">
          <h3 style="color: #1e40af; margin: 0 0 8px 0;">Final Date &amp; Time</h3>
          <p style="color: #1e40af; margin: 0; font-weight: 600;">%s</p>
        </div>
`, html.EscapeString(finalDateTime))
	}
	if location != "" {
		fmt.Fprintf(&b, `        <div style="margin: 16px 0;">
          <h3 style="color: #374151; margin: 0 0 8px 0;">Location</h3>
          <p style="color: #6b7280; margin: 0;">%s</p>
        </div>
`, html.EscapeString(location))
	}
	if details != "" {
		fmt.Fprintf(&b, `        <div style="margin: 16px 0;">
          <h3 style="color: #374151; margin: 0 0 8px 0;">Event Details</h3>
          <p style="color: #6b7280; margin: 0; white-space: pre-line;">%s</p>
        </div>
`, html.EscapeString(details))
	}
	b.WriteString(`        <p style="color: #374151;">Thank you for participating in the scheduling process!</p>
        <p style="color: #6b7280; font-size: 14px;">Best regards,<br>The Eventra Team</p>
      </div>
    </div>
  </body>
</html>`)
	return b.String()
}
