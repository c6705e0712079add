package mail

import "fmt"

const bodyWrapper = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    %s
    <p style="font-size: 12px; color: #666;">This is an automated message. Please do not reply to this email.</p>
  </div>
</body>
</html>`

// ApprovalBody renders the verification / contact approval mail.
func ApprovalBody(name, approvalKind string) (subject, html string) {
	subject = fmt.Sprintf("Your account status: %s", approvalKind)
	content := fmt.Sprintf(`<h2>Hello %s,</h2>
    <p>Good news! Your account status has been updated to: <strong>%s</strong>.</p>
    <p>Log in to see what's new.</p>`, name, approvalKind)
	return subject, fmt.Sprintf(bodyWrapper, content)
}

// InterestBody renders the buyer-interest mail sent to a seller whose contact
// is not yet approved. It deliberately withholds the buyer's contact details;
// approval is a manual administrator gate.
func InterestBody(sellerName, buyerName, listingTitle string, listingPrice float64) (subject, html string) {
	subject = "New interest in your listing"
	content := fmt.Sprintf(`<h2>Hello %s,</h2>
    <p><strong>%s</strong> is interested in your listing "%s" (%.2f).</p>
    <p>Your contact information is not visible yet. Please contact the administrator to enable contact visibility so buyers can reach you.</p>`,
		sellerName, buyerName, listingTitle, listingPrice)
	return subject, fmt.Sprintf(bodyWrapper, content)
}

// PasswordChangedBody renders the password change confirmation mail.
func PasswordChangedBody(name, changedAt string) (subject, html string) {
	subject = "Your password was changed"
	content := fmt.Sprintf(`<h2>Hello %s,</h2>
    <p>Your password was changed at %s.</p>
    <p>If this wasn't you, contact the administrator immediately.</p>`, name, changedAt)
	return subject, fmt.Sprintf(bodyWrapper, content)
}
