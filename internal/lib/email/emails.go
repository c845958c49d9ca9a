package email

// SendWelcomeEmail sends a welcome email to a newly registered tutor or
// parent.
func (c *Client) SendWelcomeEmail(to, firstName string) error {
	data := map[string]string{
		"UserFirstName": firstName,
	}

	return c.SendEmail(
		to,
		"Welcome to TutorLens!",
		TemplateWelcome,
		data,
	)
}

// SendSessionReportEmail sends the parent-facing session summary after a
// session transcript has been processed.
func (c *Client) SendSessionReportEmail(to, studentName, sessionDate, summary string) error {
	data := map[string]string{
		"StudentName": studentName,
		"SessionDate": sessionDate,
		"Summary":     summary,
	}

	return c.SendEmail(
		to,
		"Session report for "+studentName,
		TemplateSessionReport,
		data,
	)
}
