package email

// PreviewData contains sample template data for local preview/testing.
//
// It maps templateName -> (templateVariableName -> exampleValue).
var PreviewData = map[string]map[string]string{
	"welcome": {
		"UserFirstName": "Priya",
	},
	"session_report": {
		"StudentName": "Arjun Mehta",
		"SessionDate": "2026-03-14",
		"Summary":     "Today we worked on: Algebra, Fractions. Engagement was great today!",
	},
}
