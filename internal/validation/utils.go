package validation

import "regexp"

// uuidRegex matches standard UUID format: xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx
var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// IsValidUUID checks whether a string matches UUID format.
//
// Format only; it does not validate UUID version/variant semantics.
func IsValidUUID(uuid string) bool {
	return uuidRegex.MatchString(uuid)
}

// dateRegex matches ISO dates (YYYY-MM-DD), the wire format for
// session_date, deadline, and first_detected fields.
var dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// IsValidDate checks whether a string looks like an ISO calendar date.
// Range checking (month 13, day 32) is left to time.Parse at use sites.
func IsValidDate(date string) bool {
	return dateRegex.MatchString(date)
}
