// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives validated data from the handler, performs
// business operations, and calls repository methods to interact
// with the data.
//
// Access control lives here: every student-scoped operation goes through
// StudentService.Authorize, which checks that the acting user is either
// the owning tutor or a parent whose contact info matches the student.
package service
