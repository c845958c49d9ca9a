package service

import (
	"testing"

	"github.com/tutorlens/tutorlens/internal/repository"
)

func TestCanView(t *testing.T) {
	id := func(v int64) *int64 { return &v }
	str := func(v string) *string { return &v }

	tutor := &repository.User{ID: 1, Role: repository.RoleTutor}
	parent := &repository.User{
		ID:    2,
		Role:  repository.RoleParent,
		Email: str("Parent@Example.com"),
		Phone: str("+15551234567"),
	}

	tests := []struct {
		name    string
		actor   *repository.User
		student *repository.Student
		want    bool
	}{
		{"tutor owns student", tutor, &repository.Student{TutorID: id(1)}, true},
		{"tutor sees unowned student", tutor, &repository.Student{TutorID: nil}, true},
		{"tutor blocked from other roster", tutor, &repository.Student{TutorID: id(9)}, false},
		{"parent email match is case insensitive", parent,
			&repository.Student{ParentEmail: "parent@example.com"}, true},
		{"parent phone match", parent,
			&repository.Student{ParentPhone: "+15551234567"}, true},
		{"parent no match", parent,
			&repository.Student{ParentEmail: "other@example.com", ParentPhone: "+15550000000"}, false},
		{"unknown role", &repository.User{Role: "admin"},
			&repository.Student{TutorID: nil}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := canView(tt.actor, tt.student); got != tt.want {
				t.Errorf("canView = %v, want %v", got, tt.want)
			}
		})
	}
}
