package model

import (
	"strings"

	"campus-portal-api/internal/apperr"
)

type Role string

const (
	RoleStudent  Role = "student"
	RoleLecturer Role = "lecturer"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleLecturer, RoleAdmin:
		return true
	}
	return false
}

// Staff reports whether r is a lecturer or an admin.
func (r Role) Staff() bool {
	return r == RoleLecturer || r == RoleAdmin
}

// Actor is the caller of a workflow or query operation. It is one of
// Student, Lecturer or Admin.
type Actor interface {
	ActorID() string
	ActorName() string
	Role() Role
	actor()
}

type Student struct {
	ID            string
	Name          string
	StudentNumber string
	Faculty       string
}

type Lecturer struct {
	ID          string
	Name        string
	StaffNumber string
	Faculty     string
}

type Admin struct {
	ID          string
	Name        string
	StaffNumber string
}

func (s Student) ActorID() string   { return s.ID }
func (s Student) ActorName() string { return s.Name }
func (Student) Role() Role          { return RoleStudent }
func (Student) actor()              {}

func (l Lecturer) ActorID() string   { return l.ID }
func (l Lecturer) ActorName() string { return l.Name }
func (Lecturer) Role() Role          { return RoleLecturer }
func (Lecturer) actor()              {}

func (a Admin) ActorID() string   { return a.ID }
func (a Admin) ActorName() string { return a.Name }
func (Admin) Role() Role          { return RoleAdmin }
func (Admin) actor()              {}

// NewActor builds the variant for role. number is the student number for
// students and the staff number otherwise.
func NewActor(role Role, id, name, number, faculty string) (Actor, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperr.Validation("actor id required")
	}
	switch role {
	case RoleStudent:
		return Student{ID: id, Name: name, StudentNumber: number, Faculty: faculty}, nil
	case RoleLecturer:
		return Lecturer{ID: id, Name: name, StaffNumber: number, Faculty: faculty}, nil
	case RoleAdmin:
		return Admin{ID: id, Name: name, StaffNumber: number}, nil
	default:
		return nil, apperr.Validation("unknown role %q", role)
	}
}
