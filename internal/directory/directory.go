// Package directory is the read-only catalog of lecturers and faculty
// timetables shown alongside appointments.
package directory

type Lecturer struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Faculty string `json:"faculty"`
}

type TimeSlot struct {
	ID        string `json:"id"`
	Day       string `json:"day"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Subject   string `json:"subject"`
	Lecturer  string `json:"lecturer"`
	Room      string `json:"room"`
}

type facultyTimetable struct {
	faculty string
	slots   []TimeSlot
}

var lecturers = []Lecturer{
	{ID: "l1", Name: "Dr. Thabo Mokoena", Faculty: "Computer Science"},
	{ID: "l2", Name: "Dr. Priya Naidoo", Faculty: "Engineering"},
	{ID: "l3", Name: "Prof. Pieter van der Merwe", Faculty: "Business"},
	{ID: "l4", Name: "Dr. Zanele Khumalo", Faculty: "Arts"},
	{ID: "l5", Name: "Prof. Michael Botha", Faculty: "Science"},
}

var timetables = []facultyTimetable{
	{faculty: "Computer Science", slots: []TimeSlot{
		{ID: "1", Day: "Monday", StartTime: "09:00", EndTime: "10:30", Subject: "Introduction to Programming", Lecturer: "Dr. Thabo Mokoena", Room: "Lab 101"},
		{ID: "2", Day: "Monday", StartTime: "11:00", EndTime: "12:30", Subject: "Data Structures", Lecturer: "Dr. Priya Naidoo", Room: "Room 202"},
		{ID: "3", Day: "Tuesday", StartTime: "09:00", EndTime: "10:30", Subject: "Database Systems", Lecturer: "Prof. Anwar Ismail", Room: "Lab 103"},
	}},
	{faculty: "Engineering", slots: []TimeSlot{
		{ID: "4", Day: "Monday", StartTime: "09:00", EndTime: "10:30", Subject: "Engineering Mathematics", Lecturer: "Dr. Sipho Dlamini", Room: "Room 301"},
		{ID: "5", Day: "Wednesday", StartTime: "11:00", EndTime: "12:30", Subject: "Mechanics", Lecturer: "Prof. Pieter van der Merwe", Room: "Lab 201"},
	}},
}

// Lecturers returns every lecturer a student can book.
func Lecturers() []Lecturer {
	return append([]Lecturer(nil), lecturers...)
}

// LecturerByID looks up a lecturer by id.
func LecturerByID(id string) (Lecturer, bool) {
	for _, l := range lecturers {
		if l.ID == id {
			return l, true
		}
	}
	return Lecturer{}, false
}

// Timetable returns the faculty's slots; an unknown faculty has none.
func Timetable(faculty string) []TimeSlot {
	for _, t := range timetables {
		if t.faculty == faculty {
			return append([]TimeSlot(nil), t.slots...)
		}
	}
	return []TimeSlot{}
}

func Faculties() []string {
	out := make([]string, len(timetables))
	for i, t := range timetables {
		out[i] = t.faculty
	}
	return out
}
