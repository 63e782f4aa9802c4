package api

// Student is a record from GET /students.
type Student struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	EnrollmentDate string `json:"enrollment_date"`
}

// Course is a record from GET /courses.
type Course struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

// Collection endpoints.
const (
	StudentsPath = "/students"
	CoursesPath  = "/courses"
)
