package mockapi

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/jask/robodir/internal/api"
)

var (
	firstNames = []string{"Ana", "Bruno", "Carla", "Diego", "Elena", "Felipe", "Gabriela", "Hugo", "Inés", "Jorge"}
	lastNames  = []string{"Torres", "Díaz", "Méndez", "Rojas", "Vega", "Castro", "Silva", "Ortiz"}
	topics     = []string{"Robotics", "Sensors", "Control Systems", "Computer Vision", "Embedded C", "Kinematics", "Path Planning"}
	levels     = []string{"Intro to", "Applied", "Advanced"}
)

// Generate builds n students and n courses from seed. The same seed always
// yields the same data; ids start at 1 and follow response order.
func Generate(n int, seed int64) Fixtures {
	rng := rand.New(rand.NewSource(seed))
	base := time.Date(2024, time.January, 8, 0, 0, 0, 0, time.UTC)

	f := Fixtures{
		Students: make([]api.Student, 0, n),
		Courses:  make([]api.Course, 0, n),
	}
	for i := 1; i <= n; i++ {
		first := firstNames[rng.Intn(len(firstNames))]
		last := lastNames[rng.Intn(len(lastNames))]
		f.Students = append(f.Students, api.Student{
			ID:             i,
			Name:           first + " " + last,
			Email:          fmt.Sprintf("%s.%s%d@robotics.edu", asciiLower(first), asciiLower(last), i),
			EnrollmentDate: base.AddDate(0, 0, rng.Intn(180)).Format(time.DateOnly),
		})

		topic := topics[rng.Intn(len(topics))]
		start := base.AddDate(0, 0, 7*rng.Intn(26))
		f.Courses = append(f.Courses, api.Course{
			ID:          i,
			Name:        levels[rng.Intn(len(levels))] + " " + topic,
			Description: fmt.Sprintf("%d-week course on %s.", 8+rng.Intn(9), strings.ToLower(topic)),
			StartDate:   start.Format(time.DateOnly),
			EndDate:     start.AddDate(0, 4, 0).Format(time.DateOnly),
		})
	}
	return f
}

func asciiLower(s string) string {
	r := strings.NewReplacer("á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ñ", "n")
	return r.Replace(strings.ToLower(s))
}
