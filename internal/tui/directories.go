package tui

import (
	"go.uber.org/zap"

	"github.com/jask/robodir/internal/api"
	"github.com/jask/robodir/internal/config"
	"github.com/jask/robodir/internal/directory"
	"github.com/jask/robodir/internal/images"
)

// PolicyFromConfig maps ui.on_fetch_error onto a directory.ErrorPolicy.
func PolicyFromConfig(v string) directory.ErrorPolicy {
	if v == config.OnFetchErrorShow {
		return directory.ErrorPolicySurface
	}
	return directory.ErrorPolicyEmpty
}

func NewStudentsTab(src directory.Source[api.Student], policy directory.ErrorPolicy, logger *zap.Logger) Tab {
	screen := directory.NewScreen(config.TabStudents, src, directory.Options[api.Student]{
		Policy: policy,
		Label:  func(s api.Student) string { return s.Name },
		Logger: logger,
	})
	return newDirectoryTab(config.TabStudents, "Students", screen, presenter[api.Student]{
		noun: "students",
		row: func(s api.Student) (string, string) {
			return s.Name, s.Email
		},
		header: func(s api.Student) string { return s.Name },
		detail: func(s api.Student) []string {
			return []string{
				"Email: " + s.Email,
				"Enrollment date: " + s.EnrollmentDate,
				"Avatar: " + images.AvatarURL(s.Name),
			}
		},
	})
}

func NewCoursesTab(src directory.Source[api.Course], policy directory.ErrorPolicy, logger *zap.Logger) Tab {
	screen := directory.NewScreen(config.TabCourses, src, directory.Options[api.Course]{
		Policy: policy,
		Label:  func(c api.Course) string { return c.Name },
		Logger: logger,
	})
	return newDirectoryTab(config.TabCourses, "Courses", screen, presenter[api.Course]{
		noun: "courses",
		row: func(c api.Course) (string, string) {
			return c.Name, c.Description
		},
		header: func(c api.Course) string { return c.Name },
		detail: func(c api.Course) []string {
			return []string{
				c.Description,
				"Start date: " + c.StartDate,
				"End date: " + c.EndDate,
				"Photo: " + images.CoursePhotoURL(c.ID),
			}
		},
	})
}
