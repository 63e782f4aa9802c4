// Package mockapi serves a stand-in for the remote directory API, for local
// development and for tests that need a real HTTP peer.
package mockapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jask/robodir/internal/api"
)

// Fixtures is the data served by the mock, in response order.
type Fixtures struct {
	Students []api.Student `json:"students"`
	Courses  []api.Course  `json:"courses"`
}

// DefaultFixtures mirrors the shape of the production data set.
func DefaultFixtures() Fixtures {
	return Fixtures{
		Students: []api.Student{
			{ID: 1, Name: "Ana Torres", Email: "ana@robotics.edu", EnrollmentDate: "2024-01-10"},
			{ID: 2, Name: "Bruno Díaz", Email: "bruno@robotics.edu", EnrollmentDate: "2024-02-03"},
			{ID: 3, Name: "Carla Méndez", Email: "carla@robotics.edu", EnrollmentDate: "2024-03-21"},
		},
		Courses: []api.Course{
			{ID: 1, Name: "Intro to Robotics", Description: "Sensors, actuators and the control loop.", StartDate: "2024-02-01", EndDate: "2024-05-30"},
			{ID: 2, Name: "Embedded Programming", Description: "Microcontrollers from blink to RTOS.", StartDate: "2024-03-01", EndDate: "2024-06-28"},
		},
	}
}

// LoadFixtures reads a JSON file shaped like Fixtures.
func LoadFixtures(path string) (Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fixtures{}, fmt.Errorf("read fixtures: %w", err)
	}
	var f Fixtures
	if err := json.Unmarshal(data, &f); err != nil {
		return Fixtures{}, fmt.Errorf("parse fixtures: %w", err)
	}
	return f, nil
}

// Options inject failures per path ("/students", "/courses").
type Options struct {
	// FailStatus answers the path with this status and an error body.
	FailStatus map[string]int
	// RawBody answers the path with 200 and this body verbatim.
	RawBody map[string]string
	Logger  *zap.Logger
}

// NewRouter builds the gin engine serving f.
func NewRouter(f Fixtures, opts Options) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET(api.StudentsPath, collection(api.StudentsPath, f.Students, opts))
	r.GET(api.CoursesPath, collection(api.CoursesPath, f.Courses, opts))
	return r
}

func collection[T any](path string, items []T, opts Options) gin.HandlerFunc {
	if items == nil {
		items = []T{}
	}
	return func(c *gin.Context) {
		if status, ok := opts.FailStatus[path]; ok {
			c.JSON(status, gin.H{"error": http.StatusText(status)})
			return
		}
		if raw, ok := opts.RawBody[path]; ok {
			c.Data(http.StatusOK, "application/json", []byte(raw))
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.String("request_id", c.GetHeader("X-Request-ID")),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
