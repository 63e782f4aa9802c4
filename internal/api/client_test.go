package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/jask/robodir/internal/api"
	"github.com/jask/robodir/internal/mockapi"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newMock(t *testing.T, f mockapi.Fixtures, opts mockapi.Options) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(mockapi.NewRouter(f, opts))
	t.Cleanup(srv.Close)
	return srv
}

func TestStudentsKeepsServerOrder(t *testing.T) {
	fixtures := mockapi.Fixtures{Students: []api.Student{
		{ID: 3, Name: "Carla", Email: "c@x.com", EnrollmentDate: "2024-03-01"},
		{ID: 1, Name: "Ana", Email: "ana@x.com", EnrollmentDate: "2024-01-10"},
		{ID: 2, Name: "Bruno", Email: "b@x.com", EnrollmentDate: "2024-02-01"},
	}}
	srv := newMock(t, fixtures, mockapi.Options{})

	got, err := api.NewClient(srv.URL, api.Options{}).Students(context.Background())
	require.NoError(t, err)
	require.Equal(t, fixtures.Students, got)
}

func TestCoursesEmptyArray(t *testing.T) {
	srv := newMock(t, mockapi.Fixtures{}, mockapi.Options{})

	got, err := api.NewClient(srv.URL+"/", api.Options{}).Courses(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestZeroIDAndEmptyNameAreAccepted(t *testing.T) {
	srv := newMock(t, mockapi.DefaultFixtures(), mockapi.Options{RawBody: map[string]string{
		"/students": `[{"id":0,"name":""},{"id":2,"name":"","email":"b@x.com"}]`,
	}})

	got, err := api.NewClient(srv.URL, api.Options{}).Students(context.Background())
	require.NoError(t, err)
	require.Equal(t, []api.Student{{ID: 0}, {ID: 2, Email: "b@x.com"}}, got)
}

func TestFetchFailures(t *testing.T) {
	cases := []struct {
		name       string
		opts       mockapi.Options
		wantStatus int
		outcome    string
	}{
		{name: "server error", opts: mockapi.Options{FailStatus: map[string]int{"/students": 500}}, wantStatus: 500, outcome: api.OutcomeStatus},
		{name: "not found", opts: mockapi.Options{FailStatus: map[string]int{"/students": 404}}, wantStatus: 404, outcome: api.OutcomeStatus},
		{name: "malformed json", opts: mockapi.Options{RawBody: map[string]string{"/students": `[{"id":1,`}}, wantStatus: 200, outcome: api.OutcomeMalformed},
		{name: "object body", opts: mockapi.Options{RawBody: map[string]string{"/students": `{"id":1}`}}, wantStatus: 200, outcome: api.OutcomeMalformed},
		{name: "null body", opts: mockapi.Options{RawBody: map[string]string{"/students": `null`}}, wantStatus: 200, outcome: api.OutcomeMalformed},
		{name: "trailing data", opts: mockapi.Options{RawBody: map[string]string{"/students": `[] []`}}, wantStatus: 200, outcome: api.OutcomeMalformed},
		{name: "string id", opts: mockapi.Options{RawBody: map[string]string{"/students": `[{"id":"1","name":"Ana"}]`}}, wantStatus: 200, outcome: api.OutcomeMalformed},
		{name: "non-object record", opts: mockapi.Options{RawBody: map[string]string{"/students": `[1]`}}, wantStatus: 200, outcome: api.OutcomeMalformed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := newMock(t, mockapi.DefaultFixtures(), tc.opts)
			reg := prometheus.NewRegistry()
			metrics := api.NewMetrics(reg)

			got, err := api.NewClient(srv.URL, api.Options{Metrics: metrics}).Students(context.Background())
			require.Nil(t, got)
			require.ErrorIs(t, err, api.ErrFetch)

			var fe *api.FetchError
			require.True(t, errors.As(err, &fe))
			require.Equal(t, "/students", fe.Path)
			require.Equal(t, tc.wantStatus, fe.StatusCode)

			require.Equal(t, 1, testutil.CollectAndCount(metrics.FetchTotal(), "robodir_fetch_total"))
			require.Equal(t, 1.0, testutil.ToFloat64(metrics.FetchTotal().WithLabelValues("/students", tc.outcome)))
		})
	}
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := api.NewClient(url, api.Options{}).Courses(context.Background())
	require.ErrorIs(t, err, api.ErrFetch)
	var fe *api.FetchError
	require.True(t, errors.As(err, &fe))
	require.Zero(t, fe.StatusCode)
}

func TestTimeoutIsFetchFailure(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	_, err := api.NewClient(srv.URL, api.Options{Timeout: 50 * time.Millisecond}).Students(context.Background())
	require.ErrorIs(t, err, api.ErrFetch)
}

func TestCancelledContextIsFetchFailure(t *testing.T) {
	srv := newMock(t, mockapi.DefaultFixtures(), mockapi.Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := api.NewClient(srv.URL, api.Options{}).Students(ctx)
	require.ErrorIs(t, err, api.ErrFetch)
	require.ErrorIs(t, err, context.Canceled)
}

func TestEndpointSendsRequestID(t *testing.T) {
	seen := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen <- r.URL.Path + " " + r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":9,"name":"Kinematics","description":"d","start_date":"s","end_date":"e"}]`))
	}))
	t.Cleanup(srv.Close)

	ep := api.CoursesEndpoint(api.NewClient(srv.URL, api.Options{}))
	require.Equal(t, "/courses", ep.Path())
	got, err := ep.Fetch(context.Background())
	require.NoError(t, err)
	require.Equal(t, []api.Course{{ID: 9, Name: "Kinematics", Description: "d", StartDate: "s", EndDate: "e"}}, got)
	line := <-seen
	require.Len(t, line, len("/courses ")+36)
	require.Equal(t, "/courses ", line[:len("/courses ")])
}

func TestSuccessfulFetchRecordsOK(t *testing.T) {
	srv := newMock(t, mockapi.DefaultFixtures(), mockapi.Options{})
	metrics := api.NewMetrics(prometheus.NewRegistry())

	_, err := api.StudentsEndpoint(api.NewClient(srv.URL, api.Options{Metrics: metrics})).Fetch(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1.0, testutil.ToFloat64(metrics.FetchTotal().WithLabelValues("/students", api.OutcomeOK)))
}
