package echoapi_test

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	echoapi "github.com/trezcool/wiseconnect/apps/api/echo"
	"github.com/trezcool/wiseconnect/core"
	"github.com/trezcool/wiseconnect/core/lesson"
	logsvc "github.com/trezcool/wiseconnect/services/logger"
	"github.com/trezcool/wiseconnect/testutil"
)

// failingLessonRepo fails every ListLessons call with err.
type failingLessonRepo struct {
	lesson.Repository
	err error
}

func (repo failingLessonRepo) ListLessons(context.Context) ([]lesson.Lesson, error) {
	return nil, repo.err
}

// stepLosingLessonRepo drops the last step of every lesson.
type stepLosingLessonRepo struct {
	lesson.Repository
}

func (repo stepLosingLessonRepo) ListLessonSteps(ctx context.Context, lessonID string) ([]lesson.Step, error) {
	steps, err := repo.Repository.ListLessonSteps(ctx, lessonID)
	if err != nil || len(steps) == 0 {
		return steps, err
	}
	return steps[:len(steps)-1], nil
}

func setupFailing(t *testing.T, err error) (*echoapi.Server, *test.Hook) {
	env := testutil.NewEnv(t)

	std, hook := test.NewNullLogger()
	logger := logsvc.NewRollbarLogger(std, "TEST", env.Conf)
	logger.Enable(false)

	d := deps(env)
	d.Logger = logger
	d.LessonSvc = lesson.NewService(failingLessonRepo{Repository: env.LessonRepo, err: err})
	return echoapi.NewServer(d), hook
}

func Test_server_home(t *testing.T) {
	app, _ := setup(t)

	req, rec := newRequest(http.MethodGet, "/")
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Welcome to WiseConnect API!", rec.Body.String())
}

func Test_server_routes(t *testing.T) {
	app, _ := setup(t)

	tests := []httpTest{
		{
			name:     "health",
			path:     "/api/health",
			wantCode: http.StatusOK,
			wantData: []byte(`{"status": "ok", "build": "test"}`),
		},
		{
			name:     "unknown route",
			path:     "/api/nothing-here",
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "Not Found"}),
		},
		{
			name:     "wrong method",
			method:   http.MethodDelete,
			path:     "/api/quiz/questions",
			wantCode: http.StatusMethodNotAllowed,
			wantData: marchallObj(t, httpErr{Error: "Method Not Allowed"}),
		},
	}
	runHTTPTests(t, app, tests)
}

func Test_server_internalError(t *testing.T) {
	app, hook := setupFailing(t, errors.New("connection reset: secret-db-host:5432"))

	req, rec := newRequest(http.MethodGet, "/api/lessons")
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{
		wantCode: http.StatusInternalServerError,
		wantData: marchallObj(t, httpErr{Error: "Internal Server Error"}),
	}, rec)
	assert.NotContains(t, rec.Body.String(), "secret-db-host")

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Equal(t, "/api/lessons", entry.Data["route"])
	assert.Equal(t, http.MethodGet, entry.Data["method"])
	if err, ok := entry.Data[logrus.ErrorKey].(error); assert.True(t, ok) {
		assert.True(t, strings.Contains(err.Error(), "secret-db-host"))
	}

	// the server keeps running
	select {
	case <-app.ShutdownSignal():
		t.Fatal("unexpected shutdown signal")
	default:
	}
}

func Test_server_shutdownError(t *testing.T) {
	app, _ := setupFailing(t, core.NewShutdownError("integrity issue"))

	req, rec := newRequest(http.MethodGet, "/api/lessons")
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	select {
	case <-app.ShutdownSignal():
	case <-time.After(time.Second):
		t.Fatal("shutdown was not signaled")
	}

	// a second shutdown error does not block while one is pending
	req, rec = newRequest(http.MethodGet, "/api/lessons")
	app.ServeHTTP(rec, req)
	req, rec = newRequest(http.MethodGet, "/api/lessons")
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func Test_server_corruptLessonShutsDown(t *testing.T) {
	env := testutil.NewEnv(t)
	d := deps(env)
	d.LessonSvc = lesson.NewService(stepLosingLessonRepo{Repository: env.LessonRepo})
	app := echoapi.NewServer(d)

	req, rec := newRequest(http.MethodGet, "/api/lessons/lesson-video-call")
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{
		wantCode: http.StatusInternalServerError,
		wantData: marchallObj(t, httpErr{Error: "Internal Server Error"}),
	}, rec)

	select {
	case <-app.ShutdownSignal():
	case <-time.After(time.Second):
		t.Fatal("shutdown was not signaled")
	}
}

func Test_server_metrics(t *testing.T) {
	app, env := setup(t)

	for i := 0; i < 2; i++ {
		req, rec := newRequest(http.MethodGet, "/api/lessons/lesson-email")
		app.ServeHTTP(rec, req)
	}
	req, rec := newRequest(http.MethodGet, "/api/lessons/lesson-nope")
	app.ServeHTTP(rec, req)
	req, rec = newRequest(http.MethodGet, "/api/nothing-here")
	app.ServeHTTP(rec, req)

	counter := env.Metrics.RequestCounter
	assert.Equal(t, float64(2), promtest.ToFloat64(counter.WithLabelValues(http.MethodGet, "/api/lessons/:id", "200")))
	assert.Equal(t, float64(1), promtest.ToFloat64(counter.WithLabelValues(http.MethodGet, "/api/lessons/:id", "404")))
	// one series per (method, route)
	assert.Equal(t, 2, promtest.CollectAndCount(env.Metrics.RequestDuration))

	req, rec = newRequest(http.MethodPost, "/api/lessons/lesson-email/progress",
		[]byte(`{"userId": "u1", "currentStep": 5, "completed": true}`))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), promtest.ToFloat64(env.Metrics.LessonProgressUpdate.WithLabelValues("true")))
}
