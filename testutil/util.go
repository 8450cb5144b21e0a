package testutil

import (
	"context"
	"testing"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/trezcool/wiseconnect/core"
	"github.com/trezcool/wiseconnect/core/community"
	"github.com/trezcool/wiseconnect/core/lesson"
	"github.com/trezcool/wiseconnect/core/quiz"
	"github.com/trezcool/wiseconnect/core/user"
	logsvc "github.com/trezcool/wiseconnect/services/logger"
	"github.com/trezcool/wiseconnect/services/metrics"
	inmemdb "github.com/trezcool/wiseconnect/storage/database/inmem"
)

// Env holds a fully wired application backed by a freshly seeded in-memory DB.
type Env struct {
	Conf       *core.Config
	Logger     core.Logger
	Validate   *validator.Validate
	Translator ut.Translator
	Metrics    *metrics.Metrics

	DB            *inmemdb.DB
	UserRepo      user.Repository
	QuizRepo      quiz.Repository
	LessonRepo    lesson.Repository
	CommunityRepo community.Repository

	UserSvc      *user.Service
	QuizSvc      *quiz.Service
	LessonSvc    *lesson.Service
	CommunitySvc *community.Service
}

func Config() *core.Config {
	return &core.Config{
		AppName:  "WiseConnect",
		Env:      "TEST",
		Build:    "test",
		Debug:    true,
		TestMode: true,
		Server: core.ServerConfig{
			Host:            "localhost",
			Address:         ":0",
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    5 * time.Second,
			ShutdownTimeout: 5 * time.Second,
			DisableReqLogs:  true,
			AllowOrigins:    []string{"*"},
		},
	}
}

// NewValidator returns a validator with every application validator registered.
func NewValidator() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	return validate, translator
}

// NewLogger returns a logger discarding its output.
func NewLogger(conf *core.Config) core.Logger {
	std, _ := test.NewNullLogger()
	logger := logsvc.NewRollbarLogger(std, "TEST", conf)
	logger.Enable(false)
	return logger
}

func NewEnv(t *testing.T) *Env {
	t.Helper()

	db, err := inmemdb.Open("")
	if err != nil {
		t.Fatalf("inmemdb.Open(): %v", err)
	}

	env := &Env{
		Conf:    Config(),
		DB:      db,
		Metrics: metrics.New(),
	}
	env.Logger = NewLogger(env.Conf)
	env.Validate, env.Translator = NewValidator()

	env.UserRepo = inmemdb.NewUserRepository(db)
	env.QuizRepo = inmemdb.NewQuizRepository(db)
	env.LessonRepo = inmemdb.NewLessonRepository(db)
	env.CommunityRepo = inmemdb.NewCommunityRepository(db)

	env.UserSvc = user.NewService(env.UserRepo)
	env.QuizSvc = quiz.NewService(env.QuizRepo, env.UserSvc)
	env.LessonSvc = lesson.NewService(env.LessonRepo)
	env.CommunitySvc = community.NewService(env.CommunityRepo)
	return env
}

func CreateUser(t *testing.T, repo user.Repository, name string, textSize ...string) user.User {
	t.Helper()

	size := user.TextSizeMedium
	if len(textSize) > 0 {
		size = textSize[0]
	}
	usr, err := repo.CreateUser(context.Background(), user.User{Name: name, TextSizePreference: size})
	if err != nil {
		t.Fatalf("CreateUser(): %v", err)
	}
	return usr
}

func UpdateProgress(t *testing.T, repo lesson.Repository, userID, lessonID string, step int, completed bool) lesson.Progress {
	t.Helper()

	prog, err := repo.UpdateProgress(context.Background(), userID, lessonID, step, completed)
	if err != nil {
		t.Fatalf("UpdateProgress(): %v", err)
	}
	return prog
}

func CreatePost(t *testing.T, repo community.Repository, userID, userName, category, title string) community.Post {
	t.Helper()

	post, err := repo.CreatePost(context.Background(), community.Post{
		UserID:   userID,
		UserName: userName,
		Category: category,
		Title:    title,
		Content:  title + "?",
	})
	if err != nil {
		t.Fatalf("CreatePost(): %v", err)
	}
	return post
}
