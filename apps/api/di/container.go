package di

import (
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.uber.org/dig"

	echoapi "github.com/trezcool/wiseconnect/apps/api/echo"
	"github.com/trezcool/wiseconnect/core"
	"github.com/trezcool/wiseconnect/core/community"
	"github.com/trezcool/wiseconnect/core/lesson"
	"github.com/trezcool/wiseconnect/core/quiz"
	"github.com/trezcool/wiseconnect/core/user"
	logsvc "github.com/trezcool/wiseconnect/services/logger"
	"github.com/trezcool/wiseconnect/services/metrics"
	inmemdb "github.com/trezcool/wiseconnect/storage/database/inmem"
)

type DBLoggerParam struct {
	dig.In
	Logger core.Logger `name:"dbLogger"`
}

func newLogger(std *logrus.Logger, conf *core.Config) core.Logger {
	logger := logsvc.NewRollbarLogger(std, "API", conf)
	logger.Enable(!conf.Debug)
	return logger
}

func newDBLogger(std *logrus.Logger, conf *core.Config) core.Logger {
	logger := logsvc.NewRollbarLogger(std, "DB", conf)
	logger.Enable(!conf.Debug)
	return logger
}

func newDB(conf *core.Config, loggerParam DBLoggerParam) *inmemdb.DB {
	db, err := inmemdb.Open(conf.SeedFile)
	if err != nil {
		loggerParam.Logger.Fatal(fmt.Sprintf("loading seed data: %v", err), err)
	}
	return db
}

func newUserCreator(svc *user.Service) quiz.UserCreator {
	return svc
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(logsvc.NewStdLogger))
	must(c.Provide(newLogger))
	must(c.Provide(newDBLogger, dig.Name("dbLogger")))
	must(c.Provide(validator.New))
	must(c.Provide(core.NewTranslator))
	must(c.Provide(metrics.New))

	// storage
	must(c.Provide(newDB))
	must(c.Provide(inmemdb.NewUserRepository))
	must(c.Provide(inmemdb.NewQuizRepository))
	must(c.Provide(inmemdb.NewLessonRepository))
	must(c.Provide(inmemdb.NewCommunityRepository))

	// services
	must(c.Provide(user.NewService))
	must(c.Provide(newUserCreator))
	must(c.Provide(quiz.NewService))
	must(c.Provide(lesson.NewService))
	must(c.Provide(community.NewService))

	must(c.Provide(echoapi.NewServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
