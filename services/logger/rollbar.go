package logsvc

import (
	"os"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"
	"github.com/sirupsen/logrus"

	"github.com/trezcool/wiseconnect/core"
	"github.com/trezcool/wiseconnect/core/user"
)

// RollbarLogger writes log lines with logrus and reports them to Rollbar when enabled.
type RollbarLogger struct {
	std *logrus.Entry
}

var _ core.Logger = (*RollbarLogger)(nil)

// NewStdLogger returns a logrus logger writing text lines in debug mode and JSON lines otherwise.
func NewStdLogger(conf *core.Config) *logrus.Logger {
	std := logrus.New()
	std.SetOutput(os.Stdout)
	if conf.Debug {
		std.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		std.SetLevel(logrus.DebugLevel)
	} else {
		std.SetFormatter(&logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
		std.SetLevel(logrus.InfoLevel)
	}
	return std
}

// NewRollbarLogger returns a RollbarLogger tagging every line with component.
func NewRollbarLogger(std *logrus.Logger, component string, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetServerHost(conf.Server.Host)
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetStackTracer(errors.StackTracer)
	return &RollbarLogger{
		std: std.WithFields(logrus.Fields{"app": conf.AppName, "component": component}),
	}
}

func (l RollbarLogger) Enable(enabled bool) {
	rollbar.SetEnabled(enabled)
}

// expected fmt: msg | error, map[string]interface{}, user.User
func (l RollbarLogger) prepare(msg string, args []interface{}) ([]interface{}, *logrus.Entry) {
	var usrSet bool
	entry := l.std
	newArgs := make([]interface{}, 0, len(args)+1)
	newArgs = append(newArgs, msg)
	for _, arg := range args {
		switch a := arg.(type) {
		case user.User:
			// set the User the message relates to
			if !usrSet { // only set one User
				var email string
				if a.Email != nil {
					email = *a.Email
				}
				rollbar.SetPerson(a.ID, a.Name, email)
				entry = entry.WithField("user_id", a.ID)
				usrSet = true
			}
			continue
		case error:
			entry = entry.WithError(a)
		case map[string]interface{}:
			entry = entry.WithFields(a)
		}
		newArgs = append(newArgs, arg)
	}
	if !usrSet {
		rollbar.ClearPerson()
	}
	return newArgs, entry
}

func (l RollbarLogger) Debug(msg string, args ...interface{}) {
	rArgs, entry := l.prepare(msg, args)
	rollbar.Debug(rArgs...)
	entry.Debug(msg)
}

func (l RollbarLogger) Info(msg string, args ...interface{}) {
	rArgs, entry := l.prepare(msg, args)
	rollbar.Info(rArgs...)
	entry.Info(msg)
}

func (l RollbarLogger) Warn(msg string, args ...interface{}) {
	rArgs, entry := l.prepare(msg, args)
	rollbar.Warning(rArgs...)
	entry.Warn(msg)
}

func (l RollbarLogger) Error(msg string, args ...interface{}) {
	rArgs, entry := l.prepare(msg, args)
	rollbar.Error(rArgs...)
	entry.Error(msg)
}

func (l RollbarLogger) Fatal(msg string, args ...interface{}) {
	rArgs, entry := l.prepare(msg, args)
	rollbar.Critical(rArgs...)
	rollbar.Wait()
	entry.Fatal(msg)
}
