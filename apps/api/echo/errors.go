package echoapi

import (
	"fmt"
	"net/http"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/wiseconnect/core"
)

const invalidDataMsg = "invalid data"

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
// Server errors are logged but their details are never sent to the client.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		body := echo.Map{}

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			if msg, ok := origErr.Message.(string); ok {
				body["error"] = msg
			} else {
				body["error"] = fmt.Sprint(origErr.Message)
			}
		case validator.ValidationErrors:
			fldErrs := make(map[string]string, len(origErr))
			for _, vErr := range origErr {
				fldErrs[fieldKey(vErr)] = vErr.Translate(translator)
			}
			code = http.StatusBadRequest
			body["error"] = invalidDataMsg
			body["fields"] = fldErrs
		case *core.ValidationError:
			code = http.StatusBadRequest
			body["error"] = origErr.Error()
			if flds := origErr.FieldMap(); flds != nil {
				body["fields"] = flds
			}
		default: // any other error is a server error
			code = http.StatusInternalServerError
			msg := http.StatusText(http.StatusInternalServerError)
			body["error"] = msg

			extras := map[string]interface{}{
				"method": ctx.Request().Method,
				"route":  ctx.Path(),
			}
			logger.Error(msg, errors.Wrap(err, msg), extras)

			// shutting down...
			if core.IsShutdown(err) {
				signalShutdown()
			}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, body)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}

// fieldKey returns the JSON path of the invalid field relative to the validated struct, eg: answers[0].questionId
func fieldKey(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}
