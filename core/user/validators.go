package user

import (
	"fmt"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/wiseconnect/core"
)

var (
	textSizeTag  = "textsize"
	textSizeText = fmt.Sprintf("must be one of: %s", strings.Join(TextSizes, ", "))
)

// InitValidators registers the user validators. core.InitValidators must be called first.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(textSizeTag, textSizeValidation)
	core.RegisterCustomTranslation(validate, translator, textSizeTag, textSizeText)
}

func textSizeValidation(fl validator.FieldLevel) bool {
	return IsValidTextSize(fl.Field().String())
}

func IsValidTextSize(size string) bool {
	for _, s := range TextSizes {
		if s == size {
			return true
		}
	}
	return false
}
