package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/pt_BR"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	ptbr_translations "github.com/go-playground/validator/v10/translations/pt_BR"
)

var (
	phonePattern      = regexp.MustCompile(`^\(\d{2}\) \d{5}-\d{4}$`)
	cnpjPattern       = regexp.MustCompile(`^\d{2}\.\d{3}\.\d{3}/\d{4}-\d{2}$`)
	postalCodePattern = regexp.MustCompile(`^\d{5}-\d{3}$`)
)

// ErrMalformedBody is returned by Bind when the body is not valid JSON for dst.
var ErrMalformedBody = errors.New("malformed request body")

var (
	// trans is the singleton pt_BR translator for validation errors.
	trans ut.Translator

	// checker runs the ordered rule checks outside of request binding.
	// Rule messages are fixed, so it carries no translations.
	checker = newValidate()

	setupOnce sync.Once
	setupErr  error
)

func init() {
	locale := pt_BR.New()
	uni := ut.New(locale, locale)
	trans, _ = uni.GetTranslator("pt_BR")
}

// Setup registers the custom tags and pt_BR translations on Gin's binding
// engine. Only the first call does any work.
func Setup() error {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*govalidator.Validate)
		if !ok {
			setupErr = errors.New("gin binding engine is not go-playground/validator")
			return
		}
		configure(v)
		setupErr = registerTranslations(v)
	})
	return setupErr
}

func newValidate() *govalidator.Validate {
	v := govalidator.New()
	configure(v)
	return v
}

func configure(v *govalidator.Validate) {
	// Use JSON tag name for field names in error messages.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("telefone", matches(phonePattern))
	_ = v.RegisterValidation("cnpj", matches(cnpjPattern))
	_ = v.RegisterValidation("cep", matches(postalCodePattern))
}

func matches(re *regexp.Regexp) govalidator.Func {
	return func(fl govalidator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

func registerTranslations(v *govalidator.Validate) error {
	if err := ptbr_translations.RegisterDefaultTranslations(v, trans); err != nil {
		return err
	}
	custom := map[string]string{
		"telefone": "{0} deve estar no formato (XX) XXXXX-XXXX",
		"cnpj":     "{0} deve estar no formato XX.XXX.XXX/XXXX-XX",
		"cep":      "{0} deve estar no formato XXXXX-XXX",
	}
	for tag, text := range custom {
		text := text
		err := v.RegisterTranslation(tag, trans,
			func(u ut.Translator) error { return u.Add(tag, text, true) },
			func(u ut.Translator, fe govalidator.FieldError) string {
				msg, _ := u.T(fe.Tag(), fe.Field())
				return msg
			},
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// TranslateErrors takes a binding/validation error and returns a map of
// field name to human-readable error message. If the error is not a
// validation error, it returns a single-key map with "detail".
func TranslateErrors(err error) map[string]string {
	fields := make(map[string]string)

	var ve govalidator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			fields[fe.Field()] = fe.Translate(trans)
		}
		return fields
	}

	// Not a validation error (e.g., JSON syntax error).
	fields["detail"] = err.Error()
	return fields
}

// FieldNames returns the failing field names of a validation error in
// struct declaration order, or nil if err is not a validation error.
func FieldNames(err error) []string {
	var ve govalidator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}
	names := make([]string, 0, len(ve))
	seen := make(map[string]bool, len(ve))
	for _, fe := range ve {
		name := fe.Field()
		if i := strings.IndexByte(name, '['); i > 0 {
			name = name[:i]
		}
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// Bind binds and validates the request body into dst. It returns nil on
// success, a govalidator.ValidationErrors when a binding rule fails, or an
// error wrapping ErrMalformedBody when the body cannot be decoded.
func Bind(c *gin.Context, dst interface{}) error {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return nil
	}
	var ve govalidator.ValidationErrors
	if errors.As(err, &ve) {
		return ve
	}
	return fmt.Errorf("%w: %v", ErrMalformedBody, err)
}

// Rule is a single field check evaluated by Check. Tag uses the
// go-playground/validator syntax ("email", "min=6", "cnpj", ...).
type Rule struct {
	Value   interface{}
	Tag     string
	Message string
}

// RuleError reports the first failing Rule.
type RuleError struct {
	Message string
}

func (e *RuleError) Error() string { return e.Message }

// Check evaluates rules in order and returns the first failure.
func Check(rules ...Rule) *RuleError {
	for _, r := range rules {
		if err := checker.Var(r.Value, r.Tag); err != nil {
			return &RuleError{Message: r.Message}
		}
	}
	return nil
}
