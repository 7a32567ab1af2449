package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var (
	personNamePattern = regexp.MustCompile(`^[a-zA-Z\s].{2,50}$`)
	taskNamePattern   = regexp.MustCompile(`^[a-zA-Z\s].{2,100}$`)
	emailPattern      = regexp.MustCompile(`^[A-Za-z0-9_-]+(\.[A-Za-z0-9_-]+)*@[^-][A-Za-z0-9-]+(\.[A-Za-z0-9-]+)*(\.[A-Za-z]{2,})$`)
)

var messages = map[string]string{
	"required":     "is required",
	"notblank":     "must not be blank",
	"username":     "must be 5-20 characters of letters, digits or single '.', '_' or '-' between them",
	"password":     "must be 8-16 characters with an upper-case letter, a lower-case letter, a digit and a special character",
	"personname":   "must start with a letter and be 3-51 characters long",
	"taskname":     "must start with a letter and be 3-101 characters long",
	"email_strict": "must be a valid email address",
	"uuid":         "must be a valid UUID",
}

var registerOnce sync.Once

// Register installs the custom tags on gin's validator engine.
func Register() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = errors.New("unexpected binding validator engine")
			return
		}
		err = RegisterOn(v)
	})
	return err
}

// RegisterOn installs the custom tags on v. Field errors are reported under
// their JSON names.
func RegisterOn(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	tags := map[string]validator.Func{
		"username":     fieldString(IsUsername),
		"password":     fieldString(IsPassword),
		"personname":   fieldString(personNamePattern.MatchString),
		"taskname":     fieldString(taskNamePattern.MatchString),
		"email_strict": fieldString(IsEmail),
		"notblank":     validators.NotBlank,
	}
	// opt_ variants accept blank input, which partial updates treat as absent
	for _, tag := range []string{"username", "password", "personname", "taskname", "email_strict"} {
		tags[optionalPrefix+tag] = blankOr(tags[tag])
	}
	for tag, fn := range tags {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("failed to register %s validation: %w", tag, err)
		}
	}
	return nil
}

const optionalPrefix = "opt_"

func blankOr(fn validator.Func) validator.Func {
	return func(fl validator.FieldLevel) bool {
		if strings.TrimSpace(fl.Field().String()) == "" {
			return true
		}
		return fn(fl)
	}
}

func fieldString(check func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return check(fl.Field().String())
	}
}

// IsUsername accepts 5-20 characters: letters and digits, with '.', '_' or '-'
// allowed only between two alphanumerics.
func IsUsername(s string) bool {
	if len(s) < 5 || len(s) > 20 {
		return false
	}
	prevSpecial := false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case isASCIIAlnum(ch):
			prevSpecial = false
		case ch == '.' || ch == '_' || ch == '-':
			if i == 0 || i == len(s)-1 || prevSpecial {
				return false
			}
			prevSpecial = true
		default:
			return false
		}
	}
	return true
}

// IsPassword accepts 8-16 non-space characters containing a digit, an
// upper-case letter, a lower-case letter and a special character other than ':'.
func IsPassword(s string) bool {
	runes := []rune(s)
	if len(runes) < 8 || len(runes) > 16 {
		return false
	}
	var digit, upper, lower, special bool
	for _, r := range runes {
		switch {
		case unicode.IsSpace(r):
			return false
		case r >= '0' && r <= '9':
			digit = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r != '_' && r != ':':
			special = true
		}
	}
	return digit && upper && lower && special
}

// IsEmail accepts addresses whose local part is at most 64 characters.
func IsEmail(s string) bool {
	at := strings.IndexByte(s, '@')
	if at < 1 || at > 64 {
		return false
	}
	return emailPattern.MatchString(s)
}

func isASCIIAlnum(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9')
}

// Describe turns a binding error into a message and per-field details.
func Describe(err error) (string, map[string]string) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Invalid request body", nil
	}

	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		msg, ok := messages[strings.TrimPrefix(fe.Tag(), optionalPrefix)]
		if !ok {
			msg = fmt.Sprintf("failed on the '%s' rule", fe.Tag())
		}
		details[fe.Field()] = msg
	}
	return "Validation failed", details
}
