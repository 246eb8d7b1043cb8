// Package bind provides JSON bind and validation helpers for handlers
package bind

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	perr "deyimci/internal/platform/errors"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// FieldLevel aliases validator.FieldLevel
type FieldLevel = validator.FieldLevel

// FieldError aliases validator.FieldError
type FieldError = validator.FieldError

// ValidatorSvc holds a singleton validator and translator
type ValidatorSvc struct {
	Validator  *validator.Validate
	Translator ut.Translator
}

var (
	vOnce sync.Once
	vSvc  *ValidatorSvc
)

// Init initializes the singleton validator with english translations and json tag names
func Init() *ValidatorSvc {
	vOnce.Do(func() {
		enLoc := en.New()
		uni := ut.New(enLoc, enLoc)
		trans, _ := uni.GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())

		// prefer json tag names in messages
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag := fld.Tag.Get("json")
			if tag == "-" || tag == "" {
				return fld.Name
			}
			if idx := strings.Index(tag, ","); idx >= 0 {
				tag = tag[:idx]
			}
			return tag
		})

		_ = en_translations.RegisterDefaultTranslations(v, trans)

		registerMatchMode(v, trans)

		vSvc = &ValidatorSvc{Validator: v, Translator: trans}
	})
	return vSvc
}

// Get returns the validator singleton, initializing on first use
func Get() *ValidatorSvc {
	if vSvc == nil {
		return Init()
	}
	return vSvc
}

// RegisterValidation registers a custom tag
func RegisterValidation(tag string, fn validator.Func) error {
	return Get().Validator.RegisterValidation(tag, fn)
}

// registerMatchMode validates matching-mode strings ("exact" | "token-window")
func registerMatchMode(v *validator.Validate, trans ut.Translator) {
	_ = v.RegisterValidation("matchmode", func(fl FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || s == "exact" || s == "token-window"
	})
	_ = v.RegisterTranslation("matchmode", trans,
		func(ut ut.Translator) error {
			return ut.Add("matchmode", "{0} must be exact or token-window", true)
		},
		func(ut ut.Translator, fe FieldError) string {
			t, _ := ut.T("matchmode", fe.Field())
			return t
		},
	)
}

// JSONOptions controls parsing behavior
type JSONOptions struct {
	MaxBytes        int64 // default 1MB
	DisallowUnknown bool  // default true
	AllowEmptyBody  bool  // default false
}

func defaultJSONOptions() JSONOptions {
	return JSONOptions{
		MaxBytes:        1 << 20,
		DisallowUnknown: true,
		AllowEmptyBody:  false,
	}
}

// ParseJSON decodes JSON into T, validates it, and maps failures to project errors
func ParseJSON[T any](r *http.Request, opts ...JSONOptions) (T, error) {
	var zero T
	o := defaultJSONOptions()
	if len(opts) > 0 {
		o = opts[0]
	}
	defer func() { _, _ = io.Copy(io.Discard, r.Body) }()

	body := http.MaxBytesReader(nil, r.Body, o.MaxBytes)
	dec := json.NewDecoder(body)
	if o.DisallowUnknown {
		dec.DisallowUnknownFields()
	}

	var in T
	if err := dec.Decode(&in); err != nil {
		if errors.Is(err, io.EOF) && o.AllowEmptyBody {
			return in, Validate(in)
		}
		return zero, perr.Wrapf(err, perr.ErrorCodeJSON, "invalid json body")
	}
	if dec.More() {
		return zero, perr.JSONErrf("unexpected trailing json content")
	}

	if err := Validate(in); err != nil {
		return zero, err
	}
	return in, nil
}

// Validate runs struct validation and maps the first failure to a project error
func Validate(in any) error {
	svc := Get()
	err := svc.Validator.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return perr.WithField(
			perr.Newf(perr.ErrorCodeValidation, "%s", fe.Translate(svc.Translator)),
			fe.Field(),
		)
	}
	return perr.Wrapf(err, perr.ErrorCodeValidation, "validation failed")
}
