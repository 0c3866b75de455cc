// Package validator wraps go-playground/validator with json field names and
// en / zh translated messages. It also satisfies gin's binding.StructValidator.
package validator

import (
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	validatorV10 "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	"github.com/pkg/errors"
)

// Locale used when the requested one has no translator
const DefaultLocale = "en"

// FieldErrors maps a json field name to its translated message
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fe[k])
	}
	return strings.Join(parts, "; ")
}

// Validator 结构体验证器
type Validator struct {
	once     sync.Once
	initErr  error
	validate *validatorV10.Validate
	uni      *ut.UniversalTranslator
}

// New creates a validator; the engine is built lazily on first use
func New() *Validator {
	return &Validator{}
}

func (v *Validator) lazyinit() {
	v.once.Do(func() {
		validate := validatorV10.New()
		validate.SetTagName("binding")
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})

		uni := ut.New(en.New(), en.New(), zh.New())
		enTran, _ := uni.GetTranslator("en")
		zhTran, _ := uni.GetTranslator("zh")

		if err := en_translations.RegisterDefaultTranslations(validate, enTran); err != nil {
			v.initErr = errors.Wrap(err, "register en translations")
			return
		}
		if err := zh_translations.RegisterDefaultTranslations(validate, zhTran); err != nil {
			v.initErr = errors.Wrap(err, "register zh translations")
			return
		}

		v.validate = validate
		v.uni = uni
	})
}

// Engine returns the underlying *validator.Validate
func (v *Validator) Engine() any {
	v.lazyinit()
	return v.validate
}

// ValidateStruct validates a struct or a pointer to one; other kinds pass
func (v *Validator) ValidateStruct(obj any) error {
	if obj == nil {
		return nil
	}
	val := reflect.ValueOf(obj)
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return nil
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return nil
	}

	v.lazyinit()
	if v.initErr != nil {
		return v.initErr
	}
	return v.validate.Struct(obj)
}

// Check validates obj and returns FieldErrors translated into locale
// Check 验证并返回翻译后的字段错误
func (v *Validator) Check(obj any, locale string) error {
	err := v.ValidateStruct(obj)
	if err == nil {
		return nil
	}
	if fe := v.Translate(err, locale); fe != nil {
		return fe
	}
	return err
}

// Translate converts validation errors into FieldErrors. It returns nil when
// err is not a validation error.
func (v *Validator) Translate(err error, locale string) FieldErrors {
	var verrs validatorV10.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	trans := v.translator(locale)
	out := make(FieldErrors, len(verrs))
	for _, e := range verrs {
		out[e.Field()] = e.Translate(trans)
	}
	return out
}

func (v *Validator) translator(locale string) ut.Translator {
	v.lazyinit()
	if locale == "zh_cn" {
		locale = "zh"
	}
	trans, found := v.uni.GetTranslator(locale)
	if !found {
		trans, _ = v.uni.GetTranslator(DefaultLocale)
	}
	return trans
}

// RegisterRule adds a custom tag with its en and zh messages. The messages
// may use {0} for the field name.
// RegisterRule 注册自定义验证规则
func (v *Validator) RegisterRule(tag string, fn validatorV10.Func, enMsg, zhMsg string) error {
	v.lazyinit()
	if v.initErr != nil {
		return v.initErr
	}
	if err := v.validate.RegisterValidation(tag, fn); err != nil {
		return errors.Wrapf(err, "register rule %s", tag)
	}

	for locale, msg := range map[string]string{"en": enMsg, "zh": zhMsg} {
		if msg == "" {
			continue
		}
		trans, _ := v.uni.GetTranslator(locale)
		text := msg
		err := v.validate.RegisterTranslation(tag, trans,
			func(t ut.Translator) error {
				return t.Add(tag, text, true)
			},
			func(t ut.Translator, fe validatorV10.FieldError) string {
				s, err := t.T(tag, fe.Field())
				if err != nil {
					return fe.Error()
				}
				return s
			})
		if err != nil {
			return errors.Wrapf(err, "register %s translation for %s", locale, tag)
		}
	}
	return nil
}
