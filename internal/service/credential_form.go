package service

import (
	"strings"
	"sync"

	validatorV10 "github.com/go-playground/validator/v10"
	"github.com/haierkeys/portfolio-dash/internal/domain"
	"github.com/haierkeys/portfolio-dash/pkg/code"
	"github.com/haierkeys/portfolio-dash/pkg/validator"
)

// Form field names, matching the request body keys
const (
	FieldExchange  = "exchange"
	FieldLabel     = "label"
	FieldAPIKey    = "apiKey"
	FieldAPISecret = "apiSecret"
)

var (
	formValidatorOnce sync.Once
	formValidator     *validator.Validator
	formValidatorErr  error
)

// credentialValidator builds the shared validator with the exchange_kind rule
func credentialValidator() (*validator.Validator, error) {
	formValidatorOnce.Do(func() {
		v := validator.New()
		formValidatorErr = v.RegisterRule("exchange_kind", func(fl validatorV10.FieldLevel) bool {
			return domain.ExchangeKind(fl.Field().String()).IsSupported()
		}, "{0} is not a supported exchange", "{0}不是受支持的交易所")
		formValidator = v
	})
	return formValidator, formValidatorErr
}

// CredentialForm stages one CredentialDraft for the lifetime of one modal
// session. It never touches the network.
// CredentialForm 凭证表单模型
type CredentialForm struct {
	mu    sync.Mutex
	open  bool
	draft domain.CredentialDraft
}

func NewCredentialForm() *CredentialForm {
	return &CredentialForm{draft: domain.DefaultDraft()}
}

// Open starts a modal session with a fresh draft. Opening an already open
// form keeps its draft.
func (f *CredentialForm) Open() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.open {
		f.draft = domain.DefaultDraft()
	}
	f.open = true
}

func (f *CredentialForm) IsOpen() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open
}

// Cancel discards the draft and closes the form
func (f *CredentialForm) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = domain.DefaultDraft()
	f.open = false
}

// Complete is called after a successful submission
func (f *CredentialForm) Complete() {
	f.Cancel()
}

// Reset 重置草稿，保持打开状态
func (f *CredentialForm) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = domain.DefaultDraft()
}

// Update sets one field by its request-body name
func (f *CredentialForm) Update(field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch field {
	case FieldExchange:
		f.draft.ExchangeKind = domain.ExchangeKind(strings.ToUpper(strings.TrimSpace(value)))
	case FieldLabel:
		f.draft.Label = value
	case FieldAPIKey:
		f.draft.APIKey = value
	case FieldAPISecret:
		f.draft.APISecret = value
	default:
		return code.ErrorInvalidParams.WithDetails("unknown field " + field)
	}
	return nil
}

// Draft returns a copy of the staged draft
func (f *CredentialForm) Draft() domain.CredentialDraft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// Validate checks the draft; the error is a validator.FieldErrors keyed by
// field name when the draft is rejected.
func (f *CredentialForm) Validate() error {
	v, err := credentialValidator()
	if err != nil {
		return err
	}
	draft := f.Draft()
	return v.Check(&draft, code.GetGlobalDefaultLang())
}
