package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifica um erro de aplicação
type Kind string

const (
	KindValidation    Kind = "validation"    // Entrada malformada ou incompleta
	KindNotFound      Kind = "not_found"     // Recurso inexistente
	KindAuthorization Kind = "authorization" // Chamador não é dono do recurso
	KindConflict      Kind = "conflict"      // Duplicidade ou estado já avançado
	KindInvalidState  Kind = "invalid_state" // Transição não permitida pela máquina de estados
	KindPersistence   Kind = "persistence"   // Falha de escrita/leitura no armazenamento
)

// Sentinelas por categoria, usadas com errors.Is
var (
	ErrValidation    = &Error{Kind: KindValidation}
	ErrNotFound      = &Error{Kind: KindNotFound}
	ErrAuthorization = &Error{Kind: KindAuthorization}
	ErrConflict      = &Error{Kind: KindConflict}
	ErrInvalidState  = &Error{Kind: KindInvalidState}
	ErrPersistence   = &Error{Kind: KindPersistence}
)

// Error é o erro de aplicação com categoria e mensagem legível
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is compara por identidade ou, quando o alvo é uma sentinela de categoria, por Kind.
// InvalidState também é considerado um Conflict.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if e == t {
		return true
	}
	if t.Message != "" || t.Err != nil {
		return false
	}
	if t.Kind == e.Kind {
		return true
	}
	return t.Kind == KindConflict && e.Kind == KindInvalidState
}

// Wrap cria uma cópia do erro anexando a causa
func (e *Error) Wrap(err error) *Error {
	return &Error{Kind: e.Kind, Message: e.Message, Err: &wrapped{sentinel: e, cause: err}}
}

// wrapped mantém a sentinela original alcançável por errors.Is
type wrapped struct {
	sentinel *Error
	cause    error
}

func (w *wrapped) Error() string   { return w.cause.Error() }
func (w *wrapped) Unwrap() []error { return []error{w.sentinel, w.cause} }

func newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Validation cria um erro de validação
func Validation(format string, args ...interface{}) *Error {
	return newf(KindValidation, format, args...)
}

// NotFound cria um erro de recurso não encontrado
func NotFound(format string, args ...interface{}) *Error {
	return newf(KindNotFound, format, args...)
}

// Authorization cria um erro de autorização
func Authorization(format string, args ...interface{}) *Error {
	return newf(KindAuthorization, format, args...)
}

// Conflict cria um erro de conflito
func Conflict(format string, args ...interface{}) *Error {
	return newf(KindConflict, format, args...)
}

// InvalidState cria um erro de transição de estado inválida
func InvalidState(format string, args ...interface{}) *Error {
	return newf(KindInvalidState, format, args...)
}

// Persistence cria um erro de persistência com a causa original
func Persistence(message string, err error) *Error {
	return &Error{Kind: KindPersistence, Message: message, Err: err}
}

// KindOf retorna a categoria do erro; erros desconhecidos são tratados como persistência
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindPersistence
}

// Message retorna a mensagem legível do erro de aplicação mais externo
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return err.Error()
}

// HTTPStatus mapeia a categoria do erro para o status HTTP correspondente
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindAuthorization:
		return http.StatusForbidden
	case KindConflict, KindInvalidState:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// OrPersistence preserva erros de aplicação e classifica os demais como falha de persistência
func OrPersistence(message string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return err
	}
	return Persistence(message, err)
}
