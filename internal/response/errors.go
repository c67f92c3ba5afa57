package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden        ErrCode = "FORBIDDEN"
	ErrPermissionDenied ErrCode = "PERMISSION_DENIED"

	// ─── Validation ────────────────────────────────────────────────────
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"
	ErrWrongPassword  ErrCode = "WRONG_PASSWORD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrSchoolNotFound ErrCode = "SCHOOL_NOT_FOUND"
	ErrEmailTaken     ErrCode = "EMAIL_TAKEN"
	ErrCNPJTaken      ErrCode = "CNPJ_TAKEN"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Email ou senha inválidos"
	case ErrTokenRequired:
		return "Token não fornecido"
	case ErrTokenInvalid:
		return "Token inválido"

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrForbidden:
		return "Acesso negado"
	case ErrPermissionDenied:
		return "Permissão insuficiente para esta operação"

	// ─── Validation ────────────────────────────────────────────────────
	case ErrInvalidPayload:
		return "Corpo da requisição inválido"
	case ErrWrongPassword:
		return "Senha atual incorreta"

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrSchoolNotFound:
		return "Escola não encontrada"
	case ErrEmailTaken:
		return "Email já cadastrado"
	case ErrCNPJTaken:
		return "CNPJ já cadastrado"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Muitas requisições. Tente novamente em instantes."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "Erro interno do servidor"
	default:
		return "Erro inesperado"
	}
}
