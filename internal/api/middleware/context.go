package middleware

import "context"

type ctxKey int

const (
	ctxKeyBearerToken ctxKey = iota
	ctxKeyRequestID
)

// BearerToken возвращает токен входящего запроса, пустую строку если его нет
func BearerToken(ctx context.Context) string {
	v, _ := ctx.Value(ctxKeyBearerToken).(string)
	return v
}

// WithBearerToken кладёт токен в контекст
func WithBearerToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, ctxKeyBearerToken, token)
}

func RequestID(ctx context.Context) string {
	v, _ := ctx.Value(ctxKeyRequestID).(string)
	return v
}
