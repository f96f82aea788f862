package pkglog

import "context"

type ctxKey int

const (
	correlationKey ctxKey = iota
	sessionKey
)

// SetCorrelationID stores the request correlation id; log records written
// with the returned context carry it as _cID.
func SetCorrelationID(ctx context.Context, cid string) context.Context {
	return context.WithValue(ctx, correlationKey, cid)
}

// GetCorrelationID returns the correlation id of ctx, or "".
func GetCorrelationID(ctx context.Context) string {
	cid, _ := ctx.Value(correlationKey).(string)
	return cid
}

// SetSessionID stores the dashboard session id; log records written with the
// returned context carry it as session_id. An empty id leaves ctx unchanged.
func SetSessionID(ctx context.Context, sid string) context.Context {
	if sid == "" {
		return ctx
	}
	return context.WithValue(ctx, sessionKey, sid)
}

// GetSessionID returns the dashboard session id of ctx, or "".
func GetSessionID(ctx context.Context) string {
	sid, _ := ctx.Value(sessionKey).(string)
	return sid
}
