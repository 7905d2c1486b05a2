// Package auth decides who may use the admin API.
//
// Every admin route goes through one Policy. The default policy is an email
// allow-list read from ADMIN_EMAILS.
package auth

import (
	"context"
	"strings"
)

// Principal is the authenticated caller.
type Principal struct {
	UserID string
	Email  string
}

// Policy answers the single admin capability question.
type Policy interface {
	CanAdminister(p Principal) bool
}

// EmailAllowList grants admin rights to a fixed set of addresses.
// Comparison ignores case and surrounding spaces.
type EmailAllowList struct {
	emails map[string]struct{}
}

func NewEmailAllowList(emails []string) *EmailAllowList {
	l := &EmailAllowList{emails: make(map[string]struct{}, len(emails))}
	for _, e := range emails {
		if e = normalizeEmail(e); e != "" {
			l.emails[e] = struct{}{}
		}
	}
	return l
}

// ParseEmailAllowList builds the list from a comma separated value such as
// the ADMIN_EMAILS variable.
func ParseEmailAllowList(raw string) *EmailAllowList {
	return NewEmailAllowList(strings.Split(raw, ","))
}

func (l *EmailAllowList) CanAdminister(p Principal) bool {
	email := normalizeEmail(p.Email)
	if email == "" {
		return false
	}
	_, ok := l.emails[email]
	return ok
}

func (l *EmailAllowList) Len() int {
	return len(l.emails)
}

func normalizeEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}

type principalKey struct{}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
