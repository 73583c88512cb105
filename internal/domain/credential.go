package domain

import "time"

// Credential — bearer-токен Commerce API с моментом истечения.
// Значение заменяется целиком при обновлении и никогда не мутируется по частям.
type Credential struct {
	Token     string
	ExpiresAt time.Time
}

func NewCredential(token string, expiresAt time.Time) *Credential {
	return &Credential{
		Token:     token,
		ExpiresAt: expiresAt,
	}
}

// Expired сообщает, истёк ли токен с учётом запаса skew:
// токен считается протухшим за skew до фактического истечения.
func (c *Credential) Expired(now time.Time, skew time.Duration) bool {
	if c == nil {
		return true
	}
	return !now.Before(c.ExpiresAt.Add(-skew))
}
