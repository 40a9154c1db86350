package auth

import (
	"errors"

	"github.com/yourname/sleepcatalyst/internal"
)

type LocalProvider struct {
	token  string
	logger internal.Logger
}

func NewLocalProvider(token string, logger internal.Logger) *LocalProvider {
	return &LocalProvider{token: token, logger: logger}
}

func (a *LocalProvider) ValidateToken(token string) error {
	if token == a.token {
		return nil
	}
	a.logger.Warnf("auth: invalid token")
	return errors.New("invalid token")
}

var _ Provider = (*LocalProvider)(nil)
