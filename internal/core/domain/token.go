package domain

import "errors"

// Token failure modes. Both render as 401; they are kept distinct so logs
// can tell a tampered token from a stale one.
var ErrInvalidToken = errors.New("invalid token")
var ErrTokenExpired = errors.New("token expired")
