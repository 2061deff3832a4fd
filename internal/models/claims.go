package models

import "github.com/golang-jwt/jwt/v4"

// AccountKind tags which collection a token's account id resolves to,
// so middleware never has to try both collections.
type AccountKind string

const (
	KindSeeker AccountKind = "seeker"
	KindFinder AccountKind = "finder"
)

// AccountClaims are custom claims extending standard jwt.RegisteredClaims
type AccountClaims struct {
	AccountID string      `json:"account_id"`
	Kind      AccountKind `json:"kind"`
	jwt.RegisteredClaims
}
