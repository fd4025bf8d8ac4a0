package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"campus-portal-api/internal/model"
)

var ErrBadToken = errors.New("invalid token")

// Claims identify the actor. Identity is issued elsewhere; this service
// only verifies the signature and trusts the fields.
type Claims struct {
	UserID  string     `json:"uid"`
	Role    model.Role `json:"role"`
	Name    string     `json:"name,omitempty"`
	Number  string     `json:"number,omitempty"`
	Faculty string     `json:"faculty,omitempty"`
	jwt.RegisteredClaims
}

func MakeToken(a model.Actor, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	c := Claims{
		UserID: a.ActorID(),
		Role:   a.Role(),
		Name:   a.ActorName(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   a.ActorID(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	switch v := a.(type) {
	case model.Student:
		c.Number, c.Faculty = v.StudentNumber, v.Faculty
	case model.Lecturer:
		c.Number, c.Faculty = v.StaffNumber, v.Faculty
	case model.Admin:
		c.Number = v.StaffNumber
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(secret))
}

func ParseToken(raw, secret string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		// block alg confusion
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrBadToken
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	c, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, ErrBadToken
	}
	return c, nil
}

// Actor rebuilds the typed actor the claims describe.
func (c *Claims) Actor() (model.Actor, error) {
	return model.NewActor(c.Role, c.UserID, c.Name, c.Number, c.Faculty)
}
