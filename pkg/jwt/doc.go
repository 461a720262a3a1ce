// Package jwt implements HS256 token signing and validation for the
// Places API.
//
// Tokens are signed with a shared secret configured at startup. Claims
// carry the authenticated user's id and email:
//
//	svc, _ := jwt.NewService(jwt.Config{
//	    Secret:         "change-me",
//	    Issuer:         "places.forgo.software",
//	    ExpirationMins: 60,
//	})
//	token, _ := svc.Sign(jwt.Claims{UserID: "user:abc", Email: "a@b.c"})
//	claims, err := svc.Validate(token)
//
// Validation errors are sentinel values (ErrTokenExpired,
// ErrInvalidSignature, ErrInvalidToken) so callers can map them to
// distinct responses.
package jwt
