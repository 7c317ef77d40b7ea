package jwt

import (
	"strconv"
	"time"

	gojose "github.com/go-jose/go-jose/v4"
	gojwt "github.com/go-jose/go-jose/v4/jwt"

	"github.com/brokerz/brokerz-auth/internal/domain"
)

// Generator signs and validates bearer tokens with a process-wide HS256
// secret. Rotating the secret invalidates every outstanding token.
type Generator struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewGenerator constructs a token generator with the given signing secret
// and token lifetime.
func NewGenerator(secret string, ttl time.Duration) *Generator {
	return &Generator{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Claims carry the identity encoded in a verified token.
type Claims struct {
	UserID int64
	Email  string
	Portal domain.Portal
}

type customClaims struct {
	Email  string `json:"email"`
	Portal string `json:"portal"`
}

// Issue produces a signed token for the user, expiring ttl after issuance.
func (g *Generator) Issue(user domain.User) (string, error) {
	signer, err := gojose.NewSigner(
		gojose.SigningKey{Algorithm: gojose.HS256, Key: g.secret},
		(&gojose.SignerOptions{}).WithType("JWT"),
	)
	if err != nil {
		return "", err
	}

	now := g.now().UTC()
	std := gojwt.Claims{
		Subject:  strconv.FormatInt(user.ID, 10),
		IssuedAt: gojwt.NewNumericDate(now),
		Expiry:   gojwt.NewNumericDate(now.Add(g.ttl)),
	}
	custom := customClaims{Email: user.Email, Portal: user.Portal.String()}

	return gojwt.Signed(signer).Claims(std).Claims(custom).Serialize()
}

// Verify checks signature and expiry. Every failure collapses to
// domain.ErrInvalidToken so callers cannot distinguish the cause.
func (g *Generator) Verify(token string) (*Claims, error) {
	parsed, err := gojwt.ParseSigned(token, []gojose.SignatureAlgorithm{gojose.HS256})
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	var std gojwt.Claims
	var custom customClaims
	if err := parsed.Claims(g.secret, &std, &custom); err != nil {
		return nil, domain.ErrInvalidToken
	}

	if err := std.ValidateWithLeeway(gojwt.Expected{Time: g.now()}, 0); err != nil {
		return nil, domain.ErrInvalidToken
	}

	userID, err := strconv.ParseInt(std.Subject, 10, 64)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	portal, ok := domain.ParsePortal(custom.Portal)
	if !ok {
		return nil, domain.ErrInvalidToken
	}

	return &Claims{UserID: userID, Email: custom.Email, Portal: portal}, nil
}
