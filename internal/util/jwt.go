package util

import (
	"learning_center_backend/internal/model"
	"learning_center_backend/pkg/hashid"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ContextUserKey   = "user"
	ContextUserIDKey = "userID"
	ContextCodecKey  = "hashid"

	ContextParamIDKey   = "paramID"
	ContextRequestIDKey = "requestID"
)

type GroupClaim struct {
	ID string `json:"id"`
}

// Claims are the session fields carried by the token cookie. Every id is in
// its encoded form.
type Claims struct {
	UserID        string         `json:"userId"`
	Login         string         `json:"login"`
	Role          model.UserRole `json:"role"`
	Groups        []GroupClaim   `json:"groups"`
	IsActive      bool           `json:"isActive"`
	IsTempAccount bool           `json:"isTempAccount"`
	IsVerified    bool           `json:"isVerified"`
	jwt.RegisteredClaims
}

func NewClaims(user *model.User, codec *hashid.Codec) *Claims {
	groups := make([]GroupClaim, 0, len(user.Groups))
	for _, g := range user.Groups {
		groups = append(groups, GroupClaim{ID: codec.EncodeUint(g.ID)})
	}
	return &Claims{
		UserID:        codec.EncodeUint(user.ID),
		Login:         user.Login,
		Role:          user.Role,
		Groups:        groups,
		IsActive:      user.IsActive,
		IsTempAccount: user.IsTempAccount,
		IsVerified:    user.IsVerified,
	}
}

func GenerateJWT(claims *Claims, secret string, expiration time.Duration) (string, error) {
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiration)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseJWT(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrTokenInvalidClaims
}

func GetUserFromContext(c *gin.Context) *Claims {
	user, exists := c.Get(ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := user.(*Claims)
	if !ok {
		return nil
	}
	return claims
}

// GetUserID returns the decoded id of the session user, or 0.
func GetUserID(c *gin.Context) uint {
	return c.GetUint(ContextUserIDKey)
}

// ParamID returns the decoded :hashId of the current route, or 0.
func ParamID(c *gin.Context) uint {
	return c.GetUint(ContextParamIDKey)
}

func IsAdmin(c *gin.Context) bool {
	claims := GetUserFromContext(c)
	return claims != nil && claims.Role == model.RoleAdmin
}
