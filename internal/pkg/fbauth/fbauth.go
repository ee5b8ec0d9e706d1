package fbauth

import (
	"context"
	"errors"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/tuser579/CityFix/internal/pkg/env"
)

// TokenVerifier verifies an ID token and returns the verified email address.
// Token verification is an external capability; handlers only ever see the
// resulting identity.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (string, error)
}

type firebaseVerifier struct {
	client *auth.Client
}

// NewVerifierFromEnv builds a Firebase-backed verifier from the service
// account file named by FIREBASE_CREDENTIALS_FILE.
func NewVerifierFromEnv(ctx context.Context) (TokenVerifier, error) {
	credFile := env.GetEnv("FIREBASE_CREDENTIALS_FILE", "city-fix-firebase-adminsdk.json")

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credFile))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase auth client: %w", err)
	}
	return &firebaseVerifier{client: client}, nil
}

func (v *firebaseVerifier) VerifyIDToken(ctx context.Context, idToken string) (string, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", err
	}
	email, _ := token.Claims["email"].(string)
	if email == "" {
		return "", errors.New("verified token carries no email claim")
	}
	return email, nil
}
