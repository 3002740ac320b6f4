// Package testutil provides test environment setup and utilities for internal package tests.
package testutil

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"

	"git.sr.ht/~jakintosh/tokengate/internal/api"
	"git.sr.ht/~jakintosh/tokengate/internal/database"
	"git.sr.ht/~jakintosh/tokengate/internal/logging"
	"git.sr.ht/~jakintosh/tokengate/internal/resources"
	"git.sr.ht/~jakintosh/tokengate/internal/service"
	"git.sr.ht/~jakintosh/tokengate/pkg/tokens"
)

const TestSecret = "super-secret-key-13"

// TestNow is the fixed instant every test environment runs at.
var TestNow = time.Unix(1760400000, 0)

// TestEnv provides all dependencies needed for testing
type TestEnv struct {
	DB             *database.SQLiteStore
	Service        *service.Service
	Router         http.Handler
	TokenIssuer    tokens.Issuer
	TokenValidator tokens.Validator
	Now            time.Time
}

// SetupTestEnv creates an isolated test environment with in-memory SQLite
func SetupTestEnv(
	t *testing.T,
) *TestEnv {
	t.Helper()

	// create in-memory SQLite database
	db, err := database.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	// every component shares one frozen clock
	clock := func() time.Time { return TestNow }

	// create token issuer/validator
	issuer, validator := tokens.InitServer([]byte(TestSecret), tokens.WithClock(clock))

	// create service
	svc := service.New(
		db.VerdictStore(),
		issuer,
		validator,
		service.WithClock(clock),
		service.WithLogger(logging.Discard()),
	)

	// setup cleanup
	t.Cleanup(func() {
		_ = db.Close()
	})

	return &TestEnv{
		DB:             db,
		Service:        svc,
		TokenIssuer:    issuer,
		TokenValidator: validator,
		Now:            TestNow,
	}
}

// SetupTestEnvWithRouter creates TestEnv and configures the API router
func SetupTestEnvWithRouter(
	t *testing.T,
) *TestEnv {
	t.Helper()
	env := SetupTestEnv(t)

	templates, err := resources.NewEmbeddedTemplates()
	if err != nil {
		t.Fatalf("failed to load templates: %v", err)
	}

	a := api.New(env.Service, templates, api.WithLogger(logging.Discard()))
	env.Router = a.Router()
	return env
}

// ValidTestClaims returns claims that pass the policy, with a random subject
func ValidTestClaims() tokens.Claims {
	return tokens.Claims{
		"sub":  uuid.NewString(),
		"iss":  tokens.ExpectedIssuer,
		"aud":  "test-audience",
		"exp":  TestNow.Add(time.Hour).Unix(),
		"name": "Test User",
	}
}

// IssueTestToken issues a flat token carrying claims
func (env *TestEnv) IssueTestToken(
	t *testing.T,
	claims tokens.Claims,
) string {
	t.Helper()
	token, err := env.TokenIssuer.Issue(tokens.NewHS256Header(), tokens.ClaimsPayload{Claims: claims})
	if err != nil {
		t.Fatalf("failed to issue test token: %v", err)
	}
	return token
}

// WrapTestToken nests token inside the given number of cty=JWT layers
func (env *TestEnv) WrapTestToken(
	t *testing.T,
	token string,
	layers int,
) string {
	t.Helper()
	for i := 0; i < layers; i++ {
		wrapped, err := env.TokenIssuer.Issue(tokens.NewNestedHeader(), tokens.NestedPayload{Token: token})
		if err != nil {
			t.Fatalf("failed to wrap test token: %v", err)
		}
		token = wrapped
	}
	return token
}

// IssueModeToken issues the service fixture token for mode
func (env *TestEnv) IssueModeToken(
	t *testing.T,
	mode string,
) *service.IssuedToken {
	t.Helper()
	issued, err := env.Service.IssueToken(mode)
	if err != nil {
		t.Fatalf("failed to issue %q token: %v", mode, err)
	}
	return issued
}
