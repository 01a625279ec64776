package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestTokenRoundTrip(t *testing.T) {
	s := NewService(nil, "test-secret")

	token, err := s.issueToken("user_01h455vb4pex5vsknk084sn02q")
	if err != nil {
		t.Fatalf("issueToken: %v", err)
	}

	userID, err := s.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if userID != "user_01h455vb4pex5vsknk084sn02q" {
		t.Errorf("subject = %q", userID)
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	issuer := NewService(nil, "secret-a")
	verifier := NewService(nil, "secret-b")

	token, err := issuer.issueToken("user_1")
	if err != nil {
		t.Fatalf("issueToken: %v", err)
	}
	if _, err := verifier.ValidateToken(token); err == nil {
		t.Error("token signed with another secret accepted")
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	s := NewService(nil, "test-secret")

	claims := jwt.MapClaims{
		"sub": "user_1",
		"iat": time.Now().Add(-48 * time.Hour).Unix(),
		"exp": time.Now().Add(-24 * time.Hour).Unix(),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := s.ValidateToken(expired); err == nil {
		t.Error("expired token accepted")
	}
}

func TestValidateTokenRejectsUnsignedAlgorithm(t *testing.T) {
	s := NewService(nil, "test-secret")

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "user_1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := s.ValidateToken(unsigned); err == nil {
		t.Error("alg=none token accepted")
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	s := NewService(nil, "test-secret")
	if _, err := s.ValidateToken("not-a-token"); err == nil {
		t.Error("garbage accepted")
	}
}

func TestMiddleware(t *testing.T) {
	s := NewService(nil, "test-secret")
	token, err := s.issueToken("user_1")
	if err != nil {
		t.Fatalf("issueToken: %v", err)
	}

	var sawUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawUserID = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	protected := s.Middleware(next)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantUser   string
	}{
		{"valid bearer token", "Bearer " + token, 200, "user_1"},
		{"missing header", "", 401, ""},
		{"wrong scheme", "Basic " + token, 401, ""},
		{"empty token", "Bearer ", 401, ""},
		{"bad token", "Bearer garbage", 401, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sawUserID = ""
			req := httptest.NewRequest(http.MethodGet, "/api/v1/floors/floor_1/plan", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			protected.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if sawUserID != tt.wantUser {
				t.Errorf("user id = %q, want %q", sawUserID, tt.wantUser)
			}
		})
	}
}
