package initdata

import (
	"errors"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/aliskhannn/bruno/internal/domain/entities"
)

const testToken = "123456:TEST-token"

func TestSignValidate(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	user := User{ID: 42, FirstName: "Ana", Username: "ana_g", LanguageCode: "ru"}

	raw, err := Sign(testToken, user, now.Add(-time.Minute), "AAH")
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	data, err := Validate(raw, testToken, time.Hour, now)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if data.User != user {
		t.Errorf("user = %+v, want %+v", data.User, user)
	}
	if data.QueryID != "AAH" || !data.AuthDate.Equal(now.Add(-time.Minute)) {
		t.Errorf("query_id=%q auth_date=%v", data.QueryID, data.AuthDate)
	}
	if data.Raw != raw {
		t.Error("raw init data must be kept")
	}
}

func TestValidate_Errors(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	good, err := Sign(testToken, User{ID: 1, FirstName: "A"}, now, "")
	if err != nil {
		t.Fatal(err)
	}

	tampered, _ := url.ParseQuery(good)
	tampered.Set("user", `{"id":2,"first_name":"B"}`)

	noHash, _ := url.ParseQuery(good)
	noHash.Del("hash")

	old, err := Sign(testToken, User{ID: 1, FirstName: "A"}, now.Add(-48*time.Hour), "")
	if err != nil {
		t.Fatal(err)
	}

	noUser := url.Values{"auth_date": {strconv.FormatInt(now.Unix(), 10)}}
	noUser.Set("hash", sign(testToken, dataCheckString(noUser)))

	tests := []struct {
		name     string
		initData string
		token    string
		want     error
	}{
		{"wrong token", good, "other:token", ErrHashMismatch},
		{"tampered user", tampered.Encode(), testToken, ErrHashMismatch},
		{"no hash", noHash.Encode(), testToken, ErrHashMissing},
		{"expired", old, testToken, ErrExpired},
		{"no user", noUser.Encode(), testToken, ErrMalformed},
		{"bad query", "%zz", testToken, ErrMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate(tt.initData, tt.token, 24*time.Hour, now)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestValidate_NoMaxAge(t *testing.T) {
	raw, err := Sign(testToken, User{ID: 5, FirstName: "C"}, time.Unix(1000, 0), "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Validate(raw, testToken, 0, time.Now()); err != nil {
		t.Errorf("zero max age must skip the age check, got %v", err)
	}
}

func TestSigner(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	s := NewSigner(testToken)
	s.now = func() time.Time { return now }

	u := entities.NewUser(7, 7, "Ana", "Lopez", "ana", "es")
	raw, err := s.Sign(u)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	data, err := Validate(raw, testToken, time.Minute, now)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	back := data.User.ToUser()
	if back.ID != 7 || back.ChatID != 7 || back.FirstName != "Ana" || back.LastName != "Lopez" || back.Username != "ana" || back.LanguageCode != "es" {
		t.Errorf("round trip user = %+v", back)
	}
}
