// Package initdata signs and validates Telegram WebApp init data, the
// query string the mini-app sends in the x-telegram-init-data header.
package initdata

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

var (
	ErrMalformed    = errors.New("init data is malformed")
	ErrHashMissing  = errors.New("init data hash is missing")
	ErrHashMismatch = errors.New("init data hash mismatch")
	ErrExpired      = errors.New("init data is expired")
)

// User is the Telegram user embedded in init data.
type User struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name,omitempty"`
	Username     string `json:"username,omitempty"`
	LanguageCode string `json:"language_code,omitempty"`
	PhotoURL     string `json:"photo_url,omitempty"`
}

// Data is validated init data.
type Data struct {
	User     User
	AuthDate time.Time
	QueryID  string
	Raw      string
}

// Sign builds init data for a user as Telegram would for this bot.
// The bot uses it to call the backend on behalf of a chat user.
func Sign(botToken string, user User, authDate time.Time, queryID string) (string, error) {
	rawUser, err := json.Marshal(user)
	if err != nil {
		return "", fmt.Errorf("encode user: %w", err)
	}

	values := url.Values{}
	values.Set("auth_date", strconv.FormatInt(authDate.Unix(), 10))
	values.Set("user", string(rawUser))
	if queryID != "" {
		values.Set("query_id", queryID)
	}
	values.Set("hash", sign(botToken, dataCheckString(values)))

	return values.Encode(), nil
}

// Validate checks the signature and age of init data and parses it.
// A zero maxAge disables the age check.
func Validate(initData, botToken string, maxAge time.Duration, now time.Time) (*Data, error) {
	values, err := url.ParseQuery(initData)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	hash := values.Get("hash")
	if hash == "" {
		return nil, ErrHashMissing
	}

	expected := sign(botToken, dataCheckString(values))
	if !hmac.Equal([]byte(strings.ToLower(hash)), []byte(expected)) {
		return nil, ErrHashMismatch
	}

	authUnix, err := strconv.ParseInt(values.Get("auth_date"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: auth_date: %v", ErrMalformed, err)
	}
	authDate := time.Unix(authUnix, 0).UTC()
	if maxAge > 0 && now.Sub(authDate) > maxAge {
		return nil, ErrExpired
	}

	data := &Data{
		AuthDate: authDate,
		QueryID:  values.Get("query_id"),
		Raw:      initData,
	}
	if rawUser := values.Get("user"); rawUser != "" {
		if err := json.Unmarshal([]byte(rawUser), &data.User); err != nil {
			return nil, fmt.Errorf("%w: user: %v", ErrMalformed, err)
		}
	}
	if data.User.ID == 0 {
		return nil, fmt.Errorf("%w: no user", ErrMalformed)
	}

	return data, nil
}

// dataCheckString joins every field except hash as sorted key=value lines.
func dataCheckString(values url.Values) string {
	keys := make([]string, 0, len(values))
	for k := range values {
		if k == "hash" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, k+"="+values.Get(k))
	}
	return strings.Join(lines, "\n")
}

func sign(botToken, payload string) string {
	secret := hmac.New(sha256.New, []byte("WebAppData"))
	secret.Write([]byte(botToken))

	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}
