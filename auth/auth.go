// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

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
	ErrMissingInitData = errors.New("init data is required")
	ErrInvalidInitData = errors.New("init data failed verification")
	ErrExpiredInitData = errors.New("init data is too old")
)

// MaxInitDataAge is how long signed init data stays acceptable. Replays of
// older payloads are rejected.
const MaxInitDataAge = 60 * time.Minute

// WebAppUser is the identity Telegram embeds in Mini App init data.
type WebAppUser struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
}

// DisplayName returns "first last", or just the first name when no last
// name is set.
func (u WebAppUser) DisplayName() string {
	if u.LastName != "" {
		return u.FirstName + " " + u.LastName
	}
	return u.FirstName
}

// ValidateInitData verifies the HMAC chain Telegram applies to Mini App
// init data and returns the embedded user.
// See https://core.telegram.org/bots/webapps#validating-data-received-via-the-mini-app
func ValidateInitData(initData, botToken string) (WebAppUser, error) {
	if initData == "" {
		return WebAppUser{}, ErrMissingInitData
	}
	values, err := url.ParseQuery(initData)
	if err != nil {
		return WebAppUser{}, fmt.Errorf("%w: %v", ErrInvalidInitData, err)
	}
	gotHash := values.Get("hash")
	if gotHash == "" {
		return WebAppUser{}, ErrInvalidInitData
	}

	// The check string is every field except hash, sorted by key,
	// joined as key=value lines.
	keys := make([]string, 0, len(values))
	for k := range values {
		if k != "hash" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+values.Get(k))
	}

	secret := hmacSHA256([]byte(botToken), []byte("WebAppData"))
	sum := hmacSHA256([]byte(strings.Join(pairs, "\n")), secret)
	want, err := hex.DecodeString(gotHash)
	if err != nil || !hmac.Equal(sum, want) {
		return WebAppUser{}, ErrInvalidInitData
	}

	authDate, err := strconv.ParseInt(values.Get("auth_date"), 10, 64)
	if err != nil {
		return WebAppUser{}, fmt.Errorf("%w: bad auth_date", ErrInvalidInitData)
	}
	if time.Since(time.Unix(authDate, 0)) > MaxInitDataAge {
		return WebAppUser{}, ErrExpiredInitData
	}

	var user WebAppUser
	if err := json.Unmarshal([]byte(values.Get("user")), &user); err != nil {
		return WebAppUser{}, fmt.Errorf("%w: bad user payload", ErrInvalidInitData)
	}
	if user.ID == 0 {
		return WebAppUser{}, fmt.Errorf("%w: missing user id", ErrInvalidInitData)
	}
	return user, nil
}

func hmacSHA256(data, key []byte) []byte {
	h := hmac.New(sha256.New, key)
	h.Write(data)
	return h.Sum(nil)
}
