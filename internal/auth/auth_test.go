package auth

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cimyrichardson/art-store/internal/config"
)

func TestTokenRoundTrip(t *testing.T) {
	cfg := &config.JWTConfig{Secret: "test-secret", TTLHours: 1}

	token, err := GenerateToken(cfg, 42, "marie_d", "customer")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ParseToken(cfg, token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != 42 || claims.Username != "marie_d" || claims.Role != "customer" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	cfg := &config.JWTConfig{Secret: "test-secret", TTLHours: 1}
	token, err := GenerateToken(cfg, 42, "marie_d", "customer")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	other := &config.JWTConfig{Secret: "another-secret", TTLHours: 1}
	if _, err := ParseToken(other, token); err == nil {
		t.Fatal("token signed with different secret parsed successfully")
	}
}

func TestParseTokenExpired(t *testing.T) {
	cfg := &config.JWTConfig{Secret: "test-secret", TTLHours: 1}
	// 直接构造一个已过期的 token
	claims := Claims{
		UserID: 42,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(cfg.Secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	_, err = ParseToken(cfg, signed)
	if !errors.Is(err, jwt.ErrTokenExpired) {
		t.Fatalf("err = %v, want ErrTokenExpired", err)
	}
}

func TestClaimsExpired(t *testing.T) {
	live := &Claims{RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	if live.Expired() {
		t.Error("live claims reported expired")
	}

	stale := &Claims{RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}}
	if !stale.Expired() {
		t.Error("stale claims reported live")
	}

	// 没有过期时间的 claims 交由验签阶段处理
	if (&Claims{}).Expired() {
		t.Error("claims without expiry reported expired")
	}
}

func TestPasswordHash(t *testing.T) {
	hashed, err := HashPassword("Passw0rd9")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hashed == "Passw0rd9" {
		t.Fatal("hash equals plaintext")
	}
	if !CheckPassword("Passw0rd9", hashed) {
		t.Error("correct password rejected")
	}
	if CheckPassword("WrongPass1", hashed) {
		t.Error("wrong password accepted")
	}
}

func TestRingPick(t *testing.T) {
	nodes := []string{"auth-node-1", "auth-node-2", "auth-node-3"}
	ring := NewRing(nodes, 50)

	valid := map[string]bool{}
	for _, n := range nodes {
		valid[n] = true
	}

	// 同一个 key 稳定归属同一节点
	first := ring.Pick("token-abc")
	if !valid[first] {
		t.Fatalf("Pick returned unknown node %q", first)
	}
	for i := 0; i < 10; i++ {
		if got := ring.Pick("token-abc"); got != first {
			t.Fatalf("Pick not stable: %q vs %q", got, first)
		}
	}

	// 足够多的 key 应该分布到全部节点
	hit := map[string]bool{}
	for i := 0; i < 1000; i++ {
		hit[ring.Pick("token-"+strconv.Itoa(i))] = true
	}
	if len(hit) != len(nodes) {
		t.Errorf("keys landed on %d nodes, want %d", len(hit), len(nodes))
	}
}

func TestRingAddNodes(t *testing.T) {
	ring := NewRing([]string{"n1"}, 10)
	if got := ring.Pick("anything"); got != "n1" {
		t.Fatalf("single node ring Pick = %q", got)
	}

	// 重复加入同一节点不改变归属
	ring.AddNodes("n1")
	if got := ring.Pick("anything"); got != "n1" {
		t.Errorf("after duplicate AddNodes Pick = %q", got)
	}

	// 空节点列表时兜底为默认节点
	fallback := NewRing(nil, 10)
	if got := fallback.Pick("anything"); got == "" {
		t.Error("empty ring returned empty node")
	}
}
