package logger

import (
	"log/slog"
	"strings"
	"testing"
)

func TestRedactSensitive_KeyNames(t *testing.T) {
	tests := []struct {
		key      string
		value    string
		redacted bool
	}{
		{"password", "hunter2", true},
		{"DB_Password", "hunter2", true},
		{"client_secret", "s3cr3t", true},
		{"auth_header", "Bearer abc", true},
		{"api_key", "abc", true},
		{"password", "", false},
		{"key", "Key42", false},
		{"value", "Value42", false},
		{"hash", "000000000000002a0000000000000000", false},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			l, buf := jsonLogger(t, "info")
			l.Info("msg", tt.key, tt.value)

			got := lastRecord(t, buf)[tt.key]
			if tt.redacted && got != redactedValue {
				t.Errorf("%s = %v, want redacted", tt.key, got)
			}
			if !tt.redacted && got != tt.value {
				t.Errorf("%s = %v, want %q", tt.key, got, tt.value)
			}
		})
	}
}

func TestRedactSensitive_NonString(t *testing.T) {
	l, buf := jsonLogger(t, "info")
	l.Info("msg", "token_count", 5)

	if got := lastRecord(t, buf)["token_count"]; got != float64(5) {
		t.Errorf("token_count = %v, want 5", got)
	}
}

func TestRedactSensitive_Group(t *testing.T) {
	l, buf := jsonLogger(t, "info")
	l.Info("msg", slog.Group("conn", slog.String("user", "admin"), slog.String("password", "hunter2")))

	conn, ok := lastRecord(t, buf)["conn"].(map[string]any)
	if !ok {
		t.Fatal("Expected conn group in log")
	}
	if conn["user"] != "admin" {
		t.Errorf("conn.user = %v, want admin", conn["user"])
	}
	if conn["password"] != redactedValue {
		t.Errorf("conn.password = %v, want redacted", conn["password"])
	}
}

func TestRedactSensitive_Truncates(t *testing.T) {
	l, buf := jsonLogger(t, "info")
	long := strings.Repeat("x", MaxValueLen+10)
	l.Info("msg", "value", long)

	got, _ := lastRecord(t, buf)["value"].(string)
	want := strings.Repeat("x", MaxValueLen) + "...(266 bytes)"
	if got != want {
		t.Errorf("value = %q, want %q", got, want)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("Truncate(short) = %q", got)
	}
	if got := Truncate("abcdefgh", 3); got != "abc...(8 bytes)" {
		t.Errorf("Truncate(abcdefgh, 3) = %q", got)
	}
}

func TestMask(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", "***"},
		{"hunter2", "***"},
		{"12345678", "***"},
		{"correct-horse-battery", "cor...ery"},
	}
	for _, tt := range tests {
		if got := Mask(tt.in); got != tt.want {
			t.Errorf("Mask(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsSensitiveKey(t *testing.T) {
	for _, k := range []string{"password", "X-Auth-Token", "secret_value", "apikey"} {
		if !IsSensitiveKey(k) {
			t.Errorf("IsSensitiveKey(%q) = false, want true", k)
		}
	}
	for _, k := range []string{"key", "Key42", "domain", "value"} {
		if IsSensitiveKey(k) {
			t.Errorf("IsSensitiveKey(%q) = true, want false", k)
		}
	}
}
