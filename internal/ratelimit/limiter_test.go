package ratelimit

import (
	"net/http"
	"sync"
	"testing"
	"time"
)

// mockClock is a controllable clock for testing.
type mockClock struct {
	mu  sync.Mutex
	now time.Time
}

func newMockClock() *mockClock {
	return &mockClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *mockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *mockClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestLimiter(clock Clock) *Limiter {
	return New(&Config{
		MaxAttempts:    3,
		Window:         15 * time.Minute,
		Lockout:        10 * time.Minute,
		MaxIPPerWindow: 10,
		Clock:          clock,
	})
}

func TestCheckLogin_LockoutAfterMaxAttempts(t *testing.T) {
	clock := newMockClock()
	limiter := newTestLimiter(clock)
	defer limiter.Close()

	identifier := "ana.perez"
	ip := "203.0.113.9"

	for i := 1; i <= 2; i++ {
		if result := limiter.CheckLogin(identifier, ip); !result.Allowed {
			t.Fatalf("attempt %d should be allowed, got %s", i, result.Reason)
		}
		if lockedOut := limiter.RecordFailure(identifier, ip); lockedOut {
			t.Fatalf("attempt %d should not lock out", i)
		}
	}

	if lockedOut := limiter.RecordFailure(identifier, ip); !lockedOut {
		t.Fatal("third failure should start a lockout")
	}

	result := limiter.CheckLogin(identifier, ip)
	if result.Allowed {
		t.Fatal("login should be blocked during lockout")
	}
	if result.Reason != "lockout" {
		t.Fatalf("expected reason lockout, got %q", result.Reason)
	}
	if result.RetryAfter != 10*time.Minute {
		t.Fatalf("expected retry after 10m, got %v", result.RetryAfter)
	}

	clock.Advance(10 * time.Minute)
	if result := limiter.CheckLogin(identifier, ip); !result.Allowed {
		t.Fatalf("login should be allowed after lockout, got %s", result.Reason)
	}
	if lockedOut := limiter.RecordFailure(identifier, ip); lockedOut {
		t.Fatal("first failure after lockout should start a fresh count")
	}
}

func TestCheckLogin_WindowExpiry(t *testing.T) {
	clock := newMockClock()
	limiter := newTestLimiter(clock)
	defer limiter.Close()

	limiter.RecordFailure("ana", "203.0.113.9")
	limiter.RecordFailure("ana", "203.0.113.9")
	clock.Advance(16 * time.Minute)

	if lockedOut := limiter.RecordFailure("ana", "203.0.113.9"); lockedOut {
		t.Fatal("failures outside the window should not accumulate")
	}
}

func TestCheckLogin_IdentifierNormalization(t *testing.T) {
	clock := newMockClock()
	limiter := newTestLimiter(clock)
	defer limiter.Close()

	limiter.RecordFailure("Ana.Perez", "203.0.113.9")
	limiter.RecordFailure("  ana.perez ", "203.0.113.9")
	limiter.RecordFailure("ANA.PEREZ", "203.0.113.9")

	if result := limiter.CheckLogin("ana.perez", "198.51.100.1"); result.Allowed {
		t.Fatal("case variants should share one counter")
	}
}

func TestCheckLogin_IPLimit(t *testing.T) {
	clock := newMockClock()
	limiter := newTestLimiter(clock)
	defer limiter.Close()

	ip := "203.0.113.9"
	for i := 0; i < 10; i++ {
		limiter.RecordFailure("user"+string(rune('a'+i)), ip)
	}

	result := limiter.CheckLogin("fresh-user", ip)
	if result.Allowed {
		t.Fatal("IP over its window limit should be blocked")
	}
	if result.Reason != "ip_limit" {
		t.Fatalf("expected reason ip_limit, got %q", result.Reason)
	}
	if result := limiter.CheckLogin("fresh-user", "198.51.100.1"); !result.Allowed {
		t.Fatal("other IPs should not be affected")
	}
}

func TestReset(t *testing.T) {
	clock := newMockClock()
	limiter := newTestLimiter(clock)
	defer limiter.Close()

	limiter.RecordFailure("ana", "203.0.113.9")
	limiter.RecordFailure("ana", "203.0.113.9")
	limiter.Reset("ana")

	if lockedOut := limiter.RecordFailure("ana", "203.0.113.9"); lockedOut {
		t.Fatal("reset should clear the failure count")
	}
}

func TestCheckDoesNotRecord(t *testing.T) {
	clock := newMockClock()
	limiter := newTestLimiter(clock)
	defer limiter.Close()

	for i := 0; i < 10; i++ {
		if result := limiter.CheckLogin("ana", "203.0.113.9"); !result.Allowed {
			t.Fatalf("check %d should be allowed without recorded failures", i+1)
		}
	}
}

func TestGetClientIP_TrustProxy(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		trustProxy bool
		expected   string
	}{
		{
			name:       "TrustProxy=true, XFF rightmost public IP",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.50, 10.0.0.1"},
			remoteAddr: "10.0.0.1:12345",
			trustProxy: true,
			expected:   "203.0.113.50", // Rightmost non-private
		},
		{
			name:       "TrustProxy=true, XFF all private",
			headers:    map[string]string{"X-Forwarded-For": "192.168.1.1, 10.0.0.1"},
			remoteAddr: "10.0.0.1:12345",
			trustProxy: true,
			expected:   "10.0.0.1", // Last one when all private
		},
		{
			name:       "TrustProxy=true, X-Real-IP",
			headers:    map[string]string{"X-Real-IP": "203.0.113.51"},
			remoteAddr: "10.0.0.1:12345",
			trustProxy: true,
			expected:   "203.0.113.51",
		},
		{
			name:       "TrustProxy=false, ignores XFF",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.50"},
			remoteAddr: "192.168.1.100:54321",
			trustProxy: false,
			expected:   "192.168.1.100", // Uses RemoteAddr, ignores spoofed XFF
		},
		{
			name:       "TrustProxy=false, ignores X-Real-IP",
			headers:    map[string]string{"X-Real-IP": "203.0.113.51"},
			remoteAddr: "192.168.1.100:54321",
			trustProxy: false,
			expected:   "192.168.1.100",
		},
		{
			name:       "No headers, RemoteAddr only",
			headers:    map[string]string{},
			remoteAddr: "192.168.1.100:54321",
			trustProxy: true,
			expected:   "192.168.1.100",
		},
		{
			name:       "RemoteAddr without port",
			headers:    map[string]string{},
			remoteAddr: "192.168.1.100",
			trustProxy: false,
			expected:   "192.168.1.100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := http.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}

			got := GetClientIP(r, tt.trustProxy)
			if got != tt.expected {
				t.Errorf("GetClientIP() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestGetClientIP_SpoofingPrevention(t *testing.T) {
	// Attacker sends fake X-Forwarded-For header
	r, _ := http.NewRequest("GET", "/", nil)
	r.Header.Set("X-Forwarded-For", "1.2.3.4") // Attacker-supplied
	r.RemoteAddr = "192.168.1.100:54321"       // Real connection

	// With TrustProxy=false, the fake header is ignored
	got := GetClientIP(r, false)
	if got != "192.168.1.100" {
		t.Errorf("Should ignore X-Forwarded-For when TrustProxy=false, got %q", got)
	}
}

func TestSanitizeIdentifier(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"john.doe@example.com", "jo***@example.com"},
		{"ana.perez", "***erez"},
		{"JOHN.DOE@EXAMPLE.COM", "jo***@example.com"}, // Normalized to lowercase
		{"ab@example.com", "***@example.com"},
		{"a@example.com", "***@example.com"},
		{"+15551234567", "***4567"},
		{"5551234567", "***4567"},
		{"123", "***"},
		{"", "***"},
		{"  User@Example.Com  ", "us***@example.com"}, // Trimmed and lowercased
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := SanitizeIdentifier(tt.input)
			if got != tt.expected {
				t.Errorf("SanitizeIdentifier(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.MaxAttempts != 5 {
		t.Errorf("MaxAttempts = %d, want 5", cfg.MaxAttempts)
	}
	if cfg.Window != 15*time.Minute {
		t.Errorf("Window = %v, want 15m", cfg.Window)
	}
	if cfg.Lockout != 15*time.Minute {
		t.Errorf("Lockout = %v, want 15m", cfg.Lockout)
	}
	if cfg.MaxIPPerWindow != 30 {
		t.Errorf("MaxIPPerWindow = %d, want 30", cfg.MaxIPPerWindow)
	}
}

func TestNew_NilConfig(t *testing.T) {
	limiter := New(nil)
	defer limiter.Close()

	if limiter.config.MaxAttempts != 5 {
		t.Error("New(nil) should use default config")
	}
}

func TestNew_ZeroFieldsUseDefaults(t *testing.T) {
	limiter := New(&Config{MaxAttempts: 2})
	defer limiter.Close()

	if limiter.config.MaxAttempts != 2 {
		t.Errorf("MaxAttempts = %d, want 2", limiter.config.MaxAttempts)
	}
	if limiter.config.Lockout != 15*time.Minute {
		t.Errorf("Lockout = %v, want default", limiter.config.Lockout)
	}
}

func TestLimiter_Close(t *testing.T) {
	limiter := New(nil)

	// Trigger cleanup goroutine
	limiter.CheckLogin("ana", "1.2.3.4")

	done := make(chan struct{})
	go func() {
		limiter.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Error("Close() should not hang")
	}
}

func TestConcurrentAccess(t *testing.T) {
	clock := newMockClock()
	limiter := New(&Config{
		MaxAttempts:    1000,
		Window:         time.Hour,
		Lockout:        time.Minute,
		MaxIPPerWindow: 1000,
		Clock:          clock,
	})
	defer limiter.Close()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if limiter.CheckLogin("ana", "192.168.1.1").Allowed {
					limiter.RecordFailure("ana", "192.168.1.1")
				}
				limiter.Reset("ana")
			}
		}()
	}
	wg.Wait()
}

func TestIsPrivateIP(t *testing.T) {
	tests := []struct {
		ip       string
		expected bool
	}{
		// IPv4 private ranges
		{"10.0.0.1", true},
		{"10.255.255.255", true},
		{"172.16.0.1", true},
		{"172.31.255.255", true},
		{"192.168.1.1", true},
		{"192.168.255.255", true},
		{"127.0.0.1", true},
		// IPv6 private/reserved
		{"::1", true},
		{"fc00::1", true},
		{"fe80::1", true}, // Link-local
		// IPv4-mapped IPv6 addresses (must match their IPv4 equivalents)
		{"::ffff:10.0.0.1", true},
		{"::ffff:192.168.1.1", true},
		{"::ffff:172.16.0.1", true},
		{"::ffff:127.0.0.1", true},
		{"::ffff:8.8.8.8", false}, // Public IP in IPv4-mapped format
		{"::ffff:1.1.1.1", false}, // Public IP in IPv4-mapped format
		// Public IPs
		{"203.0.113.50", false},
		{"8.8.8.8", false},
		{"1.1.1.1", false},
		{"2001:4860:4860::8888", false}, // Google DNS IPv6
		// Invalid
		{"invalid", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			got := isPrivateIP(tt.ip)
			if got != tt.expected {
				t.Errorf("isPrivateIP(%q) = %v, want %v", tt.ip, got, tt.expected)
			}
		})
	}
}
