package services

import (
	"sync"
	"testing"
)

func TestName(t *testing.T) {
	tests := []struct {
		port     int
		expected string
		found    bool
	}{
		{22, "ssh", true},
		{80, "http", true},
		{8080, "http-alt", true},
		{443, "https", true},
		{49999, "", false},
		{1, "", false},
	}

	for _, tt := range tests {
		name, ok := Name(tt.port)
		if ok != tt.found {
			t.Errorf("Name(%d) found = %v, want %v", tt.port, ok, tt.found)
		}
		if name != tt.expected {
			t.Errorf("Name(%d) = %q, want %q", tt.port, name, tt.expected)
		}
	}
}

func TestNameConcurrentReads(t *testing.T) {
	// The table must tolerate unsynchronized concurrent reads.
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := 1; p <= 1024; p++ {
				Name(p)
			}
		}()
	}
	wg.Wait()
}
