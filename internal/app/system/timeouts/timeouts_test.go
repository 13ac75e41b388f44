package timeouts

import (
	"context"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	Reset()
	if Ping() != DefaultPing || Read() != DefaultRead || Write() != DefaultWrite {
		t.Errorf("defaults = %v %v %v", Ping(), Read(), Write())
	}
}

func TestConfigureKeepsZeroFields(t *testing.T) {
	defer Reset()
	Configure(Config{Read: time.Second})
	if Read() != time.Second {
		t.Errorf("Read() = %v, want 1s", Read())
	}
	if Write() != DefaultWrite {
		t.Errorf("Write() = %v, want default", Write())
	}
}

func TestWithReadSetsDeadline(t *testing.T) {
	defer Reset()
	Configure(Config{Read: 50 * time.Millisecond})

	ctx, cancel := WithRead(context.Background())
	defer cancel()

	dl, ok := ctx.Deadline()
	if !ok {
		t.Fatal("no deadline set")
	}
	if until := time.Until(dl); until > 50*time.Millisecond {
		t.Errorf("deadline too far out: %v", until)
	}
}
