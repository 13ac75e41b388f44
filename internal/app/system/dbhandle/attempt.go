package dbhandle

import (
	"sync"
	"sync/atomic"

	"go.mongodb.org/mongo-driver/mongo"
)

// attempt is a single connection attempt shared by every caller that reaches
// it. Its result is fixed once done is closed.
type attempt struct {
	once    sync.Once
	started atomic.Bool
	done    chan struct{}

	client *mongo.Client
	err    error
}

func newAttempt() *attempt {
	return &attempt{done: make(chan struct{})}
}

// start runs dial in the background the first time it is called.
func (a *attempt) start(dial func() (*mongo.Client, error)) {
	a.once.Do(func() {
		a.started.Store(true)
		go func() {
			a.client, a.err = dial()
			close(a.done)
		}()
	})
}

func (a *attempt) settled() bool {
	select {
	case <-a.done:
		return true
	default:
		return false
	}
}

// slotKey names the process-wide slot used in development mode.
const slotKey = "_mongoClientPromise"

var (
	slotMu sync.Mutex
	slots  = map[string]*attempt{}
)

// sharedAttempt returns the attempt held in the process-wide slot, creating it
// on first use. Managers rebuilt during development reloads reuse it instead
// of opening new sockets.
func sharedAttempt() *attempt {
	slotMu.Lock()
	defer slotMu.Unlock()
	a, ok := slots[slotKey]
	if !ok {
		a = newAttempt()
		slots[slotKey] = a
	}
	return a
}

// ResetGlobalSlotForTest empties the process-wide slot. Test code only.
func ResetGlobalSlotForTest() {
	slotMu.Lock()
	defer slotMu.Unlock()
	slots = map[string]*attempt{}
}
