package reconciler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hostfission/dnset/pkg/pve"
	"github.com/hostfission/dnset/pkg/types"
	"github.com/hostfission/dnset/pkg/walker"
)

// runnerGateway backs both the walker and the reconciler in runner
// tests
type runnerGateway struct {
	mu    sync.Mutex
	fake  *fakeGateway
	pages map[string]any
}

func (g *runnerGateway) Get(ctx context.Context, path string) (pve.Value, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if raw, ok := g.pages[path]; ok {
		return pve.NewValue(raw), nil
	}
	return g.fake.Get(ctx, path)
}

func (g *runnerGateway) CreateMember(ctx context.Context, setPath, cidr, comment string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.fake.CreateMember(ctx, setPath, cidr, comment)
}

func (g *runnerGateway) DeleteMember(ctx context.Context, setPath, cidr string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.fake.DeleteMember(ctx, setPath, cidr)
}

func newRunnerGateway() *runnerGateway {
	return &runnerGateway{
		fake: newFakeGateway(),
		pages: map[string]any{
			"/cluster/firewall/ipset": []any{
				map[string]any{"name": "blocklist", "comment": "auto_dns_example.com"},
				map[string]any{"name": "static", "comment": "managed by hand"},
			},
			"/nodes": nil,
		},
	}
}

func TestRunOnceReport(t *testing.T) {
	api := newRunnerGateway()
	resolver := &fakeResolver{resolution: types.Resolution{
		Addrs:      []string{"93.184.216.34"},
		Provenance: map[string]string{"93.184.216.34": "example.com"},
	}}

	runner := NewRunner(walker.New(api), New(api, resolver), time.Minute)
	report := runner.RunOnce(context.Background())

	assert.Equal(t, 2, report.Sets)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, 1, report.Applied)
	assert.Zero(t, report.Failures)

	members := api.fake.members["/cluster/firewall/ipset/blocklist"]
	assert.Equal(t, []types.Member{{CIDR: "93.184.216.34", Comment: "example.com"}}, members)
}

func TestRunnerStopTerminatesLoop(t *testing.T) {
	api := newRunnerGateway()
	resolver := &fakeResolver{resolution: types.Resolution{
		Addrs:      []string{"93.184.216.34"},
		Provenance: map[string]string{"93.184.216.34": "example.com"},
	}}

	runner := NewRunner(walker.New(api), New(api, resolver), 10*time.Millisecond)
	runner.Start(context.Background())

	// let the immediate pass and at least one tick happen
	time.Sleep(50 * time.Millisecond)
	runner.Stop()

	// allow any in-flight pass to drain before sampling
	time.Sleep(30 * time.Millisecond)
	api.mu.Lock()
	creates := len(api.fake.creates)
	api.mu.Unlock()

	assert.GreaterOrEqual(t, creates, 2, "expected the loop to run more than once")

	// no further passes after Stop
	time.Sleep(30 * time.Millisecond)
	api.mu.Lock()
	assert.Equal(t, creates, len(api.fake.creates))
	api.mu.Unlock()
}
