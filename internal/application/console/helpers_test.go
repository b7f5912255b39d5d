package console_test

import (
	"sync"
	"testing"
	"time"

	"github.com/jhoicas/canastillas-console/internal/application/console"
	"github.com/jhoicas/canastillas-console/internal/infrastructure/apiclient"
	"github.com/jhoicas/canastillas-console/internal/infrastructure/apiclient/apitest"
	"github.com/jhoicas/canastillas-console/pkg/datefmt"
)

var bogota = time.FixedZone("COT", -5*3600)

// jueves 15/10/2026 10:00 COT
var testNow = time.Date(2026, 10, 15, 10, 0, 0, 0, bogota)

type banner struct {
	kind    string
	screen  string
	message string
}

// recorder notificador que registra los banners.
type recorder struct {
	mu      sync.Mutex
	banners []banner
}

func (r *recorder) Success(screen, msg string) { r.add("success", screen, msg) }
func (r *recorder) Error(screen, msg string)   { r.add("error", screen, msg) }

func (r *recorder) add(kind, screen, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.banners = append(r.banners, banner{kind: kind, screen: screen, message: msg})
}

func (r *recorder) last(kind string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.banners) - 1; i >= 0; i-- {
		if r.banners[i].kind == kind {
			return r.banners[i].message
		}
	}
	return ""
}

func (r *recorder) count(kind string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, b := range r.banners {
		if b.kind == kind {
			n++
		}
	}
	return n
}

type fixture struct {
	srv    *apitest.Server
	client *apiclient.Client
	notes  *recorder
	opts   console.Options
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	srv := apitest.New(t)
	srv.SetNow(func() time.Time { return testNow })
	notes := &recorder{}
	return &fixture{
		srv:    srv,
		client: apiclient.NewClient(srv.BaseURL(), 0, nil),
		notes:  notes,
		opts: console.Options{
			Notifier: notes,
			Clock:    datefmt.FixedClock{At: testNow},
		},
	}
}
