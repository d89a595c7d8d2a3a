package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"github.com/MJE43/pf-crosscheck/internal/engine"
	"github.com/MJE43/pf-crosscheck/internal/games"
	"github.com/MJE43/pf-crosscheck/internal/shim"
)

type zeroRNG struct{}

func (zeroRNG) Intn(int) int { return 0 }

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	a := &app{
		stdin:  strings.NewReader(stdin),
		stdout: &out,
		stderr: &bytes.Buffer{},
		logger: zap.NewNop(),
		rng:    zeroRNG{},
	}
	cmd := newRootCmd(a)
	cmd.SetArgs(append(args, "--env-file", t.TempDir()+"/missing.env"))
	err := cmd.Execute()
	return out.String(), err
}

func TestRankCommand(t *testing.T) {
	out, err := execute(t, `[{"id":"x","creditsMinor":"100"},{"id":"y","creditsMinor":"300"},{"id":"z","creditsMinor":"300"}]`, "rank")
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	want := `[{"creditsMinor":"300","id":"y","rank":1},{"creditsMinor":"300","id":"z","rank":2},{"creditsMinor":"100","id":"x","rank":3}]`
	if got := strings.TrimSpace(out); got != want {
		t.Errorf("rank output:\n got %s\nwant %s", got, want)
	}
}

func TestStandingsTable(t *testing.T) {
	out, err := execute(t, `[{"userId":"u1","username":"ann","creditsMinor":12345},{"userId":"u2","creditsMinor":100}]`, "standings", "--table")
	if err != nil {
		t.Fatalf("standings: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines:\n%s", len(lines), out)
	}
	if f := strings.Fields(lines[1]); !cmp.Equal(f, []string{"1", "ann", "123.45"}) {
		t.Errorf("first row = %v", f)
	}
	if f := strings.Fields(lines[2]); !cmp.Equal(f, []string{"2", "u2", "1"}) {
		t.Errorf("second row = %v", f)
	}
}

func TestDealCommand(t *testing.T) {
	out, err := execute(t, "", "deal")
	if err != nil {
		t.Fatalf("deal: %v", err)
	}
	want := `{"hand":[{"suit":"♠","rank":"A"},{"suit":"♠","rank":"K"}],"remaining":50}`
	if got := strings.TrimSpace(out); got != want {
		t.Errorf("deal = %s, want %s", got, want)
	}
}

func TestDealCommandSeeded(t *testing.T) {
	out, err := execute(t, "", "deal", "--server-seed", "srv", "--client-seed", "cli", "--nonce", "7")
	if err != nil {
		t.Fatalf("deal: %v", err)
	}
	want, err := games.DealHand(engine.NewStream("srv", "cli", 7))
	if err != nil {
		t.Fatal(err)
	}
	var got games.Hand
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("seeded deal (-want +got):\n%s", diff)
	}
}

func TestNonceWithoutServerSeed(t *testing.T) {
	_, err := execute(t, "", "spin", "--nonce", "3")
	var usage usageError
	if err == nil || !errors.As(err, &usage) {
		t.Fatalf("err = %v, want usage error", err)
	}
}

func TestSliceCommand(t *testing.T) {
	out, err := execute(t, `{"stopRotationDeg": 359.999, "sliceCount": 8}`, "slice")
	if err != nil {
		t.Fatalf("slice: %v", err)
	}
	if got := strings.TrimSpace(out); got != `{"sliceIndex":7}` {
		t.Errorf("slice = %s", got)
	}
}

func TestPokerEngineCommand(t *testing.T) {
	out, err := execute(t, `{"action":"draw","deck":[{"suit":"♦","rank":"9"},{"suit":"♣","rank":"2"}]}`, "poker-engine")
	if err != nil {
		t.Fatalf("poker-engine: %v", err)
	}
	want := `{"card":{"suit":"♦","rank":"9"},"deck":[{"suit":"♣","rank":"2"}]}`
	if got := strings.TrimSpace(out); got != want {
		t.Errorf("draw = %s, want %s", got, want)
	}
}

func TestKernelsCommand(t *testing.T) {
	out, err := execute(t, "", "kernels")
	if err != nil {
		t.Fatalf("kernels: %v", err)
	}
	for _, id := range []string{"rank", "deal", "slice", "spin"} {
		if !strings.Contains(out, id) {
			t.Errorf("kernels output missing %q:\n%s", id, out)
		}
	}
}

func TestRunExitCodes(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  int
	}{
		{"ok", `{"stopRotationDeg": 0, "sliceCount": 8}`, []string{"slice"}, shim.ExitOK},
		{"malformed json", `{`, []string{"slice"}, shim.ExitMalformedInput},
		{"missing key", `[{"id":"a"}]`, []string{"rank"}, shim.ExitMalformedInput},
		{"bad slice count", `{"stopRotationDeg": 0, "sliceCount": 0}`, []string{"slice"}, shim.ExitInvalidArgument},
		{"empty deck", `{"action":"draw","deck":[]}`, []string{"poker-engine"}, shim.ExitEmptyDeck},
		{"unknown flag", ``, []string{"deal", "--bogus"}, exitUsage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			args := append(tt.args, "--env-file", t.TempDir()+"/missing.env", "--log-level", "error")
			if got := run(args, strings.NewReader(tt.stdin), &stdout, &stderr); got != tt.want {
				t.Errorf("exit = %d, want %d (stderr %q)", got, tt.want, stderr.String())
			}
			if tt.want != shim.ExitOK && !strings.HasPrefix(stderr.String(), "pfcheck: ") {
				t.Errorf("stderr = %q, want pfcheck: prefix", stderr.String())
			}
		})
	}
}

func TestServeShutsDownOnCancel(t *testing.T) {
	a := &app{logger: zap.NewNop()}
	a.cfg.RequestTimeout = time.Second
	a.cfg.MaxBodyBytes = 1024

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.serve(ctx, "127.0.0.1:0") }()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after cancel")
	}
}
