package join

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type order struct {
	id   string
	name string
}

type prod struct {
	id  string
	sku string
}

func orderKey(o order) (string, error) { return o.id, nil }

func prodKey(p prod) (string, bool) { return p.id, p.id != "" }

func pair(o order, p prod) string { return o.name + "/" + p.sku }

func TestHashKeepsRightOrderAndDropsUnmatched(t *testing.T) {
	t.Parallel()

	left := []order{{"a", "A"}, {"b", "B"}}
	right := []prod{{"b", "s2"}, {"x", "s9"}, {"a", "s1"}, {"", "s0"}, {"b", "s3"}}

	got, err := Hash(left, right, orderKey, prodKey, pair)
	if err != nil {
		t.Fatalf("Hash error = %v", err)
	}
	want := []string{"B/s2", "A/s1", "B/s3"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected rows (-want +got):\n%s", diff)
	}
}

func TestHashLastLeftWins(t *testing.T) {
	t.Parallel()

	left := []order{{"a", "first"}, {"a", "second"}}
	got, err := Hash(left, []prod{{"a", "s"}}, orderKey, prodKey, pair)
	if err != nil {
		t.Fatalf("Hash error = %v", err)
	}
	if diff := cmp.Diff([]string{"second/s"}, got); diff != "" {
		t.Fatalf("unexpected rows (-want +got):\n%s", diff)
	}
}

func TestHashPropagatesLeftKeyError(t *testing.T) {
	t.Parallel()

	boom := errors.New("no key")
	_, err := Hash([]order{{"a", "A"}}, []prod{{"a", "s"}},
		func(order) (string, error) { return "", boom }, prodKey, pair)
	if !errors.Is(err, boom) {
		t.Fatalf("expected key error, got %v", err)
	}
}

func TestHashEmptyInputs(t *testing.T) {
	t.Parallel()

	got, err := Hash[order, prod, string, string](nil, nil, orderKey, prodKey, pair)
	if err != nil {
		t.Fatalf("Hash error = %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no rows, got %v", got)
	}
}
