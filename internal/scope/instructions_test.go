package scope

import (
	"reflect"
	"testing"
)

func TestSplitInstructionsLastValueWins(t *testing.T) {
	text := "Severity: Fire-1\nCall first\nseverity: Fire-3\nGate code 4411"
	auto, free := SplitInstructions(text)
	if len(auto) != 1 || auto[0].Label != "Severity" || auto[0].Value != "Fire-3" {
		t.Fatalf("auto = %+v", auto)
	}
	if free != "Call first\nGate code 4411" {
		t.Fatalf("free = %q", free)
	}
}

func TestJoinInstructionsCanonicalOrder(t *testing.T) {
	auto := []AutoLine{
		{Label: "Odor", Value: "2"},
		{Label: "Service Offerings", Value: "Pack-out"},
	}
	got := JoinInstructions(auto, "Call first")
	want := "Service Offerings: Pack-out\nOdor: 2\nCall first"
	if got != want {
		t.Fatalf("joined = %q, want %q", got, want)
	}
}

func TestJoinDropsEmptyValues(t *testing.T) {
	auto := []AutoLine{{Label: "Severity", Value: "  "}}
	if got := JoinInstructions(auto, ""); got != "" {
		t.Fatalf("joined = %q, want empty", got)
	}
}

func TestWithServiceOfferingsRewrites(t *testing.T) {
	text := "Service Offerings: Storage\nCall first"
	got := WithServiceOfferings(text, []string{"Pack-out", "Textiles"})
	want := "Service Offerings: Pack-out, Textiles\nCall first"
	if got != want {
		t.Fatalf("rewritten = %q, want %q", got, want)
	}

	got = WithServiceOfferings(got, nil)
	if got != "Call first" {
		t.Fatalf("cleared = %q, want free text only", got)
	}
}

func TestInstructionLinesDropServicesLine(t *testing.T) {
	text := "Service Offerings: Pack-out\n\n  Call first  \nGate code 4411"
	got := InstructionLines(text)
	want := []string{"Call first", "Gate code 4411"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("lines = %v, want %v", got, want)
	}
}

func TestCanonicalizeIsStable(t *testing.T) {
	text := "Gate code 4411\nSeverity: Fire-3\nService Offerings: Pack-out"
	once := JoinInstructions(SplitInstructions(text))
	twice := JoinInstructions(SplitInstructions(once))
	if once != twice {
		t.Fatalf("canonical form unstable: %q vs %q", once, twice)
	}
	want := "Service Offerings: Pack-out\nSeverity: Fire-3\nGate code 4411"
	if once != want {
		t.Fatalf("canonical = %q, want %q", once, want)
	}
}
