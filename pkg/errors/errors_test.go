package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestWrapPreservesChain(t *testing.T) {
	root := stdErrors.New("connection refused")
	err := Wrap(CodeDependency, root, "save order")

	if !stdErrors.Is(err, root) {
		t.Fatalf("expected wrapped cause to be reachable via errors.Is")
	}
	if err.Code() != CodeDependency {
		t.Fatalf("expected dependency code, got %s", err.Code())
	}
}

func TestAsFindsTypedErrorThroughWrapping(t *testing.T) {
	typed := New(CodeStateConflict, "no next step")
	wrapped := fmt.Errorf("advancing order: %w", typed)

	found := As(wrapped)
	if found == nil {
		t.Fatalf("expected typed error through fmt wrapping")
	}
	if found.Code() != CodeStateConflict {
		t.Fatalf("expected state conflict, got %s", found.Code())
	}
}

func TestAsReturnsNilForPlainErrors(t *testing.T) {
	if As(stdErrors.New("plain")) != nil {
		t.Fatalf("plain error should not coerce to typed error")
	}
	if As(nil) != nil {
		t.Fatalf("nil error should yield nil")
	}
}

func TestMetadataForUnknownCodeFallsBackToInternal(t *testing.T) {
	meta := MetadataFor(Code("NOPE"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("unknown code should map to internal metadata, got %d", meta.HTTPStatus)
	}
}

func TestDumpCollectsChain(t *testing.T) {
	root := stdErrors.New("boom")
	err := Wrap(CodeValidation, root, "binding checkout data")

	dump := Dump(err)
	if dump.Code != CodeValidation {
		t.Fatalf("expected code in dump, got %q", dump.Code)
	}
	if len(dump.Chain) < 2 {
		t.Fatalf("expected full chain in dump, got %v", dump.Chain)
	}
}
