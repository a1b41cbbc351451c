// Copyright 2026 The Oommf-Sub006 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package oxserr

import (
	"strings"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestNewTagsTheRequestedKind(t *testing.T) {
	chk.PrintTitle("error kind tagging")
	err := New(ConfigurationInvalid, "bad field %s", "Ms")
	if !Is(err, ConfigurationInvalid) {
		t.Fatalf("expected Is(err, ConfigurationInvalid) to be true: %v", err)
	}
	if Is(err, FileIO) {
		t.Fatal("expected Is(err, FileIO) to be false")
	}
}

func TestErrorMessageIncludesKindAndFormattedText(t *testing.T) {
	err := New(StepTooSmall, "step below %v", 1e-15)
	msg := err.Error()
	if msg == "" {
		t.Fatal("expected a non-empty error message")
	}
	if !strings.Contains(msg, "StepTooSmall") || !strings.Contains(msg, "step below 1e-15") {
		t.Fatalf("expected kind and formatted text in message, got %q", msg)
	}
}

func TestFatalClassifiesConstructionTimeKindsAsFatal(t *testing.T) {
	for _, k := range []Code{ConfigurationInvalid, NumericOverflow, InvalidAxis} {
		if !Fatal(k) {
			t.Fatalf("expected %v to be fatal", k)
		}
	}
	for _, k := range []Code{StepTooSmall, FileIO} {
		if Fatal(k) {
			t.Fatalf("expected %v to be non-fatal", k)
		}
	}
}

func TestIsReturnsFalseForPlainErrors(t *testing.T) {
	var plain error
	if Is(plain, ConfigurationInvalid) {
		t.Fatal("expected Is(nil, ...) to be false")
	}
}
